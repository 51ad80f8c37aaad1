package view

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"bookmap/internal/activity"
)

// EmptyRecentWidget fills the widget when nothing has been viewed yet.
const EmptyRecentWidget = `<tr><td colspan="4" class="muted">No recent activity yet.</td></tr>`

// RenderRecentWidget rebuilds the recently-viewed rows from persisted data.
// Each row embeds its full book as a data attribute so the page script can
// reopen the modal from storage alone, without the original result list.
func RenderRecentWidget(recent []activity.RecentBook) string {
	if len(recent) == 0 {
		return EmptyRecentWidget
	}

	var b strings.Builder
	for _, r := range recent {
		raw, err := json.Marshal(r.Book)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, `<tr class="recent-row" data-book="%s">
  <td><img src="%s" alt="%s" class="recent-cover" loading="lazy"></td>
  <td class="recent-title">%s</td>
  <td class="recent-author">%s</td>
  <td><button class="view-btn" data-action="open-modal" aria-label="View %s">View</button></td>
</tr>
`,
			html.EscapeString(string(raw)),
			html.EscapeString(r.Cover),
			html.EscapeString(r.Title),
			html.EscapeString(r.Title),
			html.EscapeString(r.Authors),
			html.EscapeString(r.Title),
		)
	}
	return b.String()
}
