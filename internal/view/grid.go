package view

import (
	"fmt"
	"html"
	"strings"
	"time"

	"bookmap/pkg/models"
)

// RecencyDays is the window for the "New" badge on a card.
const RecencyDays = 90

// EmptyGrid is rendered when a result list comes back empty. Callers that
// also own a shelf must clear it alongside.
const EmptyGrid = `<div class="empty" style="opacity:0.6;padding:28px">No results.</div>`

// Featured is the first result promoted to the banner display. It is an
// explicit return value of the render call, never a side channel.
type Featured struct {
	Heading   string `json:"heading"` // upper-cased title
	By        string `json:"by"`
	HeroImage string `json:"heroImage"`
}

// GridRenderer renders a book list as activatable cards.
type GridRenderer struct {
	// Now is overridable for badge tests; defaults to time.Now.
	Now func() time.Time
}

func NewGridRenderer() *GridRenderer {
	return &GridRenderer{Now: time.Now}
}

// Render produces one card per book plus the featured banner for books[0].
// First-result-as-featured is fixed policy. Every interpolated string is
// escaped. Empty input yields the empty-state fragment and no featured book.
func (g *GridRenderer) Render(books []models.Book) (string, *Featured) {
	if len(books) == 0 {
		return EmptyGrid, nil
	}

	var b strings.Builder
	for i, book := range books {
		b.WriteString(g.renderCard(book, i))
	}

	best := books[0]
	featured := &Featured{
		Heading:   strings.ToUpper(best.Title),
		By:        best.Authors,
		HeroImage: best.Cover,
	}
	return b.String(), featured
}

// renderCard emits a single card. The data-index attribute is what the page
// script uses to open the modal on click or Enter.
func (g *GridRenderer) renderCard(book models.Book, index int) string {
	badge := ""
	if IsRecent(book.PublishedDate, g.now(), RecencyDays) {
		badge = `<span class="badge">New</span>`
	}

	rating := ""
	if book.Rating != nil {
		rating = fmt.Sprintf(`<div class="rating">&#9733; %.1f</div>`, *book.Rating)
	}

	return fmt.Sprintf(`<article class="book-card" tabindex="0" data-index="%d" data-action="open-modal">
  <div class="cover"><img src="%s" alt="%s cover"></div>
  <div class="title">%s</div>
  <div class="author">%s</div>
  <div class="meta">%s</div>
  %s
</article>
`,
		index,
		html.EscapeString(book.Cover),
		html.EscapeString(book.Title),
		html.EscapeString(book.Title),
		html.EscapeString(book.Authors),
		badge,
		rating,
	)
}

func (g *GridRenderer) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// IsRecent reports whether pubDate falls within days of now. Dates are
// free-form; anything unparseable is simply not recent.
func IsRecent(pubDate string, now time.Time, days int) bool {
	if pubDate == "" {
		return false
	}
	var d time.Time
	var err error
	switch len(pubDate) {
	case 4:
		d, err = time.Parse("2006", pubDate)
	case 7:
		d, err = time.Parse("2006-01", pubDate)
	default:
		d, err = time.Parse("2006-01-02", pubDate)
	}
	if err != nil {
		return false
	}
	// future dates (preorders) count as recent too
	return now.Sub(d) <= time.Duration(days)*24*time.Hour
}
