package view

import (
	"encoding/json"
	"html"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmap/internal/activity"
	"bookmap/pkg/models"
)

func TestRecentWidgetEmpty(t *testing.T) {
	assert.Equal(t, EmptyRecentWidget, RenderRecentWidget(nil))
}

func TestRecentWidgetRows(t *testing.T) {
	recent := []activity.RecentBook{
		{Book: models.Book{Title: "One", Authors: "A", Cover: "https://img/1"}, Timestamp: 1},
		{Book: models.Book{Title: "Two", Authors: "B", Cover: "https://img/2"}, Timestamp: 2},
	}

	out := RenderRecentWidget(recent)
	assert.Equal(t, 2, strings.Count(out, `class="recent-row"`))
	assert.Equal(t, 2, strings.Count(out, `class="view-btn"`))
	assert.Contains(t, out, `aria-label="View One"`)
}

func TestRecentWidgetRoundTripsBookData(t *testing.T) {
	// the embedded data attribute must decode back to the same book, so a
	// widget click can reopen the modal from persisted data alone
	orig := models.Book{
		Title:       `Quote " Book`,
		Authors:     "A & B",
		Cover:       "https://img/1",
		PreviewLink: "https://preview/1",
	}
	out := RenderRecentWidget([]activity.RecentBook{{Book: orig, Timestamp: 1}})

	m := regexp.MustCompile(`data-book="([^"]*)"`).FindStringSubmatch(out)
	require.Len(t, m, 2)

	var got models.Book
	require.NoError(t, json.Unmarshal([]byte(html.UnescapeString(m[1])), &got))
	assert.Equal(t, orig, got)
}
