package view

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmap/pkg/models"
)

func nBooks(n int) []models.Book {
	books := make([]models.Book, n)
	for i := range books {
		books[i] = models.Book{
			Title:   fmt.Sprintf("Book %d", i+1),
			Authors: "Author",
			Cover:   fmt.Sprintf("https://img/%d", i+1),
		}
	}
	return books
}

func TestRowCapacity(t *testing.T) {
	// capacity = floor((width+gap)/(minWidth+gap))
	assert.Equal(t, 7, RowCapacity(1200)) // (1200+18)/(140+18) = 7.7
	assert.Equal(t, 2, RowCapacity(300))
	assert.Equal(t, 1, RowCapacity(100)) // never below 1
	assert.Equal(t, 1, RowCapacity(0))
}

func TestBucketsShape(t *testing.T) {
	for _, tc := range []struct {
		n, capacity, rows, lastLen int
	}{
		{n: 20, capacity: 7, rows: 3, lastLen: 6},
		{n: 14, capacity: 7, rows: 2, lastLen: 7},
		{n: 1, capacity: 7, rows: 1, lastLen: 1},
		{n: 5, capacity: 1, rows: 5, lastLen: 1},
	} {
		rows := Buckets(nBooks(tc.n), tc.capacity)
		require.Len(t, rows, tc.rows, "n=%d c=%d", tc.n, tc.capacity)
		assert.Len(t, rows[len(rows)-1], tc.lastLen)

		// order-preserving, full rows except possibly the last
		total := 0
		for i, row := range rows {
			if i < len(rows)-1 {
				assert.Len(t, row, tc.capacity)
			}
			for _, b := range row {
				total++
				assert.Equal(t, fmt.Sprintf("Book %d", total), b.Title)
			}
		}
		assert.Equal(t, tc.n, total)
	}
}

func TestShelfRenderRowAndItemCounts(t *testing.T) {
	out := ShelfRenderer{}.Render(nBooks(20), 1200) // capacity 7 -> 3 rows

	assert.Equal(t, 3, strings.Count(out, `<div class="shelf">`))
	assert.Equal(t, 3, strings.Count(out, `class="books-row"`))
	assert.Equal(t, 20, strings.Count(out, `<div class="book" `))
	// every entry carries the open-modal activation
	assert.Equal(t, 20, strings.Count(out, `data-action="open-modal"`))
}

func TestShelfRenderEmptyClears(t *testing.T) {
	assert.Empty(t, ShelfRenderer{}.Render(nil, 1200))
	assert.Empty(t, ShelfRenderer{}.Render([]models.Book{}, 800))
}

func TestShelfRenderEscapes(t *testing.T) {
	books := []models.Book{{Title: "<b>t</b>", Authors: "A&B", Cover: "https://img/1"}}
	out := ShelfRenderer{}.Render(books, 200)
	assert.Contains(t, out, "&lt;b&gt;t&lt;/b&gt;")
	assert.Contains(t, out, "A&amp;B")
}
