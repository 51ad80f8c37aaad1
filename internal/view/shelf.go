package view

import (
	"fmt"
	"html"
	"strings"

	"bookmap/pkg/models"
)

// Shelf layout constants; the gap and minimum card width match the grid CSS.
const (
	ShelfGap     = 18
	MinBookWidth = 140
)

// RowCapacity computes how many books fit one shelf row at the given
// container width. Never less than 1.
func RowCapacity(width int) int {
	c := (width + ShelfGap) / (MinBookWidth + ShelfGap)
	if c < 1 {
		c = 1
	}
	return c
}

// Buckets splits books into rows of at most capacity entries, preserving
// order. The last row may be partial.
func Buckets(books []models.Book, capacity int) [][]models.Book {
	if capacity < 1 {
		capacity = 1
	}
	rows := make([][]models.Book, 0, (len(books)+capacity-1)/capacity)
	for start := 0; start < len(books); start += capacity {
		end := start + capacity
		if end > len(books) {
			end = len(books)
		}
		rows = append(rows, books[start:end])
	}
	return rows
}

// ShelfRenderer re-buckets a result list into fixed-capacity rows sized to
// the current container width.
type ShelfRenderer struct{}

// Render builds one shelf per row, creating every row container before
// populating it so partial rows come out right. Each entry carries the same
// open-modal activation as a grid card. An empty list clears the shelves
// and renders nothing else.
func (ShelfRenderer) Render(books []models.Book, width int) string {
	if len(books) == 0 {
		return ""
	}

	capacity := RowCapacity(width)
	rows := Buckets(books, capacity)

	var b strings.Builder
	index := 0
	for rowIdx, row := range rows {
		fmt.Fprintf(&b, `<div class="shelf">
  <div class="books-row" role="list" aria-label="Shelf %d">
`, rowIdx+1)
		for _, book := range row {
			fmt.Fprintf(&b, `    <div class="book" tabindex="0" data-index="%d" data-action="open-modal">
      <img src="%s" alt="%s cover">
      <div class="s-title">%s</div>
      <div class="s-author">%s</div>
    </div>
`,
				index,
				html.EscapeString(book.Cover),
				html.EscapeString(book.Title),
				html.EscapeString(book.Title),
				html.EscapeString(book.Authors),
			)
			index++
		}
		b.WriteString(`  </div>
  <div class="shelf-board" aria-hidden="true"></div>
</div>
`)
	}
	return b.String()
}
