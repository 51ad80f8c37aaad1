package activity

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmap/pkg/database"
	"bookmap/pkg/models"
)

func testTracker(t *testing.T) *Tracker {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return NewTracker(db, nil, nil)
}

func book(title, authors string) models.Book {
	return models.Book{Title: title, Authors: authors, Cover: "https://img/" + title}
}

func TestSaveDedupMovesToFront(t *testing.T) {
	tr := testTracker(t)

	a := book("A", "Author A")
	b := book("B", "Author B")

	tr.Save(a)
	tr.Save(b)
	tr.Save(a)

	got := tr.List()
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Title)
	assert.Equal(t, "B", got[1].Title)
}

func TestSaveCapsAtFive(t *testing.T) {
	tr := testTracker(t)

	for i := 1; i <= 6; i++ {
		tr.Save(book(fmt.Sprintf("Book %d", i), "X"))
	}

	got := tr.List()
	require.Len(t, got, MaxRecent)
	// most recent first, oldest evicted
	assert.Equal(t, "Book 6", got[0].Title)
	assert.Equal(t, "Book 2", got[MaxRecent-1].Title)
}

func TestSaveIgnoresUntitled(t *testing.T) {
	tr := testTracker(t)
	tr.Save(models.Book{Authors: "Someone"})
	assert.Empty(t, tr.List())
}

func TestSameTitleDifferentAuthorsKeptApart(t *testing.T) {
	tr := testTracker(t)
	tr.Save(book("Duplicate", "First Author"))
	tr.Save(book("Duplicate", "Second Author"))
	assert.Len(t, tr.List(), 2)
}

func TestListRoundTripPreservesBook(t *testing.T) {
	tr := testTracker(t)

	rating := 4.2
	orig := models.Book{
		ID:          "v9",
		Title:       "Round Trip",
		Authors:     "Some One",
		Description: "desc",
		Cover:       "https://img/rt",
		PreviewLink: "https://preview/rt",
		Rating:      &rating,
	}
	tr.Save(orig)

	got := tr.List()
	require.Len(t, got, 1)
	assert.Equal(t, orig, got[0].Book)
	assert.NotZero(t, got[0].Timestamp)
}

func TestListOnMalformedRow(t *testing.T) {
	tr := testTracker(t)
	_, err := tr.DB.Exec(`INSERT INTO kv_store (key, value) VALUES (?, ?)`, RecentKey, "{broken")
	require.NoError(t, err)
	assert.Empty(t, tr.List())
}

func TestSavePersistenceFailureNotSurfaced(t *testing.T) {
	tr := testTracker(t)
	require.NoError(t, tr.DB.Close())

	// must log and carry on, never panic
	tr.Save(book("A", "Author A"))
	assert.Empty(t, tr.List())
}
