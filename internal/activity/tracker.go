package activity

import (
	"database/sql"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"bookmap/pkg/models"
)

// RecentKey is the single fixed persistence key for the recently-viewed
// list. It is shared by every page, independent of any page's query.
const RecentKey = "bookmap:recentlyViewed"

// MaxRecent caps the recently-viewed list.
const MaxRecent = 5

// RecentBook is the persisted projection of a viewed book.
type RecentBook struct {
	models.Book
	Timestamp int64 `json:"timestamp"` // unix millis of the view
}

// Tracker maintains the bounded most-recently-viewed list. Every mutation
// persists the full ordered list; persistence failures are logged and the
// feature degrades, they are never surfaced to the caller.
type Tracker struct {
	DB  *sql.DB
	Hub *Hub // optional; broadcasts view events when set
	Log *zap.Logger

	// Now is overridable in tests; defaults to time.Now.
	Now func() time.Time
}

func NewTracker(db *sql.DB, hub *Hub, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{DB: db, Hub: hub, Log: log, Now: time.Now}
}

// Save records a view of book. Books without a title are ignored. A
// re-viewed book moves to the front instead of appearing twice; identity
// is (title, authors), not the source ID.
func (t *Tracker) Save(book models.Book) {
	if book.Title == "" {
		return
	}

	recent := t.List()

	filtered := make([]RecentBook, 0, len(recent)+1)
	filtered = append(filtered, RecentBook{Book: book, Timestamp: t.Now().UnixMilli()})
	for _, r := range recent {
		if r.Key() == book.Key() {
			continue
		}
		filtered = append(filtered, r)
	}
	if len(filtered) > MaxRecent {
		filtered = filtered[:MaxRecent]
	}

	if err := t.persist(filtered); err != nil {
		t.Log.Warn("could not save recent book", zap.String("title", book.Title), zap.Error(err))
		return
	}

	if t.Hub != nil {
		t.Hub.BroadcastJSON(map[string]any{
			"type": "recent_view",
			"book": book,
		})
	}
}

// List returns the recently-viewed books, most recent first. A missing or
// unreadable row reads as an empty list.
func (t *Tracker) List() []RecentBook {
	row := t.DB.QueryRow(`SELECT value FROM kv_store WHERE key = ?`, RecentKey)

	var raw string
	if err := row.Scan(&raw); err != nil {
		if err != sql.ErrNoRows {
			t.Log.Warn("recent list read failed", zap.Error(err))
		}
		return []RecentBook{}
	}

	var recent []RecentBook
	if err := json.Unmarshal([]byte(raw), &recent); err != nil {
		t.Log.Warn("recent list malformed", zap.Error(err))
		return []RecentBook{}
	}
	if len(recent) > MaxRecent {
		recent = recent[:MaxRecent]
	}
	return recent
}

func (t *Tracker) persist(recent []RecentBook) error {
	raw, err := json.Marshal(recent)
	if err != nil {
		return err
	}
	_, err = t.DB.Exec(`
		INSERT INTO kv_store (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, RecentKey, string(raw))
	return err
}
