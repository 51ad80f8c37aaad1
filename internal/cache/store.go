package cache

import (
	"database/sql"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"bookmap/pkg/models"
)

// DefaultTTL is how long a cached result list stays servable.
const DefaultTTL = 12 * time.Hour

// Store is a persisted fingerprint -> []Book cache. It is a best-effort
// accelerator: write failures are swallowed and malformed or expired rows
// read as misses, so callers never depend on it for correctness.
type Store struct {
	DB  *sql.DB
	TTL time.Duration
	Log *zap.Logger

	// Now is overridable for expiry tests; defaults to time.Now.
	Now func() time.Time
}

func NewStore(db *sql.DB, ttl time.Duration, log *zap.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{DB: db, TTL: ttl, Log: log, Now: time.Now}
}

// Get returns the cached list for fingerprint, or ok=false on a miss.
// Expired and undecodable entries are evicted on read.
func (s *Store) Get(fingerprint string) ([]models.Book, bool) {
	row := s.DB.QueryRow(`
		SELECT created_at, payload
		FROM search_cache
		WHERE fingerprint = ?
	`, fingerprint)

	var createdAt int64
	var payload string
	if err := row.Scan(&createdAt, &payload); err != nil {
		if err != sql.ErrNoRows {
			s.Log.Warn("cache read failed", zap.String("fingerprint", fingerprint), zap.Error(err))
		}
		return nil, false
	}

	if s.Now().Sub(time.UnixMilli(createdAt)) > s.TTL {
		s.evict(fingerprint)
		return nil, false
	}

	var books []models.Book
	if err := json.Unmarshal([]byte(payload), &books); err != nil {
		s.Log.Warn("cache entry malformed, evicting", zap.String("fingerprint", fingerprint), zap.Error(err))
		s.evict(fingerprint)
		return nil, false
	}
	return books, true
}

// Set overwrites the entry for fingerprint with the current timestamp.
// Failures are logged and dropped.
func (s *Store) Set(fingerprint string, books []models.Book) {
	payload, err := json.Marshal(books)
	if err != nil {
		s.Log.Warn("cache encode failed", zap.String("fingerprint", fingerprint), zap.Error(err))
		return
	}

	_, err = s.DB.Exec(`
		INSERT INTO search_cache (fingerprint, created_at, payload)
		VALUES (?, ?, ?)
		ON CONFLICT(fingerprint) DO UPDATE SET
			created_at = excluded.created_at,
			payload = excluded.payload
	`, fingerprint, s.Now().UnixMilli(), string(payload))
	if err != nil {
		s.Log.Warn("cache write failed", zap.String("fingerprint", fingerprint), zap.Error(err))
	}
}

func (s *Store) evict(fingerprint string) {
	if _, err := s.DB.Exec(`DELETE FROM search_cache WHERE fingerprint = ?`, fingerprint); err != nil {
		s.Log.Warn("cache evict failed", zap.String("fingerprint", fingerprint), zap.Error(err))
	}
}
