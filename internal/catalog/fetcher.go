package catalog

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"bookmap/internal/cache"
	"bookmap/pkg/models"
)

// Fetcher wraps the catalog client with the persisted result cache.
// The pipeline for one call is fixed: cache read, then network, then
// normalize, then cache write. Failures past the cache never escape;
// the caller gets an empty list and renders its empty state.
type Fetcher struct {
	Client *Client
	Cache  *cache.Store
	Log    *zap.Logger

	mu   sync.Mutex
	gens map[string]uint64 // view key -> latest generation
}

func NewFetcher(client *Client, store *cache.Store, log *zap.Logger) *Fetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{Client: client, Cache: store, Log: log}
}

// Fetch returns the normalized result list for q. A fresh cache entry is
// returned without touching the network. On transport or decode failure the
// list is empty, never an error.
func (f *Fetcher) Fetch(ctx context.Context, q Query) []models.Book {
	fp := q.Fingerprint()

	if books, ok := f.Cache.Get(fp); ok {
		f.Log.Debug("cache hit", zap.String("fingerprint", fp), zap.Int("count", len(books)))
		return books
	}

	volumes, err := f.Client.Search(ctx, q)
	if err != nil {
		f.Log.Warn("catalog fetch failed", zap.String("fingerprint", fp), zap.Error(err))
		return []models.Book{}
	}

	books := make([]models.Book, 0, len(volumes))
	for _, v := range volumes {
		books = append(books, Normalize(v))
	}

	f.Cache.Set(fp, books)
	return books
}

// FetchCurrent runs Fetch under a request-generation token scoped to one
// view surface. Every call for viewKey bumps that view's generation; a slow
// response overtaken by a newer fetch for the *same* view reports
// current=false and must not be rendered. Fetches for unrelated views never
// supersede each other. In-flight requests are not cancelled, only their
// results discarded.
func (f *Fetcher) FetchCurrent(ctx context.Context, viewKey string, q Query) (books []models.Book, current bool) {
	f.mu.Lock()
	if f.gens == nil {
		f.gens = make(map[string]uint64)
	}
	f.gens[viewKey]++
	gen := f.gens[viewKey]
	f.mu.Unlock()

	books = f.Fetch(ctx, q)

	f.mu.Lock()
	current = f.gens[viewKey] == gen
	f.mu.Unlock()
	return books, current
}
