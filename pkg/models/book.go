package models

// Book is the normalized, internal form of a catalog search result
// used by the renderers, the cache, and the recent-activity store.
//
// Raw volumes from the catalog API are mapped into this structure first;
// every field has a deterministic default so downstream code never has to
// guard against missing data.
type Book struct {
	ID            string   `json:"id,omitempty"`          // catalog volume ID (may be empty)
	Title         string   `json:"title"`                 // never empty; "Untitled" when the source omits it
	Authors       string   `json:"authors"`               // comma-joined display string; "Unknown" when absent
	Description   string   `json:"desc"`                  // plain-text synopsis, possibly empty
	Cover         string   `json:"cover"`                 // always a loadable https URL (placeholder fallback)
	PreviewLink   string   `json:"previewLink,omitempty"` // external preview page, or empty
	PublishedDate string   `json:"pubDate,omitempty"`     // free-form: "YYYY", "YYYY-MM-DD", or empty
	Rating        *float64 `json:"rating,omitempty"`      // average rating, nil when absent
}

// Key identifies a book for de-duplication. Source IDs are missing or
// inconsistent across endpoints, so identity is (title, authors).
func (b Book) Key() string {
	return b.Title + "\x00" + b.Authors
}
