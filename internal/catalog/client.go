package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"bookmap/pkg/models"
)

// DefaultBase is the public volumes search API.
const DefaultBase = "https://www.googleapis.com/books/v1"

// DefaultTopic is substituted for an empty or "all" query so we never issue
// an unconstrained search.
const DefaultTopic = "fiction"

// Query carries every parameter that changes result content.
type Query struct {
	Text    string
	Max     int    // result cap
	OrderBy string // "relevance" (default) or "newest"
	Year    int    // optional inclusive publication-year filter, 0 = none
}

// Fingerprint addresses the cache entry for this query.
func (q Query) Fingerprint() string {
	return fmt.Sprintf("latest_%s_%d_%d", q.effectiveText(), q.Max, q.Year)
}

func (q Query) effectiveText() string {
	if q.Text == "" || q.Text == "all" {
		return DefaultTopic
	}
	return q.Text
}

// Client fetches raw volumes from the catalog search endpoint.
type Client struct {
	HTTP *http.Client
	Base string
}

func NewClient(base string) *Client {
	if base == "" {
		base = DefaultBase
	}
	return &Client{
		HTTP: &http.Client{Timeout: 12 * time.Second},
		Base: base,
	}
}

// Search issues the remote query and decodes the item list. The year filter
// is expressed as an inclusive publishedDate range appended to the query
// text, which is how the search endpoint expects it.
func (c *Client) Search(ctx context.Context, q Query) ([]models.Volume, error) {
	text := q.effectiveText()
	if q.Year > 0 {
		text += fmt.Sprintf("+publishedDate:[%d-01-01 TO %d-12-31]", q.Year, q.Year)
	}

	u, err := url.Parse(c.Base + "/volumes")
	if err != nil {
		return nil, fmt.Errorf("catalog: parse base url: %w", err)
	}
	params := u.Query()
	params.Set("q", text)
	params.Set("maxResults", fmt.Sprintf("%d", q.Max))
	if q.OrderBy != "" {
		params.Set("orderBy", q.OrderBy)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: build request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: request: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("catalog: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: status %d: %s", resp.StatusCode, string(body))
	}

	var list models.VolumeList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	return list.Items, nil
}
