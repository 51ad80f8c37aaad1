package discovery

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookmap/internal/activity"
	"bookmap/internal/catalog"
	"bookmap/internal/view"
	"bookmap/pkg/models"
)

const (
	defaultMax   = 20
	defaultWidth = 1200 // shelf container width when the client sends none
)

// Handler serves the discovery views: search, latest releases, genre and
// mood pages, the recent-activity widget, and the shared modal. All views
// go through the same fetcher and the same modal instance.
type Handler struct {
	Fetcher *catalog.Fetcher
	Modal   *view.Modal
	Tracker *activity.Tracker
	Grid    *view.GridRenderer
	Shelf   view.ShelfRenderer
	Log     *zap.Logger

	// DefaultTopic is substituted for empty queries; falls back to the
	// catalog default when unset.
	DefaultTopic string
}

func NewHandler(fetcher *catalog.Fetcher, modal *view.Modal, tracker *activity.Tracker, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		Fetcher: fetcher,
		Modal:   modal,
		Tracker: tracker,
		Grid:    view.NewGridRenderer(),
		Log:     log,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.search)       // GET /api/v1/search?q=&max=&width=
	rg.GET("/latest", h.latest)       // GET /api/v1/latest?q=&max=&year=
	rg.GET("/genres/:genre", h.genre) // GET /api/v1/genres/fantasy
	rg.GET("/moods/:mood", h.mood)    // GET /api/v1/moods/happy
	rg.GET("/recent", h.recent)
	rg.GET("/modal", h.modalState)
	rg.POST("/modal/open", h.modalOpen)
	rg.POST("/modal/close", h.modalClose)
}

func (h *Handler) search(c *gin.Context) {
	q := catalog.Query{
		Text: strings.TrimSpace(c.Query("q")),
		Max:  parseInt(c.Query("max"), defaultMax),
	}
	h.respond(c, "search", q, parseInt(c.Query("width"), defaultWidth), true)
}

func (h *Handler) latest(c *gin.Context) {
	q := catalog.Query{
		Text:    strings.TrimSpace(c.Query("q")),
		Max:     parseInt(c.Query("max"), defaultMax),
		OrderBy: "newest",
		Year:    parseInt(c.Query("year"), 0),
	}
	// the default latest view is this year's releases of the default topic
	if q.Text == "" && q.Year == 0 {
		q.Year = time.Now().Year()
	}
	h.respond(c, "latest", q, parseInt(c.Query("width"), defaultWidth), false)
}

func (h *Handler) genre(c *gin.Context) {
	q := catalog.Query{
		Text: GenreQuery(c.Param("genre")),
		Max:  parseInt(c.Query("max"), defaultMax),
	}
	h.respond(c, "genre", q, parseInt(c.Query("width"), defaultWidth), true)
}

func (h *Handler) mood(c *gin.Context) {
	q := catalog.Query{
		Text:    MoodQuery(c.Param("mood")),
		Max:     parseInt(c.Query("max"), defaultMax),
		OrderBy: "relevance",
	}
	h.respond(c, "mood", q, parseInt(c.Query("width"), defaultWidth), false)
}

// respond runs the shared fetch-and-render pipeline. Supersession is scoped
// to one view surface: a client that names its mount point via ?view= has a
// newer fetch for that surface discard an older in-flight one. Requests
// without a view token share no surface, so nothing supersedes them.
func (h *Handler) respond(c *gin.Context, viewName string, q catalog.Query, width int, shelves bool) {
	if q.Text == "" && h.DefaultTopic != "" {
		q.Text = h.DefaultTopic
	}

	var books []models.Book
	current := true
	if token := strings.TrimSpace(c.Query("view")); token != "" {
		books, current = h.Fetcher.FetchCurrent(c.Request.Context(), viewName+":"+token, q)
	} else {
		books = h.Fetcher.Fetch(c.Request.Context(), q)
	}
	if !current {
		h.Log.Debug("discarding stale fetch", zap.String("fingerprint", q.Fingerprint()))
		c.JSON(http.StatusOK, gin.H{"stale": true})
		return
	}

	grid, featured := h.Grid.Render(books)

	resp := gin.H{
		"count":    len(books),
		"items":    books,
		"grid":     grid,
		"featured": featured,
		"stale":    false,
	}
	if shelves {
		// an empty result list clears the shelves along with the grid
		resp["shelves"] = h.Shelf.Render(books, width)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) recent(c *gin.Context) {
	recent := h.Tracker.List()
	c.JSON(http.StatusOK, gin.H{
		"items":  recent,
		"widget": view.RenderRecentWidget(recent),
	})
}

func (h *Handler) modalState(c *gin.Context) {
	book, open := h.Modal.Current()
	resp := gin.H{"open": open, "modal": h.Modal.Render()}
	if open {
		resp["book"] = book
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) modalOpen(c *gin.Context) {
	var book models.Book
	if err := c.ShouldBindJSON(&book); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book"})
		return
	}
	h.Modal.Open(book)
	c.JSON(http.StatusOK, gin.H{"open": true, "modal": h.Modal.Render()})
}

func (h *Handler) modalClose(c *gin.Context) {
	h.Modal.Close()
	c.JSON(http.StatusOK, gin.H{"open": false})
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
