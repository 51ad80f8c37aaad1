package view

import (
	"fmt"
	"html"
	"sync"

	"bookmap/pkg/models"
)

// Recorder receives every book the modal is opened on. Satisfied by
// activity.Tracker.
type Recorder interface {
	Save(models.Book)
}

// Modal is the universal preview viewer. There is exactly one instance per
// page, bound to at most one book at a time; every view (grid, shelf,
// recent widget) opens books through the same instance so handlers are
// never bound twice.
type Modal struct {
	mu       sync.Mutex
	open     bool
	book     models.Book
	recorder Recorder
}

func NewModal(recorder Recorder) *Modal {
	return &Modal{recorder: recorder}
}

// Open binds the modal to book, re-binding if it is already open, locks
// page scroll, and records the view.
func (m *Modal) Open(book models.Book) {
	m.mu.Lock()
	m.open = true
	m.book = book
	m.mu.Unlock()

	if m.recorder != nil {
		m.recorder.Save(book)
	}
}

// Close returns the modal to its initial state and releases page scroll.
func (m *Modal) Close() {
	m.mu.Lock()
	m.open = false
	m.book = models.Book{}
	m.mu.Unlock()
}

func (m *Modal) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// Current returns the bound book, ok=false when closed.
func (m *Modal) Current() (models.Book, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.book, m.open
}

// ScrollLocked reports whether page scroll is suppressed; it is locked for
// exactly as long as the modal is open.
func (m *Modal) ScrollLocked() bool {
	return m.IsOpen()
}

// Render produces the populated modal fragment, or an empty string while
// closed. The preview action only appears when the book has a preview
// link; otherwise a placeholder takes its place.
func (m *Modal) Render() string {
	m.mu.Lock()
	book := m.book
	open := m.open
	m.mu.Unlock()

	if !open {
		return ""
	}

	desc := book.Description
	if desc == "" {
		desc = "No description available."
	}

	actions := `<span id="noPreview" class="muted">Preview not available</span>`
	if book.PreviewLink != "" {
		actions = fmt.Sprintf(
			`<a id="previewLink" class="preview-btn" href="%s" target="_blank" rel="noopener noreferrer">Preview</a>`,
			html.EscapeString(book.PreviewLink),
		)
	}

	return fmt.Sprintf(`<div id="modal" class="modal open" role="dialog" aria-modal="true" aria-hidden="false">
  <div class="modal-card" role="document">
    <div class="modal-left">
      <div class="cover"><img id="modalCover" src="%s" alt="%s cover"></div>
    </div>
    <div class="modal-right">
      <div class="modal-header">
        <div>
          <h2 id="modalTitle">%s</h2>
          <p id="modalAuthor" class="muted">%s</p>
        </div>
        <button id="closeModal" class="close-btn" aria-label="Close viewer">&#10005;</button>
      </div>
      <div id="modalDesc" class="modal-desc muted">%s</div>
      <div class="modal-actions">%s</div>
    </div>
  </div>
</div>`,
		html.EscapeString(book.Cover),
		html.EscapeString(book.Title),
		html.EscapeString(book.Title),
		html.EscapeString(book.Authors),
		html.EscapeString(desc),
		actions,
	)
}
