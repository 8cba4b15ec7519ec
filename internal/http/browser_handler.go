package http

import (
	"fmt"
	"io"
	"net/http"
	"sync"

	"bookconnect/internal/catalog"
	"bookconnect/internal/httpx"
	"bookconnect/internal/view"

	"go.uber.org/zap"
)

const (
	allGenresLabel  = "All Genres"
	allAuthorsLabel = "All Authors"

	colorSchemeHint = "Sec-CH-Prefers-Color-Scheme"
)

// BrowserHandler turns form submissions into catalog and page updates.
// Each request is one UI event and runs to completion under mu, so no
// handler observes matches and page out of step.
type BrowserHandler struct {
	mu          sync.Mutex
	store       *catalog.Store
	view        *view.Renderer
	logger      *zap.Logger
	themeChosen bool
}

// NewBrowserHandler renders the startup page: lookup options, the first
// page of the catalog, the load-more control and the default theme.
func NewBrowserHandler(store *catalog.Store, defaultNight bool, logger *zap.Logger) (*BrowserHandler, error) {
	ds := store.Dataset()
	renderer, err := view.New(ds.Authors)
	if err != nil {
		return nil, err
	}

	h := &BrowserHandler{
		store:  store,
		view:   renderer,
		logger: logger,
	}

	if err := renderer.RenderLookupOptions(view.SearchGenres, ds.Genres, allGenresLabel); err != nil {
		return nil, err
	}
	if err := renderer.RenderLookupOptions(view.SearchAuthors, ds.Authors, allAuthorsLabel); err != nil {
		return nil, err
	}
	if err := h.refreshList(); err != nil {
		return nil, err
	}
	renderer.SetTheme(defaultNight)
	return h, nil
}

// refreshList redraws the list from the first page of the current matches.
func (h *BrowserHandler) refreshList() error {
	if err := h.view.RenderInitial(h.store.CurrentSlice()); err != nil {
		return fmt.Errorf("render list: %w", err)
	}
	if err := h.view.UpdateLoadMoreControl(h.store.RemainingCount()); err != nil {
		return fmt.Errorf("render load more: %w", err)
	}
	h.view.SetEmpty(h.store.Empty())
	h.view.SetFilterForm(h.store.Filter())
	return nil
}

// event runs fn as one UI event and answers with a redirect to the page.
func (h *BrowserHandler) event(w http.ResponseWriter, r *http.Request, name string, fn func() error) {
	h.mu.Lock()
	err := fn()
	h.mu.Unlock()

	if err != nil {
		h.logger.Error("event failed",
			zap.String("event", name),
			zap.String("request_id", httpx.RequestIDFrom(r)),
			zap.Error(err),
		)
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred", nil)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// @Summary Catalog page
// @Description Current state of the catalog page
// @Produce html
// @Success 200 {string} string
// @Router / [get]
func (h *BrowserHandler) Page(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	night := h.view.Night()
	if !h.themeChosen && r.Header.Get(colorSchemeHint) == "dark" {
		night = true
	}
	page, err := h.view.HTMLWithTheme(night)
	h.mu.Unlock()

	if err != nil {
		h.logger.Error("serialize page", zap.Error(err))
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred", nil)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Accept-CH", colorSchemeHint)
	w.Header().Add("Vary", colorSchemeHint)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, page)
}

// @Summary Apply search filter
// @Accept x-www-form-urlencoded
// @Param title formData string false "Title substring"
// @Param genre formData string false "Genre key or any"
// @Param author formData string false "Author key or any"
// @Success 303
// @Failure 400 {object} httpx.ErrorResponse
// @Router /search [post]
func (h *BrowserHandler) Search(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	form := decodeSearchForm(r)
	if errs := ValidateStruct(form); len(errs) > 0 {
		writeValidationError(w, r, errs)
		return
	}

	h.event(w, r, "search", func() error {
		h.store.ApplyFilter(form.filter())
		if err := h.refreshList(); err != nil {
			return err
		}
		h.view.Close(view.SearchOverlay)
		h.logger.Debug("filter applied",
			zap.Any("filter", h.store.Filter()),
			zap.Int("matches", h.store.Matches()),
		)
		return nil
	})
}

// @Summary Show more results
// @Success 303
// @Router /list/more [post]
func (h *BrowserHandler) LoadMore(w http.ResponseWriter, r *http.Request) {
	h.event(w, r, "load_more", func() error {
		if err := h.view.AppendSlice(h.store.NextSlice()); err != nil {
			return fmt.Errorf("render list: %w", err)
		}
		h.store.AdvancePage()
		return h.view.UpdateLoadMoreControl(h.store.RemainingCount())
	})
}

// @Summary Open book detail
// @Accept x-www-form-urlencoded
// @Param preview formData string false "Book ID of the activated preview"
// @Param target formData string false "Selector of the activated node"
// @Success 303
// @Failure 400 {object} httpx.ErrorResponse
// @Router /list/activate [post]
func (h *BrowserHandler) Activate(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	form := decodeActivateForm(r)
	if errs := ValidateStruct(form); len(errs) > 0 {
		writeValidationError(w, r, errs)
		return
	}

	h.event(w, r, "activate", func() error {
		id := form.Preview
		if id == "" {
			resolved, ok := h.view.ResolvePreview(form.Target)
			if !ok {
				h.logger.Debug("activation outside a preview", zap.String("target", form.Target))
				return nil
			}
			id = resolved
		}

		book, ok := h.store.Book(id)
		if !ok {
			h.logger.Debug("activation of unknown book", zap.String("id", id))
			return nil
		}
		h.view.RenderDetail(book)
		return nil
	})
}

// @Summary Change theme
// @Accept x-www-form-urlencoded
// @Param theme formData string true "day or night"
// @Success 303
// @Failure 400 {object} httpx.ErrorResponse
// @Router /settings [post]
func (h *BrowserHandler) Settings(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	form := decodeSettingsForm(r)
	if errs := ValidateStruct(form); len(errs) > 0 {
		writeValidationError(w, r, errs)
		return
	}

	h.event(w, r, "settings", func() error {
		h.view.SetTheme(form.night())
		h.themeChosen = true
		h.view.Close(view.SettingsOverlay)
		return nil
	})
}

// Overlay returns a handler that opens or closes o without touching the
// catalog.
func (h *BrowserHandler) Overlay(o view.Overlay, open bool) http.HandlerFunc {
	name := "close_overlay"
	if open {
		name = "open_overlay"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		h.event(w, r, name, func() error {
			if open {
				h.view.Open(o)
			} else {
				h.view.Close(o)
			}
			return nil
		})
	}
}

type catalogSnapshot struct {
	Filter     catalog.Filter `json:"filter"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Matches    int            `json:"matches"`
	Remaining  int            `json:"remaining"`
	Visible    []string       `json:"visible"`
	Theme      string         `json:"theme"`
	DetailOpen bool           `json:"detail_open"`
}

// @Summary Catalog state
// @Description Active filter, paging counters and the book IDs on the page
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Router /api/catalog [get]
func (h *BrowserHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	snap := catalogSnapshot{
		Filter:     h.store.Filter(),
		Page:       h.store.Page(),
		PageSize:   h.store.PageSize(),
		Matches:    h.store.Matches(),
		Remaining:  h.store.RemainingCount(),
		Visible:    h.view.ListedIDs(),
		Theme:      "day",
		DetailOpen: h.view.IsOpen(view.DetailOverlay),
	}
	if h.view.Night() {
		snap.Theme = "night"
	}
	h.mu.Unlock()

	httpx.JSONSuccess(w, r, snap, nil)
}
