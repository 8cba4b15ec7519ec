// Package view keeps the catalog page as a server-side document and applies
// list, lookup, detail and theme updates to it. The page served to the
// browser is always a serialization of this document.
//
// A Renderer is not safe for concurrent use; callers serialize access.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"bookconnect/internal/catalog"

	"github.com/PuerkitoBio/goquery"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets
var assetFS embed.FS

var fragments = template.Must(template.ParseFS(templateFS, "templates/fragments.html"))

// Addressable regions of the page.
const (
	ListItems      = "[data-list-items]"
	ListButton     = "[data-list-button]"
	ListMessage    = "[data-list-message]"
	ListBlur       = "[data-list-blur]"
	ListImage      = "[data-list-image]"
	ListTitle      = "[data-list-title]"
	ListSubtitle   = "[data-list-subtitle]"
	ListDesc       = "[data-list-description]"
	SearchTitle    = "[data-search-title]"
	SearchGenres   = "[data-search-genres]"
	SearchAuthors  = "[data-search-authors]"
	SettingsTheme  = "[data-settings-theme]"
	previewMarker  = "[data-preview]"
	emptyListClass = "list__message_show"
)

// Renderer owns the page document.
type Renderer struct {
	doc     *goquery.Document
	authors catalog.Lookup
	night   bool
}

// New parses the page skeleton. authors resolves author IDs to the names
// shown on previews and in the detail view.
func New(authors catalog.Lookup) (*Renderer, error) {
	page, err := templateFS.Open("templates/page.html")
	if err != nil {
		return nil, err
	}
	defer page.Close()

	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	r := &Renderer{doc: doc, authors: authors}
	r.SetTheme(false)
	return r, nil
}

// HTML serializes the whole document.
func (r *Renderer) HTML() (string, error) {
	return r.doc.Html()
}

// HTMLWithTheme serializes the document as it looks under the night or day
// theme. The document keeps its own theme.
func (r *Renderer) HTMLWithTheme(night bool) (string, error) {
	if night == r.night {
		return r.HTML()
	}
	prev := r.night
	r.SetTheme(night)
	defer r.SetTheme(prev)
	return r.HTML()
}

// Find exposes a read-only query over the document.
func (r *Renderer) Find(selector string) *goquery.Selection {
	return r.doc.Find(selector)
}

// Assets returns the static files referenced by the page.
func Assets() fs.FS {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

func execFragment(name string, data any) (string, error) {
	var sb strings.Builder
	if err := fragments.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return sb.String(), nil
}
