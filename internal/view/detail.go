package view

import (
	"fmt"

	"bookconnect/internal/catalog"
)

// RenderDetail fills the detail view with b and opens it. The subtitle
// reads "<author> (<year>)" with the year taken in UTC.
func (r *Renderer) RenderDetail(b catalog.Book) {
	author, ok := r.authors.Name(string(b.Author))
	if !ok {
		author = string(b.Author)
	}

	r.doc.Find(ListBlur).SetAttr("src", b.Image)
	r.doc.Find(ListImage).SetAttr("src", b.Image)
	r.doc.Find(ListTitle).SetText(b.Title)
	r.doc.Find(ListSubtitle).SetText(fmt.Sprintf("%s (%d)", author, b.Year()))
	r.doc.Find(ListDesc).SetText(b.Description)
	r.Open(DetailOverlay)
}
