package view

// Overlay is one of the page's dialogs.
type Overlay string

const (
	SearchOverlay   Overlay = "[data-search-overlay]"
	SettingsOverlay Overlay = "[data-settings-overlay]"
	DetailOverlay   Overlay = "[data-list-active]"
)

// Open shows the overlay. Opening search focuses its title field.
func (r *Renderer) Open(o Overlay) {
	r.doc.Find(string(o)).SetAttr("open", "")
	if o == SearchOverlay {
		r.doc.Find(SearchTitle).SetAttr("autofocus", "")
	}
}

// Close hides the overlay.
func (r *Renderer) Close(o Overlay) {
	r.doc.Find(string(o)).RemoveAttr("open")
	if o == SearchOverlay {
		r.doc.Find(SearchTitle).RemoveAttr("autofocus")
	}
}

// IsOpen reports whether the overlay is shown.
func (r *Renderer) IsOpen(o Overlay) bool {
	_, ok := r.doc.Find(string(o)).Attr("open")
	return ok
}
