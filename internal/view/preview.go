package view

import "bookconnect/internal/catalog"

// Preview is what a list item shows. Its markup depends on these four
// fields only, so any change to one of them means re-rendering the item.
type Preview struct {
	ID     string
	Title  string
	Author string
	Image  string
}

// NewPreview builds the preview of b, showing authorName as the author.
func NewPreview(b catalog.Book, authorName string) Preview {
	return Preview{
		ID:     b.ID,
		Title:  b.Title,
		Author: authorName,
		Image:  b.Image,
	}
}

// HTML renders the preview element.
func (p Preview) HTML() (string, error) {
	return execFragment("preview", p)
}
