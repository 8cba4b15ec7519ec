package view

import (
	"strings"

	"bookconnect/internal/catalog"

	"github.com/PuerkitoBio/goquery"
)

// RenderInitial replaces the list with one preview per book.
func (r *Renderer) RenderInitial(books []catalog.Book) error {
	html, err := r.previews(books)
	if err != nil {
		return err
	}
	r.doc.Find(ListItems).SetHtml(html)
	return nil
}

// AppendSlice adds one preview per book after the existing ones.
func (r *Renderer) AppendSlice(delta []catalog.Book) error {
	if len(delta) == 0 {
		return nil
	}
	html, err := r.previews(delta)
	if err != nil {
		return err
	}
	r.doc.Find(ListItems).AppendHtml(html)
	return nil
}

// UpdateLoadMoreControl disables the load-more button when nothing
// remains and shows the remaining count otherwise.
func (r *Renderer) UpdateLoadMoreControl(remaining int) error {
	remaining = max(remaining, 0)
	label, err := execFragment("load-more", remaining)
	if err != nil {
		return err
	}

	button := r.doc.Find(ListButton)
	if remaining == 0 {
		button.SetAttr("disabled", "")
	} else {
		button.RemoveAttr("disabled")
	}
	button.SetHtml(label)
	return nil
}

// SetEmpty shows or hides the "no results" message.
func (r *Renderer) SetEmpty(empty bool) {
	msg := r.doc.Find(ListMessage)
	if empty {
		msg.AddClass(emptyListClass)
	} else {
		msg.RemoveClass(emptyListClass)
	}
}

// ListedIDs returns the book IDs of the rendered previews in order.
func (r *Renderer) ListedIDs() []string {
	items := r.doc.Find(ListItems).Find(previewMarker)
	out := make([]string, 0, items.Length())
	items.Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("data-preview")
		out = append(out, id)
	})
	return out
}

// ResolvePreview finds the element matching target and walks up from it to
// the nearest list item, returning that item's book ID.
func (r *Renderer) ResolvePreview(target string) (string, bool) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", false
	}
	node := r.doc.Find(ListItems).Find(target).First()
	if node.Length() == 0 {
		return "", false
	}
	id, ok := node.Closest(previewMarker).Attr("data-preview")
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

func (r *Renderer) previews(books []catalog.Book) (string, error) {
	var sb strings.Builder
	for _, b := range books {
		name, _ := r.authors.Name(string(b.Author))
		html, err := NewPreview(b, name).HTML()
		if err != nil {
			return "", err
		}
		sb.WriteString(html)
	}
	return sb.String(), nil
}
