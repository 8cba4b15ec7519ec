package view

import (
	"strings"

	"bookconnect/internal/catalog"

	"github.com/PuerkitoBio/goquery"
)

// RenderLookupOptions fills the select at selector with an "any" option
// labeled allLabel followed by one option per lookup entry, in table order.
func (r *Renderer) RenderLookupOptions(selector string, l catalog.Lookup, allLabel string) error {
	var sb strings.Builder

	first, err := execFragment("option", catalog.Entry{ID: catalog.Any, Name: allLabel})
	if err != nil {
		return err
	}
	sb.WriteString(first)

	for _, e := range l.Entries() {
		opt, err := execFragment("option", e)
		if err != nil {
			return err
		}
		sb.WriteString(opt)
	}

	r.doc.Find(selector).SetHtml(sb.String())
	return nil
}

// SetFilterForm makes the search form show f.
func (r *Renderer) SetFilterForm(f catalog.Filter) {
	r.doc.Find(SearchTitle).SetAttr("value", f.Title)
	selectOption(r.doc.Find(SearchGenres), string(f.Genre))
	selectOption(r.doc.Find(SearchAuthors), string(f.Author))
}

func selectOption(sel *goquery.Selection, value string) {
	opts := sel.Find("option")
	opts.RemoveAttr("selected")
	opts.FilterFunction(func(_ int, o *goquery.Selection) bool {
		v, _ := o.Attr("value")
		return v == value
	}).SetAttr("selected", "")
}
