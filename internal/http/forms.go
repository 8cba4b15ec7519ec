package http

import (
	"errors"
	"net/http"
	"strings"

	"bookconnect/internal/catalog"
	"bookconnect/internal/httpx"
)

type searchForm struct {
	Title  string `validate:"max=200"`
	Genre  string `validate:"required,catalog_ref"`
	Author string `validate:"required,catalog_ref"`
}

func (f searchForm) filter() catalog.Filter {
	return catalog.Filter{
		Title:  f.Title,
		Author: catalog.AuthorID(f.Author),
		Genre:  catalog.GenreID(f.Genre),
	}
}

type settingsForm struct {
	Theme string `validate:"required,oneof=day night"`
}

func (f settingsForm) night() bool {
	return f.Theme == "night"
}

// activateForm carries the activated list item either directly as a book ID
// or as a selector for the node that received the click.
type activateForm struct {
	Preview string `validate:"omitempty,book_id"`
	Target  string `validate:"max=256"`
}

// orAny maps an empty select value to the match-everything key.
func orAny(v string) string {
	if strings.TrimSpace(v) == "" {
		return catalog.Any
	}
	return v
}

func decodeSearchForm(r *http.Request) searchForm {
	return searchForm{
		Title:  r.PostForm.Get("title"),
		Genre:  orAny(r.PostForm.Get("genre")),
		Author: orAny(r.PostForm.Get("author")),
	}
}

func decodeSettingsForm(r *http.Request) settingsForm {
	return settingsForm{Theme: strings.ToLower(strings.TrimSpace(r.PostForm.Get("theme")))}
}

func decodeActivateForm(r *http.Request) activateForm {
	return activateForm{
		Preview: strings.TrimSpace(r.PostForm.Get("preview")),
		Target:  r.PostForm.Get("target"),
	}
}

// parseForm reads the request body and writes the error response itself
// when the body is unusable.
func parseForm(w http.ResponseWriter, r *http.Request) bool {
	err := r.ParseForm()
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		httpx.JSONError(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large", nil)
		return false
	}
	httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_FORM", "Request body is not a valid form", nil)
	return false
}

func writeValidationError(w http.ResponseWriter, r *http.Request, errs []ValidationError) {
	details := make([]httpx.ErrorDetail, 0, len(errs))
	for _, e := range errs {
		details = append(details, httpx.ErrorDetail{Field: e.Field, Message: e.Message})
	}
	httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid form input", details)
}
