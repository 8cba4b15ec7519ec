package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"bookconnect/internal/catalog"
)

// Authors is the author table used by Dataset: a1 … a10.
var Authors = func() catalog.Lookup {
	entries := make([]catalog.Entry, 0, 10)
	for i := 1; i <= 10; i++ {
		entries = append(entries, catalog.Entry{ID: fmt.Sprintf("a%d", i), Name: fmt.Sprintf("Author %d", i)})
	}
	return catalog.MustLookup(entries...)
}()

// Genres is the genre table used by Dataset, deliberately not alphabetical.
var Genres = catalog.MustLookup(
	catalog.Entry{ID: "g3", Name: "Poetry"},
	catalog.Entry{ID: "g1", Name: "Fiction"},
	catalog.Entry{ID: "g2", Name: "History"},
)

// Dataset returns n books with IDs b1 … bn.
//
// Book i is written by author a((i-1)%10+1), so each author has n/10 books.
// Even books are g1, odd books g2, and every fifth book is also g3.
// Book i was published on 1 January of year 1990+i.
func Dataset(n int) catalog.Dataset {
	books := make([]catalog.Book, 0, n)
	for i := 1; i <= n; i++ {
		genres := []catalog.GenreID{"g2"}
		if i%2 == 0 {
			genres = []catalog.GenreID{"g1"}
		}
		if i%5 == 0 {
			genres = append(genres, "g3")
		}
		books = append(books, catalog.Book{
			ID:          fmt.Sprintf("b%d", i),
			Title:       fmt.Sprintf("Book %d", i),
			Author:      catalog.AuthorID(fmt.Sprintf("a%d", (i-1)%10+1)),
			Image:       fmt.Sprintf("https://img.example.com/b%d.jpg", i),
			Description: fmt.Sprintf("Description of book %d", i),
			Published:   time.Date(1990+i, time.January, 1, 0, 0, 0, 0, time.UTC),
			Genres:      genres,
		})
	}
	return catalog.Dataset{Books: books, Authors: Authors, Genres: Genres}
}

// MustStore builds a store over Dataset(n).
func MustStore(n, pageSize int) *catalog.Store {
	s, err := catalog.NewStore(Dataset(n), pageSize)
	if err != nil {
		panic(err)
	}
	return s
}

// StaticSource is a catalog.Source returning a fixed dataset.
type StaticSource struct {
	Dataset catalog.Dataset
	Err     error
}

func (s StaticSource) Load(_ context.Context) (catalog.Dataset, error) {
	return s.Dataset, s.Err
}

// NewFormRequest creates a form-encoded POST request for testing.
func NewFormRequest(path string, form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}
