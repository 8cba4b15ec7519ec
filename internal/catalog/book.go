package catalog

import (
	"errors"
	"time"
)

// Any is the filter value that matches every author or genre.
const Any = "any"

// ErrInvalidDataset is returned when a dataset fails validation.
var ErrInvalidDataset = errors.New("invalid dataset")

// AuthorID identifies an entry of the author lookup table.
type AuthorID string

// GenreID identifies an entry of the genre lookup table.
type GenreID string

// Book is an immutable catalog entry.
type Book struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Author      AuthorID  `json:"author" yaml:"author"`
	Image       string    `json:"image" yaml:"image"`
	Description string    `json:"description" yaml:"description"`
	Published   time.Time `json:"published" yaml:"published"`
	Genres      []GenreID `json:"genres" yaml:"genres"`
}

// Year returns the publication year in UTC.
func (b Book) Year() int {
	return b.Published.UTC().Year()
}

// HasGenre reports whether g appears in the book's genre list.
func (b Book) HasGenre(g GenreID) bool {
	for _, genre := range b.Genres {
		if genre == g {
			return true
		}
	}
	return false
}

// Filter selects books by title substring, author and genre.
// Author and Genre set to Any (or left empty) match every book.
type Filter struct {
	Title  string   `json:"title"`
	Author AuthorID `json:"author"`
	Genre  GenreID  `json:"genre"`
}

// AllBooks is the filter the catalog starts with.
func AllBooks() Filter {
	return Filter{Author: Any, Genre: Any}
}

func (f Filter) anyAuthor() bool {
	return f.Author == "" || f.Author == Any
}

func (f Filter) anyGenre() bool {
	return f.Genre == "" || f.Genre == Any
}
