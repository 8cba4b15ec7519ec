package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Store owns the catalog state: the full dataset, the active filter, the
// books that match it and how many pages of matches have been revealed.
//
// Store is not safe for concurrent use; callers serialize access.
type Store struct {
	dataset  Dataset
	folded   []string
	byID     map[string]int
	pageSize int

	filter  Filter
	matches []Book
	page    int
}

// NewStore creates a store showing the first page of the whole dataset.
func NewStore(ds Dataset, pageSize int) (*Store, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", pageSize)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	fold := cases.Fold()
	s := &Store{
		dataset:  ds,
		folded:   make([]string, len(ds.Books)),
		byID:     make(map[string]int, len(ds.Books)),
		pageSize: pageSize,
	}
	for i, b := range ds.Books {
		s.folded[i] = fold.String(b.Title)
		s.byID[b.ID] = i
	}
	s.ApplyFilter(AllBooks())
	return s, nil
}

// ApplyFilter recomputes the matches for f and rewinds to the first page.
// Books keep their dataset order.
func (s *Store) ApplyFilter(f Filter) {
	f.Title = strings.TrimSpace(f.Title)
	if f.anyAuthor() {
		f.Author = Any
	}
	if f.anyGenre() {
		f.Genre = Any
	}

	title := ""
	if f.Title != "" {
		title = cases.Fold().String(f.Title)
	}

	matches := make([]Book, 0, len(s.dataset.Books))
	for i, b := range s.dataset.Books {
		if f.Genre != Any && !b.HasGenre(f.Genre) {
			continue
		}
		if title != "" && !strings.Contains(s.folded[i], title) {
			continue
		}
		if f.Author != Any && b.Author != f.Author {
			continue
		}
		matches = append(matches, b)
	}

	s.page = 1
	s.filter = f
	s.matches = matches
}

// CurrentSlice returns every revealed match.
func (s *Store) CurrentSlice() []Book {
	return s.matches[:s.revealed()]
}

// NextSlice returns the page of matches that AdvancePage would reveal.
func (s *Store) NextSlice() []Book {
	start := s.revealed()
	end := min((s.page+1)*s.pageSize, len(s.matches))
	if start >= end {
		return nil
	}
	return s.matches[start:end]
}

// AdvancePage reveals the next page. Once nothing remains it does nothing.
func (s *Store) AdvancePage() {
	if s.RemainingCount() == 0 {
		return
	}
	s.page++
}

// RemainingCount returns how many matches are still hidden.
func (s *Store) RemainingCount() int {
	return max(len(s.matches)-s.page*s.pageSize, 0)
}

// Book returns the dataset entry with the given ID.
func (s *Store) Book(id string) (Book, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Book{}, false
	}
	return s.dataset.Books[i], true
}

// Dataset returns the dataset the store was built from.
func (s *Store) Dataset() Dataset { return s.dataset }

// Filter returns the active filter.
func (s *Store) Filter() Filter { return s.filter }

// Page returns the 1-based count of revealed pages.
func (s *Store) Page() int { return s.page }

// PageSize returns the number of books revealed per page.
func (s *Store) PageSize() int { return s.pageSize }

// Matches returns the number of books matching the active filter.
func (s *Store) Matches() int { return len(s.matches) }

// Empty reports whether the active filter matched nothing.
func (s *Store) Empty() bool { return len(s.matches) == 0 }

func (s *Store) revealed() int {
	return min(s.page*s.pageSize, len(s.matches))
}
