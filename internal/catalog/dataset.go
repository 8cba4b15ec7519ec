package catalog

import "fmt"

// Dataset is the static input of the catalog: books in display order plus
// the author and genre lookup tables.
type Dataset struct {
	Books   []Book
	Authors Lookup
	Genres  Lookup
}

// Validate checks that book IDs are unique and non-empty and that every
// author and genre reference resolves.
func (d Dataset) Validate() error {
	seen := make(map[string]struct{}, len(d.Books))
	for i, b := range d.Books {
		if b.ID == "" {
			return fmt.Errorf("%w: book #%d has no id", ErrInvalidDataset, i)
		}
		if _, dup := seen[b.ID]; dup {
			return fmt.Errorf("%w: duplicate book id %q", ErrInvalidDataset, b.ID)
		}
		seen[b.ID] = struct{}{}

		if !d.Authors.Has(string(b.Author)) {
			return fmt.Errorf("%w: book %q references unknown author %q", ErrInvalidDataset, b.ID, b.Author)
		}
		for _, g := range b.Genres {
			if !d.Genres.Has(string(g)) {
				return fmt.Errorf("%w: book %q references unknown genre %q", ErrInvalidDataset, b.ID, g)
			}
		}
	}
	return nil
}
