package catalog

import "fmt"

// Entry is one row of a lookup table.
type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Lookup maps IDs to display names and remembers insertion order.
type Lookup struct {
	entries []Entry
	index   map[string]int
}

// NewLookup builds a lookup from entries in the given order.
// Duplicate IDs are rejected.
func NewLookup(entries ...Entry) (Lookup, error) {
	l := Lookup{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		if e.ID == "" {
			return Lookup{}, fmt.Errorf("%w: empty lookup id", ErrInvalidDataset)
		}
		if _, dup := l.index[e.ID]; dup {
			return Lookup{}, fmt.Errorf("%w: duplicate lookup id %q", ErrInvalidDataset, e.ID)
		}
		l.index[e.ID] = len(l.entries)
		l.entries = append(l.entries, e)
	}
	return l, nil
}

// MustLookup is like NewLookup but panics on error. Meant for tests and fixtures.
func MustLookup(entries ...Entry) Lookup {
	l, err := NewLookup(entries...)
	if err != nil {
		panic(err)
	}
	return l
}

// Name returns the display name for id.
func (l Lookup) Name(id string) (string, bool) {
	i, ok := l.index[id]
	if !ok {
		return "", false
	}
	return l.entries[i].Name, true
}

// Has reports whether id is a key of the table.
func (l Lookup) Has(id string) bool {
	_, ok := l.index[id]
	return ok
}

// Entries returns the rows in insertion order.
func (l Lookup) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of rows.
func (l Lookup) Len() int {
	return len(l.entries)
}
