package catalog

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

//go:embed data/catalog.yaml
var embeddedData embed.FS

const embeddedPath = "data/catalog.yaml"

// publishedLayouts are tried in order when parsing a book's published date.
var publishedLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

type yamlDataset struct {
	Authors yaml.MapSlice `yaml:"authors"`
	Genres  yaml.MapSlice `yaml:"genres"`
	Books   []yamlBook    `yaml:"books"`
}

type yamlBook struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Author      string   `yaml:"author"`
	Image       string   `yaml:"image"`
	Description string   `yaml:"description"`
	Published   string   `yaml:"published"`
	Genres      []string `yaml:"genres"`
}

// YAMLSource reads a dataset from a YAML document.
type YAMLSource struct {
	fsys fs.FS
	path string
}

// NewEmbeddedSource returns the dataset compiled into the binary.
func NewEmbeddedSource() *YAMLSource {
	return &YAMLSource{fsys: embeddedData, path: embeddedPath}
}

// NewFileSource reads the dataset from a file on disk.
func NewFileSource(path string) *YAMLSource {
	return &YAMLSource{fsys: os.DirFS(filepath.Dir(path)), path: filepath.Base(path)}
}

// Load implements Source.
func (s *YAMLSource) Load(ctx context.Context) (Dataset, error) {
	if err := ctx.Err(); err != nil {
		return Dataset{}, err
	}
	data, err := fs.ReadFile(s.fsys, s.path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset %s: %w", s.path, err)
	}
	return ParseYAML(data)
}

// ParseYAML decodes a dataset document. Author and genre tables keep the
// order they are written in.
func ParseYAML(data []byte) (Dataset, error) {
	var doc yamlDataset
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Dataset{}, fmt.Errorf("decode dataset: %w", err)
	}

	authors, err := lookupFromMapSlice(doc.Authors)
	if err != nil {
		return Dataset{}, fmt.Errorf("authors: %w", err)
	}
	genres, err := lookupFromMapSlice(doc.Genres)
	if err != nil {
		return Dataset{}, fmt.Errorf("genres: %w", err)
	}

	books := make([]Book, 0, len(doc.Books))
	for _, yb := range doc.Books {
		published, err := ParsePublished(yb.Published)
		if err != nil {
			return Dataset{}, fmt.Errorf("book %q: %w", yb.ID, err)
		}
		b := Book{
			ID:          yb.ID,
			Title:       yb.Title,
			Author:      AuthorID(yb.Author),
			Image:       yb.Image,
			Description: yb.Description,
			Published:   published,
			Genres:      make([]GenreID, 0, len(yb.Genres)),
		}
		for _, g := range yb.Genres {
			b.Genres = append(b.Genres, GenreID(g))
		}
		books = append(books, b)
	}

	ds := Dataset{Books: books, Authors: authors, Genres: genres}
	if err := ds.Validate(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

// ParsePublished parses a publication date. Dates without a zone are UTC.
func ParsePublished(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid published date %q", v)
}

func lookupFromMapSlice(ms yaml.MapSlice) (Lookup, error) {
	entries := make([]Entry, 0, len(ms))
	for _, item := range ms {
		entries = append(entries, Entry{
			ID:   fmt.Sprint(item.Key),
			Name: fmt.Sprint(item.Value),
		})
	}
	return NewLookup(entries...)
}
