package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepo stores the dataset in the catalog_* tables. Rows are read
// back ordered by their position column so lookup and book order survive.
type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// Load implements Source.
func (r *PostgresRepo) Load(ctx context.Context) (Dataset, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	authors, err := r.loadLookup(ctx, "SELECT id, name FROM catalog_authors ORDER BY position")
	if err != nil {
		return Dataset{}, fmt.Errorf("load authors: %w", err)
	}
	genres, err := r.loadLookup(ctx, "SELECT id, name FROM catalog_genres ORDER BY position")
	if err != nil {
		return Dataset{}, fmt.Errorf("load genres: %w", err)
	}

	const booksSQL = `
		SELECT id, title, author_id, image, description, published, genres
		FROM catalog_books
		ORDER BY position`

	rows, err := r.db.Query(ctx, booksSQL)
	if err != nil {
		return Dataset{}, fmt.Errorf("load books: %w", err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var (
			b      Book
			author string
			gs     []string
		)
		if err := rows.Scan(&b.ID, &b.Title, &author, &b.Image, &b.Description, &b.Published, &gs); err != nil {
			return Dataset{}, fmt.Errorf("scan book: %w", err)
		}
		b.Author = AuthorID(author)
		b.Published = b.Published.UTC()
		b.Genres = make([]GenreID, 0, len(gs))
		for _, g := range gs {
			b.Genres = append(b.Genres, GenreID(g))
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return Dataset{}, err
	}

	ds := Dataset{Books: books, Authors: authors, Genres: genres}
	if err := ds.Validate(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

func (r *PostgresRepo) loadLookup(ctx context.Context, query string) (Lookup, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return Lookup{}, err
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Entry, error) {
		var e Entry
		err := row.Scan(&e.ID, &e.Name)
		return e, err
	})
	if err != nil {
		return Lookup{}, err
	}
	return NewLookup(entries...)
}

// ReplaceAll swaps the stored dataset for ds in one transaction.
func (r *PostgresRepo) ReplaceAll(ctx context.Context, ds Dataset) error {
	if err := ds.Validate(); err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, stmt := range []string{
		"DELETE FROM catalog_books",
		"DELETE FROM catalog_genres",
		"DELETE FROM catalog_authors",
	} {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("clear catalog: %w", err)
		}
	}

	for i, a := range ds.Authors.Entries() {
		if _, err := tx.Exec(ctx, "INSERT INTO catalog_authors (id, name, position) VALUES ($1, $2, $3)", a.ID, a.Name, i); err != nil {
			return fmt.Errorf("insert author %s: %w", a.ID, err)
		}
	}
	for i, g := range ds.Genres.Entries() {
		if _, err := tx.Exec(ctx, "INSERT INTO catalog_genres (id, name, position) VALUES ($1, $2, $3)", g.ID, g.Name, i); err != nil {
			return fmt.Errorf("insert genre %s: %w", g.ID, err)
		}
	}

	const bookSQL = `
		INSERT INTO catalog_books (id, title, author_id, image, description, published, genres, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for i, b := range ds.Books {
		gs := make([]string, 0, len(b.Genres))
		for _, g := range b.Genres {
			gs = append(gs, string(g))
		}
		if _, err := tx.Exec(ctx, bookSQL, b.ID, b.Title, string(b.Author), b.Image, b.Description, b.Published, gs, i); err != nil {
			return fmt.Errorf("insert book %s: %w", b.ID, err)
		}
	}

	return tx.Commit(ctx)
}

// Ping checks the database connection.
func (r *PostgresRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
