package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/sakif/book-catalog/internal/apperror"
	"github.com/sakif/book-catalog/internal/model"
	"github.com/sakif/book-catalog/internal/repository"
)

// Compile-time check that *DB implements repository.BookRepository.
// If a method goes missing, this line fails to compile — much earlier
// feedback than a type error at the call site.
var _ repository.BookRepository = (*DB)(nil)

// Create inserts a new book and fills in the storage-assigned fields.
//
// The ID comes from SQLite's autoincrement via LastInsertId — callers
// never choose book IDs. The pointer receiver matters: after Create
// returns, the caller's struct carries the assigned ID and timestamps.
func (db *DB) Create(ctx context.Context, book *model.Book) error {
	now := time.Now()
	book.CreatedAt = now
	book.UpdatedAt = now

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO books (title, author, genre, year_published, summary, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		book.Title,
		book.Author,
		book.Genre,
		book.YearPublished,
		book.Summary,
		book.CreatedAt,
		book.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating book: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new book id: %w", err)
	}
	book.ID = id

	return nil
}

// GetByID retrieves a single book.
//
// sql.ErrNoRows is not a real failure — it just means no matching row.
// We translate it to the domain's NotFound error so the handler layer can
// map it to 404 without knowing anything about database/sql.
func (db *DB) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	var b model.Book

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, author, genre, year_published, summary, created_at, updated_at
		 FROM books
		 WHERE id = ?`,
		id,
	).Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.Genre,
		&b.YearPublished,
		&b.Summary,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("book", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlite: getting book %d: %w", id, err)
	}

	return &b, nil
}

// List returns every book, ordered by ascending ID so listings are
// deterministic across calls.
func (db *DB) List(ctx context.Context) ([]model.Book, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, author, genre, year_published, summary, created_at, updated_at
		 FROM books
		 ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing books: %w", err)
	}
	// rows holds a pool connection until closed — leaking it would
	// eventually starve the pool and hang the server.
	defer rows.Close()

	books := []model.Book{}
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.Genre,
			&b.YearPublished, &b.Summary, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning book row: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating books: %w", err)
	}

	return books, nil
}

// Update loads a book, lets apply mutate it, and writes the result back —
// all inside one transaction. The DSN's immediate transaction lock means a
// concurrent writer blocks until this commits, so the read and the write
// are atomic with respect to other requests touching the same row:
// nothing can slip in between and be overwritten.
//
// apply errors (the service's validation, typically) abort the
// transaction and come back unwrapped so errors.Is still classifies them.
func (db *DB) Update(ctx context.Context, id int64, apply func(*model.Book) error) (*model.Book, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite: beginning update transaction: %w", err)
	}
	defer tx.Rollback()

	var b model.Book
	err = tx.QueryRowContext(ctx,
		`SELECT id, title, author, genre, year_published, summary, created_at, updated_at
		 FROM books
		 WHERE id = ?`,
		id,
	).Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.Genre,
		&b.YearPublished,
		&b.Summary,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("book", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlite: getting book %d for update: %w", id, err)
	}

	if err := apply(&b); err != nil {
		return nil, err
	}
	b.UpdatedAt = time.Now()

	_, err = tx.ExecContext(ctx,
		`UPDATE books
		 SET title = ?, author = ?, genre = ?, year_published = ?, summary = ?, updated_at = ?
		 WHERE id = ?`,
		b.Title,
		b.Author,
		b.Genre,
		b.YearPublished,
		b.Summary,
		b.UpdatedAt,
		b.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating book %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlite: committing update of book %d: %w", id, err)
	}

	return &b, nil
}

// Delete removes a book. The schema's ON DELETE CASCADE removes all of
// the book's reviews as part of the same statement, so the parent and its
// children disappear atomically.
func (db *DB) Delete(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM books WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting book %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("book", strconv.FormatInt(id, 10))
	}

	return nil
}
