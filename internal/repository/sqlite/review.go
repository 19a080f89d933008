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

// compile-time check that *DB implements repository.ReviewRepository
var _ repository.ReviewRepository = (*DB)(nil)

// CreateReview inserts a review for an existing book.
//
// The book-exists check and the insert run inside one transaction, so a
// concurrent DELETE of the book cannot slip between them — either the
// review attaches to a live book or the whole operation fails with
// NotFound and no row is written.
func (db *DB) CreateReview(ctx context.Context, review *model.Review) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning review transaction: %w", err)
	}
	// Rollback after a successful Commit is a no-op, so deferring it
	// covers every early-return path below.
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM books WHERE id = ?`, review.BookID,
	).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperror.NotFound("book", strconv.FormatInt(review.BookID, 10))
		}
		return fmt.Errorf("sqlite: checking book %d exists: %w", review.BookID, err)
	}

	review.CreatedAt = time.Now()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO reviews (book_id, user_id, review_text, rating, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		review.BookID,
		review.UserID,
		review.ReviewText,
		review.Rating,
		review.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating review for book %d: %w", review.BookID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new review id: %w", err)
	}
	review.ID = id

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing review for book %d: %w", review.BookID, err)
	}

	return nil
}

// ListReviewsByBook returns every review attached to the book, ordered by
// ascending ID. All matching rows are returned — a book with N reviews
// yields a slice of length N, never just the first match.
func (db *DB) ListReviewsByBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, book_id, user_id, review_text, rating, created_at
		 FROM reviews
		 WHERE book_id = ?
		 ORDER BY id ASC`,
		bookID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing reviews for book %d: %w", bookID, err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		var r model.Review
		if err := rows.Scan(
			&r.ID, &r.BookID, &r.UserID, &r.ReviewText, &r.Rating, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning review row: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating reviews: %w", err)
	}

	return reviews, nil
}
