// Package repository declares the storage interfaces the service layer
// depends on. Services receive these interfaces (not the concrete SQLite
// types), so tests can inject in-memory mocks and the storage backend can
// be swapped without touching business logic.
package repository

import (
	"context"

	"github.com/sakif/book-catalog/internal/model"
)

type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	// Update runs a read-modify-write as one transaction: it loads the
	// book, passes it to apply, and writes the result back. A concurrent
	// update cannot commit between the read and the write, so partial
	// updates never erase another request's changes. An error from apply
	// aborts the transaction and is returned unwrapped.
	Update(ctx context.Context, id int64, apply func(*model.Book) error) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
}

type ReviewRepository interface {
	// CreateReview persists a review for an existing book. The book-exists
	// check and the insert happen in one transaction; a missing book yields
	// apperror.ErrNotFound and no row.
	CreateReview(ctx context.Context, review *model.Review) error
	ListReviewsByBook(ctx context.Context, bookID int64) ([]model.Review, error)
}

// UserRepository is the credential-lookup store behind the login endpoint.
// It is an interface so a real user directory can be swapped in later.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}
