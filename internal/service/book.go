package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/book-catalog/internal/apperror"
	"github.com/sakif/book-catalog/internal/model"
	"github.com/sakif/book-catalog/internal/repository"
)

// Field limits, mirroring the column widths a relational schema would
// typically declare for these fields.
const (
	MaxTitleLength  = 255
	MaxAuthorLength = 255
	MaxGenreLength  = 100
)

// BookService handles business logic for catalog entries.
type BookService struct {
	repo   repository.BookRepository
	logger *slog.Logger
}

func NewBookService(repo repository.BookRepository, logger *slog.Logger) *BookService {
	return &BookService{
		repo:   repo,
		logger: logger,
	}
}

// Create validates and persists a new book. The ID on the returned book
// is storage-assigned; any ID on the input is ignored.
func (s *BookService) Create(ctx context.Context, book *model.Book) (*model.Book, error) {
	book.ID = 0
	book.Title = strings.TrimSpace(book.Title)
	book.Author = strings.TrimSpace(book.Author)
	book.Genre = strings.TrimSpace(book.Genre)

	if err := validateBookFields(book); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, book); err != nil {
		s.logger.Error("failed to create book",
			slog.String("title", book.Title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating book: %w", err)
	}

	s.logger.Info("book created",
		slog.Int64("id", book.ID),
		slog.String("title", book.Title),
	)

	return book, nil
}

// GetByID returns a single book, or apperror.ErrNotFound.
func (s *BookService) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all books in ascending ID order.
func (s *BookService) List(ctx context.Context) ([]model.Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list books", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing books: %w", err)
	}
	return books, nil
}

// Update applies a partial update: only the fields present in upd change,
// everything else keeps its stored value.
//
// The apply closure runs inside the repository's update transaction, so
// the fetch, the field merge, and the write are one atomic unit — a
// concurrent update of the same book cannot commit in between and be
// silently overwritten. The not-found case comes from the repository.
func (s *BookService) Update(ctx context.Context, id int64, upd model.BookUpdate) (*model.Book, error) {
	book, err := s.repo.Update(ctx, id, func(book *model.Book) error {
		if upd.Title != nil {
			book.Title = strings.TrimSpace(*upd.Title)
		}
		if upd.Author != nil {
			book.Author = strings.TrimSpace(*upd.Author)
		}
		if upd.Genre != nil {
			book.Genre = strings.TrimSpace(*upd.Genre)
		}
		if upd.YearPublished != nil {
			book.YearPublished = *upd.YearPublished
		}
		if upd.Summary != nil {
			book.Summary = *upd.Summary
		}
		return validateBookFields(book)
	})
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) && !errors.Is(err, apperror.ErrValidation) {
			s.logger.Error("failed to update book",
				slog.Int64("id", id),
				slog.String("error", err.Error()),
			)
		}
		return nil, err
	}

	s.logger.Info("book updated", slog.Int64("id", book.ID))

	return book, nil
}

// Delete removes a book and, via the schema cascade, all of its reviews.
func (s *BookService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("book deleted", slog.Int64("id", id))
	return nil
}

// validateBookFields enforces the rules shared by create and update.
func validateBookFields(book *model.Book) error {
	if book.Title == "" {
		return apperror.ValidationFailed("title", "book title is required")
	}
	if len(book.Title) > MaxTitleLength {
		return apperror.ValidationFailed("title",
			fmt.Sprintf("book title must be %d characters or less", MaxTitleLength))
	}
	if book.Author == "" {
		return apperror.ValidationFailed("author", "book author is required")
	}
	if len(book.Author) > MaxAuthorLength {
		return apperror.ValidationFailed("author",
			fmt.Sprintf("book author must be %d characters or less", MaxAuthorLength))
	}
	if len(book.Genre) > MaxGenreLength {
		return apperror.ValidationFailed("genre",
			fmt.Sprintf("book genre must be %d characters or less", MaxGenreLength))
	}
	return nil
}
