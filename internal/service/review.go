package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/book-catalog/internal/apperror"
	"github.com/sakif/book-catalog/internal/model"
	"github.com/sakif/book-catalog/internal/repository"
)

// Rating bounds. The schema itself does not constrain the column; the
// service enforces the documented 1–5 range on every create.
const (
	MinRating = 1
	MaxRating = 5
)

// ReviewService handles business logic for book reviews.
//
// It holds both repositories: reviews for the rows it owns, books for the
// existence check on the list path. (The create path's existence check
// lives inside ReviewRepository.CreateReview, where it can share a
// transaction with the insert.)
type ReviewService struct {
	reviews repository.ReviewRepository
	books   repository.BookRepository
	logger  *slog.Logger
}

func NewReviewService(
	reviews repository.ReviewRepository,
	books repository.BookRepository,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		books:   books,
		logger:  logger,
	}
}

// Add validates and persists a review for the given book.
// Returns apperror.ErrNotFound (and writes nothing) if the book does not
// exist, apperror.ErrValidation on a bad rating or user ID.
func (s *ReviewService) Add(ctx context.Context, bookID int64, review *model.Review) (*model.Review, error) {
	review.ID = 0
	review.BookID = bookID
	review.ReviewText = strings.TrimSpace(review.ReviewText)

	if review.UserID <= 0 {
		return nil, apperror.ValidationFailed("user_id", "user_id is required and must be positive")
	}
	if review.Rating < MinRating || review.Rating > MaxRating {
		return nil, apperror.ValidationFailed("rating",
			fmt.Sprintf("rating must be between %d and %d", MinRating, MaxRating))
	}

	if err := s.reviews.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info("review added",
		slog.Int64("id", review.ID),
		slog.Int64("bookID", bookID),
		slog.Int64("userID", review.UserID),
	)

	return review, nil
}

// ListByBook returns every review for the book, ascending by ID.
// Returns apperror.ErrNotFound if the book itself does not exist — a book
// with no reviews yields an empty slice, not an error.
func (s *ReviewService) ListByBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		return nil, err
	}

	reviews, err := s.reviews.ListReviewsByBook(ctx, bookID)
	if err != nil {
		s.logger.Error("failed to list reviews",
			slog.Int64("bookID", bookID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing reviews: %w", err)
	}

	return reviews, nil
}
