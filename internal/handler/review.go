package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/book-catalog/internal/apperror"
	"github.com/sakif/book-catalog/internal/model"
	"github.com/sakif/book-catalog/internal/service"
)

// ReviewHandler manages the review endpoints nested under a book.
type ReviewHandler struct {
	reviews *service.ReviewService
	logger  *slog.Logger
}

func NewReviewHandler(reviews *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, logger: logger}
}

// createReviewRequest is the review payload. The book comes from the URL,
// not the body, so the two can never disagree.
type createReviewRequest struct {
	UserID     int64  `json:"user_id"`
	ReviewText string `json:"review_text"`
	Rating     int    `json:"rating"`
}

// HandleCreate attaches a review to an existing book.
//
// HTTP: POST /api/v1/books/{id}/reviews
// Body: {"user_id":..., "review_text":?, "rating":1-5}
// Returns the stored review, or 404 if the book does not exist (in which
// case nothing is written).
func (h *ReviewHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	bookID, err := bookIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid review JSON",
			slog.Int64("bookID", bookID),
			slog.String("error", err.Error()),
		)
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	review, err := h.reviews.Add(r.Context(), bookID, &model.Review{
		UserID:     req.UserID,
		ReviewText: req.ReviewText,
		Rating:     req.Rating,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, review)
}

// HandleList returns every review for the book as a JSON array, ascending
// by id. A book with no reviews yields []; a missing book yields 404.
//
// HTTP: GET /api/v1/books/{id}/reviews
func (h *ReviewHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	bookID, err := bookIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	reviews, err := h.reviews.ListByBook(r.Context(), bookID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}
