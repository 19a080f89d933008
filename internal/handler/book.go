// Package handler is the HTTP layer: it decodes requests, calls services,
// and encodes responses. No business rules and no SQL live here.
package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/book-catalog/internal/apperror"
	"github.com/sakif/book-catalog/internal/model"
	"github.com/sakif/book-catalog/internal/service"
)

// BookHandler manages CRUD endpoints for catalog entries.
type BookHandler struct {
	books  *service.BookService
	logger *slog.Logger
}

func NewBookHandler(books *service.BookService, logger *slog.Logger) *BookHandler {
	return &BookHandler{books: books, logger: logger}
}

// createBookRequest is the create payload. It has no ID field: book IDs
// are storage-assigned, and a stray "id" key in the body is ignored by
// the decoder rather than honoured.
type createBookRequest struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Genre         string `json:"genre"`
	YearPublished int    `json:"year_published"`
	Summary       string `json:"summary"`
}

// HandleCreate stores a new book.
//
// HTTP: POST /api/v1/book
// Body: {"title":..., "author":..., "genre":?, "year_published":?, "summary":?}
// Returns the stored record, including the assigned id.
func (h *BookHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid book JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	book, err := h.books.Create(r.Context(), &model.Book{
		Title:         req.Title,
		Author:        req.Author,
		Genre:         req.Genre,
		YearPublished: req.YearPublished,
		Summary:       req.Summary,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

// HandleList returns all books as a JSON array, ascending by id.
//
// HTTP: GET /api/v1/books
func (h *BookHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, books)
}

// HandleGet returns a single book as a JSON object (not a one-element
// array), or 404.
//
// HTTP: GET /api/v1/books/{id}
func (h *BookHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := bookIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	book, err := h.books.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

// HandleUpdate applies a partial update: only the fields present in the
// body change. Returns the complete updated record, or 404.
//
// HTTP: PUT /api/v1/books/{id}
func (h *BookHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := bookIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var upd model.BookUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.logger.Warn("invalid book update JSON",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	book, err := h.books.Update(r.Context(), id, upd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

// HandleDelete removes a book and all of its reviews (schema cascade).
//
// HTTP: DELETE /api/v1/books/{id}
// Returns a confirmation message, or 404.
func (h *BookHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := bookIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.books.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Book with ID %d has been deleted successfully", id),
	})
}

// bookIDParam parses the {id} URL parameter. A non-numeric ID is a
// validation failure, not a 404 — the route matched, the value didn't.
func bookIDParam(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.ValidationFailed("id", "book id must be an integer")
	}
	return id, nil
}
