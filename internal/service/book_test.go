package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sakif/book-catalog/internal/apperror"
	"github.com/sakif/book-catalog/internal/model"
)

func newTestBookService(repo *fakeBookRepo) *BookService {
	return NewBookService(repo, testLogger())
}

func TestBookCreate(t *testing.T) {
	svc := newTestBookService(newFakeBookRepo())

	book, err := svc.Create(context.Background(), &model.Book{
		Title:         "  Dune  ",
		Author:        "Frank Herbert",
		Genre:         "Science Fiction",
		YearPublished: 1965,
		Summary:       "Spice and sandworms.",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if book.ID == 0 {
		t.Error("Create() did not assign an ID")
	}
	if book.Title != "Dune" {
		t.Errorf("Title = %q, want trimmed %q", book.Title, "Dune")
	}
}

// Caller-supplied IDs are ignored — the store assigns every ID.
func TestBookCreate_IgnoresSuppliedID(t *testing.T) {
	svc := newTestBookService(newFakeBookRepo())

	book, err := svc.Create(context.Background(), &model.Book{
		ID:     999,
		Title:  "Dune",
		Author: "Frank Herbert",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if book.ID == 999 {
		t.Error("Create() kept the caller-supplied ID")
	}
}

func TestBookCreate_Validation(t *testing.T) {
	tests := []struct {
		name string
		book model.Book
	}{
		{"empty title", model.Book{Title: "", Author: "A"}},
		{"whitespace title", model.Book{Title: "   ", Author: "A"}},
		{"empty author", model.Book{Title: "T", Author: ""}},
		{"title too long", model.Book{Title: strings.Repeat("x", MaxTitleLength+1), Author: "A"}},
		{"author too long", model.Book{Title: "T", Author: strings.Repeat("x", MaxAuthorLength+1)}},
		{"genre too long", model.Book{Title: "T", Author: "A", Genre: strings.Repeat("x", MaxGenreLength+1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestBookService(newFakeBookRepo())
			_, err := svc.Create(context.Background(), &tt.book)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("Create() error = %v, want ErrValidation", err)
			}
		})
	}
}

// A storage failure must propagate — not vanish into a nil error.
func TestBookCreate_StorageError(t *testing.T) {
	repo := newFakeBookRepo()
	repo.createErr = errors.New("disk full")
	svc := newTestBookService(repo)

	_, err := svc.Create(context.Background(), &model.Book{Title: "T", Author: "A"})
	if err == nil {
		t.Fatal("Create() error = nil, want storage error")
	}
	if errors.Is(err, apperror.ErrValidation) || errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Create() error = %v, want an unclassified storage error", err)
	}
}

func TestBookGetByID_NotFound(t *testing.T) {
	svc := newTestBookService(newFakeBookRepo())

	_, err := svc.GetByID(context.Background(), 42)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestBookList(t *testing.T) {
	repo := newFakeBookRepo()
	svc := newTestBookService(repo)

	for _, title := range []string{"First", "Second", "Third"} {
		if _, err := svc.Create(context.Background(), &model.Book{Title: title, Author: "A"}); err != nil {
			t.Fatalf("creating %q: %v", title, err)
		}
	}

	books, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(books) != 3 {
		t.Fatalf("List() returned %d books, want 3", len(books))
	}
	if books[0].Title != "First" || books[2].Title != "Third" {
		t.Errorf("List() order = [%s ... %s], want ascending by ID", books[0].Title, books[2].Title)
	}
}

// Partial update: only supplied fields change, everything else is kept.
func TestBookUpdate_Partial(t *testing.T) {
	repo := newFakeBookRepo()
	svc := newTestBookService(repo)

	book, err := svc.Create(context.Background(), &model.Book{
		Title:         "Dune",
		Author:        "Frank Herbert",
		Genre:         "Science Fiction",
		YearPublished: 1965,
		Summary:       "Spice and sandworms.",
	})
	if err != nil {
		t.Fatalf("creating book: %v", err)
	}

	newGenre := "Classic SF"
	updated, err := svc.Update(context.Background(), book.ID, model.BookUpdate{Genre: &newGenre})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Genre != "Classic SF" {
		t.Errorf("Genre = %q, want %q", updated.Genre, "Classic SF")
	}
	if updated.Title != "Dune" || updated.Author != "Frank Herbert" {
		t.Errorf("unsupplied fields changed: title=%q author=%q", updated.Title, updated.Author)
	}
	if updated.YearPublished != 1965 || updated.Summary != "Spice and sandworms." {
		t.Errorf("unsupplied fields changed: year=%d summary=%q", updated.YearPublished, updated.Summary)
	}
}

func TestBookUpdate_ValidatesResult(t *testing.T) {
	repo := newFakeBookRepo()
	svc := newTestBookService(repo)

	book, err := svc.Create(context.Background(), &model.Book{Title: "Dune", Author: "Frank Herbert"})
	if err != nil {
		t.Fatalf("creating book: %v", err)
	}

	empty := "   "
	_, err = svc.Update(context.Background(), book.ID, model.BookUpdate{Title: &empty})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Update() error = %v, want ErrValidation", err)
	}
}

func TestBookUpdate_NotFound(t *testing.T) {
	svc := newTestBookService(newFakeBookRepo())

	title := "x"
	_, err := svc.Update(context.Background(), 42, model.BookUpdate{Title: &title})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestBookDelete(t *testing.T) {
	repo := newFakeBookRepo()
	svc := newTestBookService(repo)

	book, err := svc.Create(context.Background(), &model.Book{Title: "Dune", Author: "Frank Herbert"})
	if err != nil {
		t.Fatalf("creating book: %v", err)
	}

	if err := svc.Delete(context.Background(), book.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.GetByID(context.Background(), book.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
}

func TestBookDelete_NotFound(t *testing.T) {
	svc := newTestBookService(newFakeBookRepo())

	if err := svc.Delete(context.Background(), 42); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}
