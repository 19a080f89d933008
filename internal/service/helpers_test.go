package service

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/sakif/book-catalog/internal/apperror"
	"github.com/sakif/book-catalog/internal/model"
)

// testLogger discards output; the tests assert behavior, not log lines.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeBookRepo is an in-memory implementation of repository.BookRepository.
// A hand-written fake (not a mock framework) keeps the tests dependency-free
// and makes the simulated storage behavior visible at a glance.
type fakeBookRepo struct {
	books  map[int64]*model.Book
	nextID int64
	// set to a non-nil error to simulate a storage failure
	createErr error
	listErr   error
	updateErr error
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{
		books:  make(map[int64]*model.Book),
		nextID: 1,
	}
}

func (f *fakeBookRepo) Create(ctx context.Context, book *model.Book) error {
	if f.createErr != nil {
		return f.createErr
	}
	book.ID = f.nextID
	f.nextID++
	book.CreatedAt = time.Now()
	book.UpdatedAt = book.CreatedAt
	copied := *book
	f.books[book.ID] = &copied
	return nil
}

func (f *fakeBookRepo) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, apperror.NotFound("book", strconv.FormatInt(id, 10))
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookRepo) List(ctx context.Context) ([]model.Book, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	books := make([]model.Book, 0, len(f.books))
	for id := int64(1); id < f.nextID; id++ {
		if b, ok := f.books[id]; ok {
			books = append(books, *b)
		}
	}
	return books, nil
}

func (f *fakeBookRepo) Update(ctx context.Context, id int64, apply func(*model.Book) error) (*model.Book, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	stored, ok := f.books[id]
	if !ok {
		return nil, apperror.NotFound("book", strconv.FormatInt(id, 10))
	}
	copied := *stored
	if err := apply(&copied); err != nil {
		return nil, err
	}
	copied.UpdatedAt = time.Now()
	f.books[id] = &copied
	result := copied
	return &result, nil
}

func (f *fakeBookRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.books[id]; !ok {
		return apperror.NotFound("book", strconv.FormatInt(id, 10))
	}
	delete(f.books, id)
	return nil
}

// fakeReviewRepo is an in-memory implementation of
// repository.ReviewRepository. It needs the book fake to reproduce the
// existence check the real transaction performs.
type fakeReviewRepo struct {
	books   *fakeBookRepo
	reviews []model.Review
	nextID  int64

	createErr error
}

func newFakeReviewRepo(books *fakeBookRepo) *fakeReviewRepo {
	return &fakeReviewRepo{books: books, nextID: 1}
}

func (f *fakeReviewRepo) CreateReview(ctx context.Context, review *model.Review) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.books.books[review.BookID]; !ok {
		return apperror.NotFound("book", strconv.FormatInt(review.BookID, 10))
	}
	review.ID = f.nextID
	f.nextID++
	review.CreatedAt = time.Now()
	f.reviews = append(f.reviews, *review)
	return nil
}

func (f *fakeReviewRepo) ListReviewsByBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	out := make([]model.Review, 0)
	for _, r := range f.reviews {
		if r.BookID == bookID {
			out = append(out, r)
		}
	}
	return out, nil
}

// fakeUserRepo is an in-memory implementation of repository.UserRepository.
type fakeUserRepo struct {
	byID       map[string]*model.User
	byUsername map[string]*model.User
	nextID     int

	getErr    error
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:       make(map[string]*model.User),
		byUsername: make(map[string]*model.User),
		nextID:     1,
	}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byUsername[user.Username]; ok {
		return apperror.Conflict("user", user.Username)
	}
	user.ID = "user-fake-" + strconv.Itoa(f.nextID)
	f.nextID++
	user.CreatedAt = time.Now()
	copied := *user
	f.byID[user.ID] = &copied
	f.byUsername[user.Username] = &copied
	return nil
}

func (f *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byUsername[username]
	if !ok {
		return nil, apperror.NotFound("user", username)
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	copied := *u
	return &copied, nil
}
