package handler_test

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/sakif/book-catalog/internal/auth"
	"github.com/sakif/book-catalog/internal/handler"
	"github.com/sakif/book-catalog/internal/repository/sqlite"
	"github.com/sakif/book-catalog/internal/service"
)

// testEnv wires handlers over a real sqlite store in a per-test temp file.
// Handlers map domain errors to HTTP, so exercising them against the real
// storage translation (not a fake that guesses at it) is what catches the
// mapping bugs.
type testEnv struct {
	db      *sqlite.DB
	books   *handler.BookHandler
	reviews *handler.ReviewHandler
	auth    *handler.AuthHandler
	authSvc *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens, err := auth.NewTokenService("test-secret-0123456789", 15*time.Minute)
	if err != nil {
		t.Fatalf("creating token service: %v", err)
	}
	passwords := auth.NewPasswordServiceForTest(4)

	authSvc := service.NewAuthService(db, tokens, passwords, logger)
	bookSvc := service.NewBookService(db, logger)
	reviewSvc := service.NewReviewService(db, db, logger)

	return &testEnv{
		db:      db,
		books:   handler.NewBookHandler(bookSvc, logger),
		reviews: handler.NewReviewHandler(reviewSvc, logger),
		auth:    handler.NewAuthHandler(authSvc, logger),
		authSvc: authSvc,
	}
}
