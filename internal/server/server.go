// Package server is the wiring layer: it assembles the dependency graph
// (database → repositories → services → handlers), defines the routes,
// and owns startup and graceful shutdown.
//
// Everything is wired in one place — the composition root — so the rest
// of the codebase only ever receives its dependencies, never constructs
// them.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/book-catalog/internal/auth"
	"github.com/sakif/book-catalog/internal/handler"
	"github.com/sakif/book-catalog/internal/middleware"
	sqliteRepo "github.com/sakif/book-catalog/internal/repository/sqlite"
	"github.com/sakif/book-catalog/internal/service"
)

// Config holds server configuration, loaded from the environment in main.
type Config struct {
	Port         int
	DBPath       string        // path to the SQLite database file
	JWTSecret    string        // HMAC key for bearer tokens (required)
	TokenTTL     time.Duration // lifetime of issued tokens
	DemoUsername string        // credential-store account seeded at startup
	DemoPassword string
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown so the WAL is flushed on every exit
// path.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New builds the full dependency graph and registers all routes.
//
// A failure anywhere here — unreachable database, bad JWT secret, failed
// seed — returns an error so main can refuse to start. The service never
// comes up half-wired.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// setupRoutes wires repositories into services, services into handlers,
// and handlers into the route tree.
//
// Route structure (all JSON, under /api/v1):
//
//	POST   /api/v1/token                 → issue bearer token (public)
//	POST   /api/v1/book                  → create book        (auth)
//	GET    /api/v1/books                 → list books         (auth)
//	GET    /api/v1/books/{id}            → get book           (auth)
//	PUT    /api/v1/books/{id}            → partial update     (auth)
//	DELETE /api/v1/books/{id}            → delete + cascade   (auth)
//	POST   /api/v1/books/{id}/reviews    → add review         (auth)
//	GET    /api/v1/books/{id}/reviews    → list reviews       (auth)
func (s *Server) setupRoutes() error {
	tokens, err := auth.NewTokenService(s.config.JWTSecret, s.config.TokenTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	// *sqliteRepo.DB implements all three repository interfaces; each
	// service receives only the interface it needs.
	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	bookService := service.NewBookService(s.db, s.logger)
	reviewService := service.NewReviewService(s.db, s.db, s.logger)

	// Seed the demo account so POST /token works on a fresh database.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := authService.EnsureUser(ctx, s.config.DemoUsername, s.config.DemoPassword); err != nil {
		return fmt.Errorf("seeding credential store: %w", err)
	}

	authHandler := handler.NewAuthHandler(authService, s.logger)
	bookHandler := handler.NewBookHandler(bookService, s.logger)
	reviewHandler := handler.NewReviewHandler(reviewService, s.logger)

	// Global middleware, in order: request ID, real client IP, panic
	// recovery, then request logging.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	s.router.Route("/api/v1", func(r chi.Router) {
		// The token endpoint is the only public route.
		r.Post("/token", authHandler.HandleToken)

		// Everything else requires a valid bearer token. RequireAuth
		// rejects missing/expired/invalid tokens before any handler (and
		// therefore any book/review query) runs.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens, s.db))

			r.Post("/book", bookHandler.HandleCreate)
			r.Get("/books", bookHandler.HandleList)
			r.Get("/books/{id}", bookHandler.HandleGet)
			r.Put("/books/{id}", bookHandler.HandleUpdate)
			r.Delete("/books/{id}", bookHandler.HandleDelete)

			r.Post("/books/{id}/reviews", reviewHandler.HandleCreate)
			r.Get("/books/{id}/reviews", reviewHandler.HandleList)
		})
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30s to
// finish, close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
