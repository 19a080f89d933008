// Package main is the entry point for the book catalog server.
//
// Its job is deliberately small: load configuration, build the logger,
// hand both to the server package, and exit non-zero if startup fails.
// All actual behaviour lives in internal/.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/sakif/book-catalog/internal/server"
)

func main() {
	// Load a .env file if one exists next to the binary. Real environment
	// variables win over .env entries, so deploys can override the file.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(),
	}))

	port := envInt("PORT", 8080)

	dbPath := envStr("DB_PATH", "data/catalog.db")
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", filepath.Dir(dbPath)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// Every endpoint except /token requires a bearer token, so the
	// service is useless (and unsafe) without a signing secret. Refuse to
	// start rather than run with auth disabled.
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Error("JWT_SECRET is required (e.g. JWT_SECRET=$(openssl rand -hex 32))")
		os.Exit(1)
	}

	cfg := server.Config{
		Port:         port,
		DBPath:       dbPath,
		JWTSecret:    jwtSecret,
		TokenTTL:     time.Duration(envInt("TOKEN_TTL_MINUTES", 30)) * time.Minute,
		DemoUsername: envStr("DEMO_USERNAME", "johndoe"),
		DemoPassword: envStr("DEMO_PASSWORD", "secret"),
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Error("invalid integer in environment", slog.String("key", key), slog.String("value", v))
		os.Exit(1)
	}
	return n
}

func logLevel() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
