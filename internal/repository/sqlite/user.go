package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/book-catalog/internal/apperror"
	"github.com/sakif/book-catalog/internal/model"
	"github.com/sakif/book-catalog/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a new credential-store account.
//
// User IDs are xid strings (20 chars, URL-safe, time-sortable) rather
// than autoincrement integers: they end up inside JWT subject claims, and
// an opaque ID there is preferable to a guessable sequence.
//
// Usernames are unique. We check first and return Conflict on a duplicate
// instead of parsing the driver's UNIQUE-violation error text.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	var existing string
	err := db.conn.QueryRowContext(ctx,
		`SELECT id FROM users WHERE username = ?`, user.Username,
	).Scan(&existing)
	if err == nil {
		return apperror.Conflict("user", user.Username)
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("sqlite: checking username %q: %w", user.Username, err)
	}

	now := time.Now()
	user.ID = xid.New().String()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, disabled, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.Disabled,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting user %q: %w", user.Username, err)
	}

	return nil
}

// GetUserByUsername is the credential lookup behind the login endpoint.
// Returns apperror.ErrNotFound if no account has that username.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return db.scanUser(db.conn.QueryRowContext(ctx,
		`SELECT id, username, password_hash, disabled, created_at, updated_at
		 FROM users WHERE username = ?`,
		username,
	), username)
}

// GetUserByID resolves the subject of a validated bearer token back to an
// account, so the middleware can reject tokens for deleted or disabled
// users.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return db.scanUser(db.conn.QueryRowContext(ctx,
		`SELECT id, username, password_hash, disabled, created_at, updated_at
		 FROM users WHERE id = ?`,
		id,
	), id)
}

func (db *DB) scanUser(row *sql.Row, key string) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.Disabled,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", key)
		}
		return nil, fmt.Errorf("sqlite: getting user %q: %w", key, err)
	}
	return &u, nil
}
