package model

import "time"

// User is an account in the credential store.
//
// The store exists only to gate the API behind a login — it is not a
// public user directory, and review UserIDs do not reference it.
//
// PasswordHash holds a bcrypt hash and is tagged `json:"-"` so it can
// never leak into a response body, no matter which handler serializes
// the struct. Disabled accounts still authenticate (the hash matches)
// but are rejected with a distinct "inactive account" error.
type User struct {
	ID           string    `json:"id"         db:"id"`
	Username     string    `json:"username"   db:"username"`
	PasswordHash string    `json:"-"          db:"password_hash"`
	Disabled     bool      `json:"disabled"   db:"disabled"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
