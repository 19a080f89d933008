// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other
// languages, but without inheritance. Go favours composition over inheritance.
package model

import "time"

// Book represents a catalogued book.
//
// The `json:"..."` tags control how the struct serializes on the wire.
// The API uses snake_case field names (year_published, not yearPublished),
// so the tags spell that out explicitly.
//
// ID is assigned by storage (SQLite autoincrement) — callers never supply it.
// Genre, YearPublished, and Summary are optional; their zero values mean
// "not set" and are stored as-is.
type Book struct {
	ID            int64     `json:"id"             db:"id"`
	Title         string    `json:"title"          db:"title"`
	Author        string    `json:"author"         db:"author"`
	Genre         string    `json:"genre"          db:"genre"`
	YearPublished int       `json:"year_published" db:"year_published"`
	Summary       string    `json:"summary"        db:"summary"`
	CreatedAt     time.Time `json:"created_at"     db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"     db:"updated_at"`
}

// BookUpdate describes a partial update to a Book.
//
// WHY POINTER FIELDS?
// JSON cannot distinguish `"genre": ""` from an absent "genre" key when
// decoding into plain strings — both land as "". With *string, an absent
// key decodes to nil ("leave unchanged") while a present key decodes to a
// non-nil pointer (even if it points at ""). That lets PUT apply exactly
// the fields the caller sent and leave the rest untouched.
type BookUpdate struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	Genre         *string `json:"genre"`
	YearPublished *int    `json:"year_published"`
	Summary       *string `json:"summary"`
}
