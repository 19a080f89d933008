package model

import "time"

// Review is a user's review of a book.
//
// BookID references the owning Book row; the schema declares it with
// ON DELETE CASCADE, so deleting a book removes its reviews in the same
// statement. UserID identifies the reviewer but deliberately carries no
// foreign key — the credential store is not a user directory, and the
// same user may review the same book more than once.
//
// Reviews are immutable: created once, removed only when their book is
// deleted. There is no update or individual delete path.
type Review struct {
	ID         int64     `json:"id"          db:"id"`
	BookID     int64     `json:"book_id"     db:"book_id"`
	UserID     int64     `json:"user_id"     db:"user_id"`
	ReviewText string    `json:"review_text" db:"review_text"`
	Rating     int       `json:"rating"      db:"rating"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
}
