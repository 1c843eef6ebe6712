package entity

import "time"

// Review is a user's single review of a cached book. At most one review per
// (user, isbn) pair, enforced by a unique index and checked in the usecase.
type Review struct {
	ID        string    `json:"id"`
	ISBN      string    `json:"isbn"`
	UserID    string    `json:"user_id"`
	UserEmail string    `json:"user_email"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text,omitempty"`
	BookTitle string    `json:"book_title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
