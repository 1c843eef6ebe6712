package usecase

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrAlreadyReviewed   = errors.New("already reviewed")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrTooManyFavourites = errors.New("max 20 favourites allowed")
	ErrInvalidPassword   = errors.New("invalid email or password")
	// ErrBookNotFound distinguishes a missing catalog entry from a missing
	// user where a handler needs different error codes for the two.
	ErrBookNotFound = errors.New("book not found")
	// ErrUpstream wraps external-API failures that survived retries.
	ErrUpstream = errors.New("upstream error")
	// ErrNotConfigured is returned when an optional integration has no credentials.
	ErrNotConfigured = errors.New("not configured")
)
