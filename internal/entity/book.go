package entity

import (
	"encoding/json"
	"time"
)

// Book is a locally cached catalog entry keyed by ISBN. Rows are created on
// first successful fetch from Open Library and overwritten on refresh; the
// raw upstream node is retained in RawData for fields we do not model.
type Book struct {
	ISBN        string          `json:"isbn"`
	Title       string          `json:"title"`
	Authors     []string        `json:"authors"`
	CoverURL    string          `json:"cover_url,omitempty"`
	PageCount   int             `json:"page_count,omitempty"`
	PublishDate string          `json:"publish_date,omitempty"`
	Publishers  []string        `json:"publishers,omitempty"`
	Source      string          `json:"source"`
	RawData     json.RawMessage `json:"-"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type RatingStats struct {
	AvgRating   *float64 `json:"avgRating"`
	ReviewCount int      `json:"reviewCount"`
}

// BookWithStats decorates a catalog entry with its aggregated review stats
// for list responses.
type BookWithStats struct {
	Book
	RatingStats RatingStats `json:"ratingStats"`
}
