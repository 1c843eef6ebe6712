package usecase

import (
	"context"

	"github.com/sureshdube/book-review-platform/internal/entity"
)

type ListParams struct {
	// Q filters by case-insensitive substring match on title or author name.
	Q      string
	Limit  int
	Offset int
}

// BookRepository is the cached-catalog persistence contract. Upsert is
// insert-or-update keyed by ISBN; applying the same record twice leaves the
// row unchanged except updated_at.
type BookRepository interface {
	List(ctx context.Context, p ListParams) ([]entity.Book, int, error)
	ListAll(ctx context.Context) ([]entity.Book, error)
	GetByISBN(ctx context.Context, isbn string) (entity.Book, error)
	GetByISBNs(ctx context.Context, isbns []string) ([]entity.Book, error)
	Upsert(ctx context.Context, b *entity.Book) error
	Count(ctx context.Context) (int, error)
}
