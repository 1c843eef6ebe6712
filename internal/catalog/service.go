package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sureshdube/book-review-platform/internal/entity"
	"github.com/sureshdube/book-review-platform/internal/platform/openlibrary"
	"github.com/sureshdube/book-review-platform/internal/usecase"
)

// SourceOpenLibrary tags catalog entries hydrated from Open Library.
const SourceOpenLibrary = "openlibrary"

type Client interface {
	GetBooksByISBN(ctx context.Context, isbns []string) (map[string]openlibrary.Record, error)
	GetBookByISBN(ctx context.Context, isbn string) (openlibrary.Record, error)
}

type Config struct {
	BatchSize    int
	SeedDeadline time.Duration
}

const (
	DefaultBatchSize    = 25
	DefaultSeedDeadline = 15 * time.Second
)

// Service is the cached catalog: lazy single-book fetch-and-cache, paged
// listing with search, bulk seeding and refresh. All upstream traffic goes
// through the shared throttled client.
type Service struct {
	client Client
	repo   usecase.BookRepository
	cfg    Config
	now    func() time.Time
}

func NewService(client Client, repo usecase.BookRepository, cfg Config) *Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.SeedDeadline <= 0 {
		cfg.SeedDeadline = DefaultSeedDeadline
	}
	return &Service{client: client, repo: repo, cfg: cfg, now: time.Now}
}

// GetByISBN returns the cached entry, fetching and caching it on a miss.
// A book unknown upstream yields usecase.ErrNotFound; an upstream call that
// fails after retries yields usecase.ErrUpstream.
func (s *Service) GetByISBN(ctx context.Context, isbn string) (entity.Book, error) {
	book, err := s.repo.GetByISBN(ctx, isbn)
	if err == nil {
		return book, nil
	}
	if !errors.Is(err, usecase.ErrNotFound) {
		return entity.Book{}, err
	}

	rec, err := s.client.GetBookByISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, openlibrary.ErrNotFound) {
			return entity.Book{}, usecase.ErrNotFound
		}
		return entity.Book{}, fmt.Errorf("%w: fetch %s: %v", usecase.ErrUpstream, isbn, err)
	}
	return s.upsertRecord(ctx, isbn, rec)
}

type Page struct {
	Books      []entity.Book `json:"books"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
}

// ListPaged returns one 1-indexed page of cached entries, optionally filtered
// by a case-insensitive substring match on title or author.
func (s *Service) ListPaged(ctx context.Context, page, limit int, q string) (Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	books, total, err := s.repo.List(ctx, usecase.ListParams{
		Q:      q,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return Page{}, err
	}

	return Page{
		Books:      books,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

// RefreshAll re-fetches every cached entry sequentially, one upstream call
// per ISBN. Per-book failures are logged and skipped; the entry keeps its
// previous state. Returns the number of successful refreshes.
func (s *Service) RefreshAll(ctx context.Context) int {
	books, err := s.repo.ListAll(ctx)
	if err != nil {
		log.Printf("refresh: list cached books: %v", err)
		return 0
	}

	updated := 0
	for _, book := range books {
		rec, err := s.client.GetBookByISBN(ctx, book.ISBN)
		if err != nil {
			log.Printf("refresh: fetch %s: %v", book.ISBN, err)
			continue
		}
		if _, err := s.upsertRecord(ctx, book.ISBN, rec); err != nil {
			log.Printf("refresh: upsert %s: %v", book.ISBN, err)
			continue
		}
		updated++
	}
	return updated
}

// upsertRecord maps an upstream record to a catalog entry and persists it.
func (s *Service) upsertRecord(ctx context.Context, isbn string, rec openlibrary.Record) (entity.Book, error) {
	book := recordToBook(isbn, rec)
	book.UpdatedAt = s.now()
	if err := s.repo.Upsert(ctx, &book); err != nil {
		return entity.Book{}, fmt.Errorf("upsert %s: %w", isbn, err)
	}
	return book, nil
}

func recordToBook(isbn string, rec openlibrary.Record) entity.Book {
	var authors []string
	for _, a := range rec.Authors {
		if a.Name != "" {
			authors = append(authors, a.Name)
		}
	}

	var publishers []string
	for _, p := range rec.Publishers {
		if p.Name != "" {
			publishers = append(publishers, p.Name)
		}
	}

	cover := rec.Cover.Large
	if cover == "" {
		cover = rec.Cover.Medium
	}
	if cover == "" {
		cover = rec.Cover.Small
	}

	return entity.Book{
		ISBN:        isbn,
		Title:       rec.Title,
		Authors:     authors,
		CoverURL:    cover,
		PageCount:   rec.NumberOfPages,
		PublishDate: rec.PublishDate,
		Publishers:  publishers,
		Source:      SourceOpenLibrary,
		RawData:     rec.Raw,
	}
}
