package catalog

import (
	"context"
	"log"

	"github.com/sureshdube/book-review-platform/internal/entity"
)

// DefaultSeedISBNs is the fixed list used to populate an empty catalog.
var DefaultSeedISBNs = []string{
	"9780140328721", // Matilda
	"9780439139601", // Harry Potter and the Goblet of Fire
	"9780061120084", // To Kill a Mockingbird
	"9780747532743", // Harry Potter and the Philosopher's Stone
	"9780316769488", // The Catcher in the Rye
	"9780451524935", // 1984
	"9780618260300", // The Hobbit
	"9780545010221", // Harry Potter and the Deathly Hallows
	"9780140449136", // The Odyssey
	"9780141439600", // Jane Eyre
}

// SeedResult summarizes one seeding run. It is returned, never persisted.
type SeedResult struct {
	SeededCount int           `json:"seeded"`
	Books       []entity.Book `json:"books"`
	TimedOut    bool          `json:"timedOut"`
}

// SeedDefaults populates an empty catalog from DefaultSeedISBNs in throttled
// batches under an overall deadline. It never returns an error: storage and
// upstream failures are logged and reflected in the partial result.
//
// If the catalog already has entries the run is a no-op that reports the
// existing contents with SeededCount 0.
//
// The deadline is checked before each batch, not during one, so a run can
// overshoot by at most one request timeout plus its retry backoff.
func (s *Service) SeedDefaults(ctx context.Context) SeedResult {
	start := s.now()

	count, err := s.repo.Count(ctx)
	if err != nil {
		log.Printf("seed: count catalog: %v", err)
		return SeedResult{}
	}
	if count > 0 {
		existing, err := s.repo.ListAll(ctx)
		if err != nil {
			log.Printf("seed: list existing catalog: %v", err)
			return SeedResult{}
		}
		return SeedResult{SeededCount: 0, Books: existing, TimedOut: false}
	}

	var result SeedResult
	for _, batch := range chunk(dedupe(DefaultSeedISBNs), s.cfg.BatchSize) {
		if s.now().Sub(start) >= s.cfg.SeedDeadline {
			result.TimedOut = true
			log.Printf("seed: deadline reached after %d books", result.SeededCount)
			return result
		}

		records, err := s.client.GetBooksByISBN(ctx, batch)
		if err != nil {
			log.Printf("seed: batch fetch failed: %v", err)
			return result
		}

		for _, isbn := range batch {
			rec, ok := records[isbn]
			if !ok {
				// Unknown upstream: nothing to persist.
				continue
			}
			book, err := s.upsertRecord(ctx, isbn, rec)
			if err != nil {
				log.Printf("seed: %v", err)
				continue
			}
			result.Books = append(result.Books, book)
			result.SeededCount++
		}
	}
	return result
}

func dedupe(isbns []string) []string {
	seen := make(map[string]bool, len(isbns))
	out := make([]string, 0, len(isbns))
	for _, isbn := range isbns {
		if seen[isbn] {
			continue
		}
		seen[isbn] = true
		out = append(out, isbn)
	}
	return out
}

func chunk(isbns []string, size int) [][]string {
	var out [][]string
	for len(isbns) > size {
		out = append(out, isbns[:size])
		isbns = isbns[size:]
	}
	if len(isbns) > 0 {
		out = append(out, isbns)
	}
	return out
}
