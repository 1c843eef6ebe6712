package store

// Repository implementations (Postgres)

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sureshdube/book-review-platform/internal/entity"
	"github.com/sureshdube/book-review-platform/internal/usecase"
)

type BookPG struct {
	db *pgxpool.Pool
}

func NewBookPG(db *pgxpool.Pool) *BookPG {
	return &BookPG{db: db}
}

const bookColumns = `isbn, title, authors, cover_url, page_count, publish_date, publishers, source, raw_data, created_at, updated_at`

func scanBook(row pgx.Row) (entity.Book, error) {
	var b entity.Book
	err := row.Scan(&b.ISBN, &b.Title, &b.Authors, &b.CoverURL, &b.PageCount,
		&b.PublishDate, &b.Publishers, &b.Source, &b.RawData, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r *BookPG) Upsert(ctx context.Context, b *entity.Book) error {
	const query = `
	INSERT INTO books (isbn, title, authors, cover_url, page_count, publish_date, publishers, source, raw_data, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
	ON CONFLICT (isbn) DO UPDATE SET
		title = EXCLUDED.title,
		authors = EXCLUDED.authors,
		cover_url = EXCLUDED.cover_url,
		page_count = EXCLUDED.page_count,
		publish_date = EXCLUDED.publish_date,
		publishers = EXCLUDED.publishers,
		source = EXCLUDED.source,
		raw_data = EXCLUDED.raw_data,
		updated_at = now()
	RETURNING created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		b.ISBN, b.Title, b.Authors, b.CoverURL, b.PageCount,
		b.PublishDate, b.Publishers, b.Source, b.RawData,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
}

func (r *BookPG) GetByISBN(ctx context.Context, isbn string) (entity.Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE isbn = $1 LIMIT 1`
	b, err := scanBook(r.db.QueryRow(ctx, query, isbn))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Book{}, usecase.ErrNotFound
		}
		return entity.Book{}, err
	}
	return b, nil
}

func (r *BookPG) GetByISBNs(ctx context.Context, isbns []string) ([]entity.Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE isbn = ANY($1) ORDER BY title`
	rows, err := r.db.Query(ctx, query, isbns)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBooks(rows)
}

// List pages through the catalog; q filters by case-insensitive substring on
// title or any author name.
func (r *BookPG) List(ctx context.Context, p usecase.ListParams) ([]entity.Book, int, error) {
	const where = `
	WHERE ($1 = ''
		OR title ILIKE '%' || $1 || '%'
		OR array_to_string(authors, ' ') ILIKE '%' || $1 || '%')
	`

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM books `+where, p.Q).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+bookColumns+` FROM books `+where+` ORDER BY title ASC, isbn ASC LIMIT $2 OFFSET $3`,
		p.Q, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	books, err := collectBooks(rows)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (r *BookPG) ListAll(ctx context.Context) ([]entity.Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books ORDER BY created_at ASC, isbn ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBooks(rows)
}

func (r *BookPG) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&count)
	return count, err
}

func collectBooks(rows pgx.Rows) ([]entity.Book, error) {
	var books []entity.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}
