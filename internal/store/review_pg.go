package store

import (
	"context"
	"errors"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sureshdube/book-review-platform/internal/entity"
	"github.com/sureshdube/book-review-platform/internal/usecase"
)

type ReviewPG struct {
	db *pgxpool.Pool
}

func NewReviewPG(db *pgxpool.Pool) *ReviewPG {
	return &ReviewPG{db: db}
}

func (r *ReviewPG) Create(ctx context.Context, rev *entity.Review) error {
	const query = `
	INSERT INTO reviews (id, isbn, user_id, rating, text)
	VALUES (gen_random_uuid(), $1, $2, $3, $4)
	RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, rev.ISBN, rev.UserID, rev.Rating, rev.Text).
		Scan(&rev.ID, &rev.CreatedAt, &rev.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return usecase.ErrAlreadyReviewed
		}
		return err
	}
	return nil
}

func (r *ReviewPG) GetByID(ctx context.Context, id string) (entity.Review, error) {
	const query = `
	SELECT r.id, r.isbn, r.user_id, u.email, r.rating, r.text, r.created_at, r.updated_at
	FROM reviews r
	JOIN users u ON u.id = r.user_id
	WHERE r.id = $1
	LIMIT 1
	`
	var rev entity.Review
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rev.ID, &rev.ISBN, &rev.UserID, &rev.UserEmail, &rev.Rating, &rev.Text, &rev.CreatedAt, &rev.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Review{}, usecase.ErrNotFound
		}
		return entity.Review{}, err
	}
	return rev, nil
}

func (r *ReviewPG) GetByUserAndISBN(ctx context.Context, userID, isbn string) (entity.Review, error) {
	const query = `
	SELECT r.id, r.isbn, r.user_id, u.email, r.rating, r.text, r.created_at, r.updated_at
	FROM reviews r
	JOIN users u ON u.id = r.user_id
	WHERE r.user_id = $1 AND r.isbn = $2
	LIMIT 1
	`
	var rev entity.Review
	err := r.db.QueryRow(ctx, query, userID, isbn).Scan(
		&rev.ID, &rev.ISBN, &rev.UserID, &rev.UserEmail, &rev.Rating, &rev.Text, &rev.CreatedAt, &rev.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Review{}, usecase.ErrNotFound
		}
		return entity.Review{}, err
	}
	return rev, nil
}

func (r *ReviewPG) ListByISBN(ctx context.Context, isbn string) ([]entity.Review, error) {
	const query = `
	SELECT r.id, r.isbn, r.user_id, u.email, r.rating, r.text, r.created_at, r.updated_at
	FROM reviews r
	JOIN users u ON u.id = r.user_id
	WHERE r.isbn = $1
	ORDER BY r.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, isbn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReviews(rows, false)
}

// ListByUser also attaches the cached book title to each review for profile
// responses.
func (r *ReviewPG) ListByUser(ctx context.Context, userID string) ([]entity.Review, error) {
	const query = `
	SELECT r.id, r.isbn, r.user_id, u.email, r.rating, r.text, r.created_at, r.updated_at,
		COALESCE(b.title, r.isbn)
	FROM reviews r
	JOIN users u ON u.id = r.user_id
	LEFT JOIN books b ON b.isbn = r.isbn
	WHERE r.user_id = $1
	ORDER BY r.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReviews(rows, true)
}

func (r *ReviewPG) Update(ctx context.Context, rev *entity.Review) error {
	const query = `
	UPDATE reviews SET rating = $2, text = $3, updated_at = now()
	WHERE id = $1
	RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, rev.ID, rev.Rating, rev.Text).Scan(&rev.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return usecase.ErrNotFound
	}
	return err
}

func (r *ReviewPG) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

// RatingStats aggregates the average rating (rounded to one decimal, nil when
// there are no reviews) and the review count for a book.
func (r *ReviewPG) RatingStats(ctx context.Context, isbn string) (entity.RatingStats, error) {
	const query = `SELECT AVG(rating)::FLOAT, COUNT(*) FROM reviews WHERE isbn = $1`
	var avg *float64
	var count int
	if err := r.db.QueryRow(ctx, query, isbn).Scan(&avg, &count); err != nil {
		return entity.RatingStats{}, err
	}
	if avg != nil {
		rounded := math.Round(*avg*10) / 10
		avg = &rounded
	}
	return entity.RatingStats{AvgRating: avg, ReviewCount: count}, nil
}

func collectReviews(rows pgx.Rows, withTitle bool) ([]entity.Review, error) {
	var reviews []entity.Review
	for rows.Next() {
		var rev entity.Review
		dest := []any{&rev.ID, &rev.ISBN, &rev.UserID, &rev.UserEmail, &rev.Rating, &rev.Text, &rev.CreatedAt, &rev.UpdatedAt}
		if withTitle {
			dest = append(dest, &rev.BookTitle)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}
