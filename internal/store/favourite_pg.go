package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sureshdube/book-review-platform/internal/usecase"
)

type FavouritePG struct {
	db *pgxpool.Pool
}

func NewFavouritePG(db *pgxpool.Pool) *FavouritePG {
	return &FavouritePG{db: db}
}

func (r *FavouritePG) List(ctx context.Context, userID string) ([]string, error) {
	const query = `
	SELECT isbn FROM user_favourites
	WHERE user_id = $1
	ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var isbns []string
	for rows.Next() {
		var isbn string
		if err := rows.Scan(&isbn); err != nil {
			return nil, err
		}
		isbns = append(isbns, isbn)
	}
	return isbns, rows.Err()
}

func (r *FavouritePG) Add(ctx context.Context, userID, isbn string) error {
	const query = `
	INSERT INTO user_favourites (user_id, isbn)
	VALUES ($1, $2)
	ON CONFLICT (user_id, isbn) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, userID, isbn)
	if err != nil {
		// FK violation: the ISBN is not in the books table. The usecase checks
		// first, but a concurrent delete can still race past it.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return usecase.ErrBookNotFound
		}
		return err
	}
	return nil
}

func (r *FavouritePG) Remove(ctx context.Context, userID, isbn string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM user_favourites WHERE user_id = $1 AND isbn = $2`, userID, isbn)
	return err
}
