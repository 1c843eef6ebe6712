package usecase

import (
	"context"
	"errors"

	"github.com/sureshdube/book-review-platform/internal/entity"
)

// MaxFavourites caps the number of favourite books per user.
const MaxFavourites = 20

type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (entity.User, error)
	GetByID(ctx context.Context, id string) (entity.User, error)
}

type FavouriteRepository interface {
	List(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID, isbn string) error
	Remove(ctx context.Context, userID, isbn string) error
}

type Profile struct {
	User       entity.User     `json:"user"`
	Reviews    []entity.Review `json:"reviews"`
	Favourites []entity.Book   `json:"favourites"`
}

type UserService struct {
	users      UserRepository
	favourites FavouriteRepository
	reviews    ReviewRepository
	books      BookRepository
}

func NewUserService(users UserRepository, favourites FavouriteRepository, reviews ReviewRepository, books BookRepository) *UserService {
	return &UserService{users: users, favourites: favourites, reviews: reviews, books: books}
}

// AddFavourite marks a cached book as favourite. Adding an ISBN that is
// already a favourite reports already=true without error; an ISBN not in the
// catalog yields ErrBookNotFound.
func (s *UserService) AddFavourite(ctx context.Context, userID, isbn string) (already bool, err error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return false, err
	}
	if _, err := s.books.GetByISBN(ctx, isbn); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, ErrBookNotFound
		}
		return false, err
	}
	existing, err := s.favourites.List(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, fav := range existing {
		if fav == isbn {
			return true, nil
		}
	}
	if len(existing) >= MaxFavourites {
		return false, ErrTooManyFavourites
	}
	return false, s.favourites.Add(ctx, userID, isbn)
}

// RemoveFavourite is idempotent; removing an absent favourite is not an error.
func (s *UserService) RemoveFavourite(ctx context.Context, userID, isbn string) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.favourites.Remove(ctx, userID, isbn)
}

// GetProfile returns the user, their reviews (with book titles attached where
// the book is cached) and their favourite books.
func (s *UserService) GetProfile(ctx context.Context, userID string) (Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	reviews, err := s.reviews.ListByUser(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	favIsbns, err := s.favourites.List(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	var favourites []entity.Book
	if len(favIsbns) > 0 {
		favourites, err = s.books.GetByISBNs(ctx, favIsbns)
		if err != nil {
			return Profile{}, err
		}
	}

	return Profile{User: user, Reviews: reviews, Favourites: favourites}, nil
}
