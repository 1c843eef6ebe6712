package usecase

import (
	"context"
	"errors"

	"github.com/sureshdube/book-review-platform/internal/entity"
)

type ReviewRepository interface {
	Create(ctx context.Context, r *entity.Review) error
	GetByID(ctx context.Context, id string) (entity.Review, error)
	GetByUserAndISBN(ctx context.Context, userID, isbn string) (entity.Review, error)
	ListByISBN(ctx context.Context, isbn string) ([]entity.Review, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Review, error)
	Update(ctx context.Context, r *entity.Review) error
	Delete(ctx context.Context, id string) error
	RatingStats(ctx context.Context, isbn string) (entity.RatingStats, error)
}

type ReviewService struct {
	reviews ReviewRepository
	books   BookRepository
}

func NewReviewService(reviews ReviewRepository, books BookRepository) *ReviewService {
	return &ReviewService{reviews: reviews, books: books}
}

// Create adds a review for a cached book. Each user gets one review per book.
func (s *ReviewService) Create(ctx context.Context, userID, userEmail, isbn string, rating int, text string) (entity.Review, error) {
	if rating < 1 || rating > 5 {
		return entity.Review{}, ErrInvalidRating
	}
	if _, err := s.books.GetByISBN(ctx, isbn); err != nil {
		return entity.Review{}, err
	}

	_, err := s.reviews.GetByUserAndISBN(ctx, userID, isbn)
	switch {
	case err == nil:
		return entity.Review{}, ErrAlreadyReviewed
	case !errors.Is(err, ErrNotFound):
		return entity.Review{}, err
	}

	review := entity.Review{
		ISBN:      isbn,
		UserID:    userID,
		UserEmail: userEmail,
		Rating:    rating,
		Text:      text,
	}
	if err := s.reviews.Create(ctx, &review); err != nil {
		return entity.Review{}, err
	}
	return review, nil
}

// Update edits a review's rating and/or text. Only the owning user may edit,
// and only under the book it was written for; anything else looks like a
// missing review to the caller.
func (s *ReviewService) Update(ctx context.Context, userID, isbn, reviewID string, rating *int, text *string) (entity.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return entity.Review{}, err
	}
	if review.ISBN != isbn || review.UserID != userID {
		return entity.Review{}, ErrNotFound
	}

	if rating != nil {
		if *rating < 1 || *rating > 5 {
			return entity.Review{}, ErrInvalidRating
		}
		review.Rating = *rating
	}
	if text != nil {
		review.Text = *text
	}
	if err := s.reviews.Update(ctx, &review); err != nil {
		return entity.Review{}, err
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, userID, isbn, reviewID string) error {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.ISBN != isbn || review.UserID != userID {
		return ErrNotFound
	}
	return s.reviews.Delete(ctx, reviewID)
}

func (s *ReviewService) ListForBook(ctx context.Context, isbn string) ([]entity.Review, error) {
	return s.reviews.ListByISBN(ctx, isbn)
}

func (s *ReviewService) Stats(ctx context.Context, isbn string) (entity.RatingStats, error) {
	return s.reviews.RatingStats(ctx, isbn)
}
