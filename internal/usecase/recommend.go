package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Completer produces a completion for a single prompt. Implemented by the
// OpenAI chat client; nil when no API key is configured.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type RecommendationService struct {
	users      UserRepository
	reviews    ReviewRepository
	favourites FavouriteRepository
	books      BookRepository
	completer  Completer
}

func NewRecommendationService(users UserRepository, reviews ReviewRepository, favourites FavouriteRepository, books BookRepository, completer Completer) *RecommendationService {
	return &RecommendationService{
		users:      users,
		reviews:    reviews,
		favourites: favourites,
		books:      books,
		completer:  completer,
	}
}

// Recommend asks the completion model for five book titles based on the
// user's favourites, falling back to their reviewed ISBNs. The model is asked
// for a JSON array; a reply that fails to parse is returned as a single
// free-text suggestion.
func (s *RecommendationService) Recommend(ctx context.Context, userID string) ([]string, error) {
	if s.completer == nil {
		return nil, fmt.Errorf("%w: recommendations require an OpenAI API key", ErrNotConfigured)
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	liked, err := s.likedSummary(ctx, userID)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf("Suggest 5 books for a user who liked: %s. Reply as a JSON array of book titles.", liked)
	reply, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var titles []string
	if err := json.Unmarshal([]byte(reply), &titles); err != nil {
		return []string{reply}, nil
	}
	return titles, nil
}

func (s *RecommendationService) likedSummary(ctx context.Context, userID string) (string, error) {
	favIsbns, err := s.favourites.List(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(favIsbns) > 0 {
		favBooks, err := s.books.GetByISBNs(ctx, favIsbns)
		if err != nil {
			return "", err
		}
		titles := make([]string, 0, len(favBooks))
		for _, b := range favBooks {
			titles = append(titles, b.Title)
		}
		if len(titles) > 0 {
			return strings.Join(titles, ", "), nil
		}
	}

	reviews, err := s.reviews.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(reviews) > 0 {
		isbns := make([]string, len(reviews))
		for i, r := range reviews {
			isbns[i] = r.ISBN
		}
		return strings.Join(isbns, ", "), nil
	}
	return "N/A", nil
}
