package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sureshdube/book-review-platform/internal/entity"
)

type fakeCompleter struct {
	reply   string
	err     error
	prompts []string
}

func (c *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

func TestRecommendationService_Recommend(t *testing.T) {
	ctx := context.Background()
	user := entity.User{ID: "user-1", Email: "reader@example.com"}
	book := entity.Book{ISBN: "9780140328721", Title: "Fantastic Mr Fox"}

	t.Run("nil completer means not configured", func(t *testing.T) {
		svc := NewRecommendationService(newFakeUserRepo(user), newFakeReviewRepo(), newFakeFavouriteRepo(), newFakeBookRepo(), nil)

		_, err := svc.Recommend(ctx, "user-1")
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := NewRecommendationService(newFakeUserRepo(user), newFakeReviewRepo(), newFakeFavouriteRepo(), newFakeBookRepo(), &fakeCompleter{reply: "[]"})

		_, err := svc.Recommend(ctx, "ghost")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("prompt uses favourite titles", func(t *testing.T) {
		favs := newFakeFavouriteRepo()
		require.NoError(t, favs.Add(ctx, "user-1", book.ISBN))
		completer := &fakeCompleter{reply: `["Danny the Champion of the World","The BFG"]`}
		svc := NewRecommendationService(newFakeUserRepo(user), newFakeReviewRepo(), favs, newFakeBookRepo(book), completer)

		titles, err := svc.Recommend(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"Danny the Champion of the World", "The BFG"}, titles)
		require.Len(t, completer.prompts, 1)
		assert.Contains(t, completer.prompts[0], "Fantastic Mr Fox")
	})

	t.Run("falls back to reviewed isbns", func(t *testing.T) {
		reviews := newFakeReviewRepo()
		require.NoError(t, reviews.Create(ctx, &entity.Review{ISBN: book.ISBN, UserID: "user-1", Rating: 5}))
		completer := &fakeCompleter{reply: `["Matilda"]`}
		svc := NewRecommendationService(newFakeUserRepo(user), reviews, newFakeFavouriteRepo(), newFakeBookRepo(book), completer)

		_, err := svc.Recommend(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, completer.prompts, 1)
		assert.Contains(t, completer.prompts[0], book.ISBN)
	})

	t.Run("no history prompts with N/A", func(t *testing.T) {
		completer := &fakeCompleter{reply: `["Matilda"]`}
		svc := NewRecommendationService(newFakeUserRepo(user), newFakeReviewRepo(), newFakeFavouriteRepo(), newFakeBookRepo(), completer)

		_, err := svc.Recommend(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, completer.prompts, 1)
		assert.Contains(t, completer.prompts[0], "N/A")
	})

	t.Run("non-JSON reply becomes single suggestion", func(t *testing.T) {
		completer := &fakeCompleter{reply: "You might enjoy Matilda."}
		svc := NewRecommendationService(newFakeUserRepo(user), newFakeReviewRepo(), newFakeFavouriteRepo(), newFakeBookRepo(), completer)

		titles, err := svc.Recommend(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"You might enjoy Matilda."}, titles)
	})

	t.Run("completion failure wraps upstream error", func(t *testing.T) {
		completer := &fakeCompleter{err: errors.New("rate limited")}
		svc := NewRecommendationService(newFakeUserRepo(user), newFakeReviewRepo(), newFakeFavouriteRepo(), newFakeBookRepo(), completer)

		_, err := svc.Recommend(ctx, "user-1")
		assert.ErrorIs(t, err, ErrUpstream)
	})
}
