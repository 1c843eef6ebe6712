package usecase

import (
	"context"
	"sort"

	"github.com/sureshdube/book-review-platform/internal/entity"
)

type fakeBookRepo struct {
	books map[string]entity.Book
}

func newFakeBookRepo(books ...entity.Book) *fakeBookRepo {
	r := &fakeBookRepo{books: make(map[string]entity.Book)}
	for _, b := range books {
		r.books[b.ISBN] = b
	}
	return r
}

func (r *fakeBookRepo) List(ctx context.Context, p ListParams) ([]entity.Book, int, error) {
	all, _ := r.ListAll(ctx)
	return all, len(all), nil
}

func (r *fakeBookRepo) ListAll(ctx context.Context) ([]entity.Book, error) {
	out := make([]entity.Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ISBN < out[j].ISBN })
	return out, nil
}

func (r *fakeBookRepo) GetByISBN(ctx context.Context, isbn string) (entity.Book, error) {
	b, ok := r.books[isbn]
	if !ok {
		return entity.Book{}, ErrNotFound
	}
	return b, nil
}

func (r *fakeBookRepo) GetByISBNs(ctx context.Context, isbns []string) ([]entity.Book, error) {
	var out []entity.Book
	for _, isbn := range isbns {
		if b, ok := r.books[isbn]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookRepo) Upsert(ctx context.Context, b *entity.Book) error {
	r.books[b.ISBN] = *b
	return nil
}

func (r *fakeBookRepo) Count(ctx context.Context) (int, error) {
	return len(r.books), nil
}

type fakeReviewRepo struct {
	reviews map[string]entity.Review
	nextID  int
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]entity.Review), nextID: 1}
}

func (r *fakeReviewRepo) Create(ctx context.Context, rev *entity.Review) error {
	for _, existing := range r.reviews {
		if existing.UserID == rev.UserID && existing.ISBN == rev.ISBN {
			return ErrAlreadyReviewed
		}
	}
	rev.ID = string(rune('a' + r.nextID))
	r.nextID++
	r.reviews[rev.ID] = *rev
	return nil
}

func (r *fakeReviewRepo) GetByID(ctx context.Context, id string) (entity.Review, error) {
	rev, ok := r.reviews[id]
	if !ok {
		return entity.Review{}, ErrNotFound
	}
	return rev, nil
}

func (r *fakeReviewRepo) GetByUserAndISBN(ctx context.Context, userID, isbn string) (entity.Review, error) {
	for _, rev := range r.reviews {
		if rev.UserID == userID && rev.ISBN == isbn {
			return rev, nil
		}
	}
	return entity.Review{}, ErrNotFound
}

func (r *fakeReviewRepo) ListByISBN(ctx context.Context, isbn string) ([]entity.Review, error) {
	var out []entity.Review
	for _, rev := range r.reviews {
		if rev.ISBN == isbn {
			out = append(out, rev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeReviewRepo) ListByUser(ctx context.Context, userID string) ([]entity.Review, error) {
	var out []entity.Review
	for _, rev := range r.reviews {
		if rev.UserID == userID {
			out = append(out, rev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeReviewRepo) Update(ctx context.Context, rev *entity.Review) error {
	if _, ok := r.reviews[rev.ID]; !ok {
		return ErrNotFound
	}
	r.reviews[rev.ID] = *rev
	return nil
}

func (r *fakeReviewRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.reviews[id]; !ok {
		return ErrNotFound
	}
	delete(r.reviews, id)
	return nil
}

func (r *fakeReviewRepo) RatingStats(ctx context.Context, isbn string) (entity.RatingStats, error) {
	var sum, count int
	for _, rev := range r.reviews {
		if rev.ISBN == isbn {
			sum += rev.Rating
			count++
		}
	}
	stats := entity.RatingStats{ReviewCount: count}
	if count > 0 {
		avg := float64(sum) / float64(count)
		stats.AvgRating = &avg
	}
	return stats, nil
}

type fakeUserRepo struct {
	users map[string]entity.User
}

func newFakeUserRepo(users ...entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, u *entity.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return ErrAlreadyExists
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return entity.User{}, ErrNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return entity.User{}, ErrNotFound
	}
	return u, nil
}

type fakeFavouriteRepo struct {
	favs map[string][]string
}

func newFakeFavouriteRepo() *fakeFavouriteRepo {
	return &fakeFavouriteRepo{favs: make(map[string][]string)}
}

func (r *fakeFavouriteRepo) List(ctx context.Context, userID string) ([]string, error) {
	return r.favs[userID], nil
}

func (r *fakeFavouriteRepo) Add(ctx context.Context, userID, isbn string) error {
	for _, existing := range r.favs[userID] {
		if existing == isbn {
			return nil
		}
	}
	r.favs[userID] = append(r.favs[userID], isbn)
	return nil
}

func (r *fakeFavouriteRepo) Remove(ctx context.Context, userID, isbn string) error {
	kept := r.favs[userID][:0]
	for _, existing := range r.favs[userID] {
		if existing != isbn {
			kept = append(kept, existing)
		}
	}
	r.favs[userID] = kept
	return nil
}
