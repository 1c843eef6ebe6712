package http

import (
	"context"
	"sort"
	"strconv"

	"github.com/sureshdube/book-review-platform/internal/entity"
	"github.com/sureshdube/book-review-platform/internal/platform/openlibrary"
	"github.com/sureshdube/book-review-platform/internal/usecase"
)

// In-memory repository stubs shared by the handler tests.

type stubUserRepo struct {
	users     map[string]entity.User
	createErr error
}

func newStubUserRepo(users ...entity.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(ctx context.Context, u *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return usecase.ErrAlreadyExists
		}
	}
	u.ID = "user-" + strconv.Itoa(len(r.users)+1)
	if u.Role == "" {
		u.Role = "USER"
	}
	r.users[u.ID] = *u
	return nil
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return entity.User{}, usecase.ErrNotFound
}

func (r *stubUserRepo) GetByID(ctx context.Context, id string) (entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return entity.User{}, usecase.ErrNotFound
	}
	return u, nil
}

type stubBookRepo struct {
	books map[string]entity.Book
}

func newStubBookRepo(books ...entity.Book) *stubBookRepo {
	r := &stubBookRepo{books: make(map[string]entity.Book)}
	for _, b := range books {
		r.books[b.ISBN] = b
	}
	return r
}

func (r *stubBookRepo) sorted() []entity.Book {
	out := make([]entity.Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ISBN < out[j].ISBN })
	return out
}

func (r *stubBookRepo) List(ctx context.Context, p usecase.ListParams) ([]entity.Book, int, error) {
	all := r.sorted()
	total := len(all)
	if p.Offset >= total {
		return nil, total, nil
	}
	end := p.Offset + p.Limit
	if end > total {
		end = total
	}
	return all[p.Offset:end], total, nil
}

func (r *stubBookRepo) ListAll(ctx context.Context) ([]entity.Book, error) {
	return r.sorted(), nil
}

func (r *stubBookRepo) GetByISBN(ctx context.Context, isbn string) (entity.Book, error) {
	b, ok := r.books[isbn]
	if !ok {
		return entity.Book{}, usecase.ErrNotFound
	}
	return b, nil
}

func (r *stubBookRepo) GetByISBNs(ctx context.Context, isbns []string) ([]entity.Book, error) {
	var out []entity.Book
	for _, isbn := range isbns {
		if b, ok := r.books[isbn]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *stubBookRepo) Upsert(ctx context.Context, b *entity.Book) error {
	r.books[b.ISBN] = *b
	return nil
}

func (r *stubBookRepo) Count(ctx context.Context) (int, error) {
	return len(r.books), nil
}

type stubOLClient struct {
	records map[string]openlibrary.Record
	err     error
	calls   int
}

func (c *stubOLClient) GetBooksByISBN(ctx context.Context, isbns []string) (map[string]openlibrary.Record, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	out := make(map[string]openlibrary.Record)
	for _, isbn := range isbns {
		if rec, ok := c.records[isbn]; ok {
			out[isbn] = rec
		}
	}
	return out, nil
}

func (c *stubOLClient) GetBookByISBN(ctx context.Context, isbn string) (openlibrary.Record, error) {
	c.calls++
	if c.err != nil {
		return openlibrary.Record{}, c.err
	}
	rec, ok := c.records[isbn]
	if !ok {
		return openlibrary.Record{}, openlibrary.ErrNotFound
	}
	return rec, nil
}

func olRecord(title string) openlibrary.Record {
	return openlibrary.Record{
		Title:   title,
		Authors: []openlibrary.Author{{Name: "Roald Dahl"}},
	}
}

type stubReviewRepo struct {
	reviews map[string]entity.Review
	nextID  int
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{reviews: make(map[string]entity.Review), nextID: 1}
}

func (r *stubReviewRepo) Create(ctx context.Context, rev *entity.Review) error {
	rev.ID = "review-" + strconv.Itoa(r.nextID)
	r.nextID++
	r.reviews[rev.ID] = *rev
	return nil
}

func (r *stubReviewRepo) GetByID(ctx context.Context, id string) (entity.Review, error) {
	rev, ok := r.reviews[id]
	if !ok {
		return entity.Review{}, usecase.ErrNotFound
	}
	return rev, nil
}

func (r *stubReviewRepo) GetByUserAndISBN(ctx context.Context, userID, isbn string) (entity.Review, error) {
	for _, rev := range r.reviews {
		if rev.UserID == userID && rev.ISBN == isbn {
			return rev, nil
		}
	}
	return entity.Review{}, usecase.ErrNotFound
}

func (r *stubReviewRepo) ListByISBN(ctx context.Context, isbn string) ([]entity.Review, error) {
	var out []entity.Review
	for _, rev := range r.reviews {
		if rev.ISBN == isbn {
			out = append(out, rev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubReviewRepo) ListByUser(ctx context.Context, userID string) ([]entity.Review, error) {
	var out []entity.Review
	for _, rev := range r.reviews {
		if rev.UserID == userID {
			out = append(out, rev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubReviewRepo) Update(ctx context.Context, rev *entity.Review) error {
	if _, ok := r.reviews[rev.ID]; !ok {
		return usecase.ErrNotFound
	}
	r.reviews[rev.ID] = *rev
	return nil
}

func (r *stubReviewRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.reviews[id]; !ok {
		return usecase.ErrNotFound
	}
	delete(r.reviews, id)
	return nil
}

func (r *stubReviewRepo) RatingStats(ctx context.Context, isbn string) (entity.RatingStats, error) {
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

type stubFavouriteRepo struct {
	favs map[string][]string
}

func newStubFavouriteRepo() *stubFavouriteRepo {
	return &stubFavouriteRepo{favs: make(map[string][]string)}
}

func (r *stubFavouriteRepo) List(ctx context.Context, userID string) ([]string, error) {
	return r.favs[userID], nil
}

func (r *stubFavouriteRepo) Add(ctx context.Context, userID, isbn string) error {
	r.favs[userID] = append(r.favs[userID], isbn)
	return nil
}

func (r *stubFavouriteRepo) Remove(ctx context.Context, userID, isbn string) error {
	kept := r.favs[userID][:0]
	for _, existing := range r.favs[userID] {
		if existing != isbn {
			kept = append(kept, existing)
		}
	}
	r.favs[userID] = kept
	return nil
}
