package store

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// requiredFields are the listing fields the sell flow refuses to leave
// blank, in the order they are reported back to the user.
var requiredFields = []struct {
	name string
	get  func(Book) string
}{
	{"title", func(b Book) string { return b.Title }},
	{"category", func(b Book) string { return b.Category }},
	{"year", func(b Book) string { return b.Year }},
	{"publisher", func(b Book) string { return b.Publisher }},
	{"price", func(b Book) string { return b.Price }},
	{"author", func(b Book) string { return b.Author }},
	{"postalCode", func(b Book) string { return b.PostalCode }},
	{"city", func(b Book) string { return b.City }},
}

// BookStore holds the "books" collection: every listing currently for
// sale. Mutations are whole-collection rewrites serialized by a write
// lock shared with the other stores, so overlapping mutations cannot
// drop each other's changes.
type BookStore struct {
	kv KV
	mu *sync.Mutex
}

// List returns all current listings, oldest first. Absent collection
// means no listings yet.
func (s *BookStore) List(ctx context.Context) ([]Book, error) {
	return loadBookList(ctx, s.kv, KeyBooks)
}

// GetByTitle returns the listing with the given title.
func (s *BookStore) GetByTitle(ctx context.Context, title string) (Book, error) {
	books, err := s.List(ctx)
	if err != nil {
		return Book{}, err
	}
	for _, b := range books {
		if b.Title == title {
			return b, nil
		}
	}
	return Book{}, ErrNotFound
}

// SearchByTitle returns listings whose title contains term,
// case-insensitively. A blank term returns everything.
func (s *BookStore) SearchByTitle(ctx context.Context, term string) ([]Book, error) {
	books, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return books, nil
	}
	matched := []Book{}
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), term) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// Append validates the listing, assigns it an ID, and persists the
// grown collection. On any failure nothing is written.
func (s *BookStore) Append(ctx context.Context, b Book) (Book, error) {
	if err := validateBook(b); err != nil {
		return Book{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := loadBookList(ctx, s.kv, KeyBooks)
	if err != nil {
		return Book{}, err
	}
	for _, existing := range books {
		if existing.Title == b.Title {
			return Book{}, ErrDuplicateTitle
		}
	}

	b.ID = uuid.NewString()
	books = append(books, b)
	if err := saveBookList(ctx, s.kv, KeyBooks, books); err != nil {
		return Book{}, err
	}
	return b, nil
}

// RemoveByTitle deletes the listing with the given title and persists
// the shrunk collection. Titles are unique on append, so at most one
// record matches.
func (s *BookStore) RemoveByTitle(ctx context.Context, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := loadBookList(ctx, s.kv, KeyBooks)
	if err != nil {
		return err
	}
	kept := books[:0:0]
	for _, b := range books {
		if b.Title != title {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(books) {
		return ErrNotFound
	}
	return saveBookList(ctx, s.kv, KeyBooks, kept)
}

func validateBook(b Book) error {
	var missing []string
	for _, f := range requiredFields {
		if strings.TrimSpace(f.get(b)) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
