package store

import (
	"context"
	"sync"
)

// SavedStore holds the "savedBooks" collection. Entries are snapshot
// copies taken at save time: deleting the original listing leaves the
// saved copy untouched.
type SavedStore struct {
	kv KV
	mu *sync.Mutex
}

// List returns the saved collection for display.
func (s *SavedStore) List(ctx context.Context) ([]Book, error) {
	return loadBookList(ctx, s.kv, KeySaved)
}

// IsSaved reports whether a listing with the given title is saved.
func (s *SavedStore) IsSaved(ctx context.Context, title string) (bool, error) {
	books, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	for _, b := range books {
		if b.Title == title {
			return true, nil
		}
	}
	return false, nil
}

// Toggle saves b if it is not in the set and removes it if it is.
// Returns whether the book is saved after the call.
func (s *SavedStore) Toggle(ctx context.Context, b Book) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := loadBookList(ctx, s.kv, KeySaved)
	if err != nil {
		return false, err
	}

	kept := books[:0:0]
	removed := false
	for _, existing := range books {
		if existing.Title == b.Title {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	if !removed {
		kept = append(kept, b)
	}
	if err := saveBookList(ctx, s.kv, KeySaved, kept); err != nil {
		return false, err
	}
	return !removed, nil
}

// Remove drops the saved entry with the given title. This is the saved
// screen's explicit remove button; unlike Toggle it fails when the
// entry is absent.
func (s *SavedStore) Remove(ctx context.Context, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := loadBookList(ctx, s.kv, KeySaved)
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
	return saveBookList(ctx, s.kv, KeySaved, kept)
}
