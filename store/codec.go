package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Fixed keys in the persistence primitive. These names are the stored
// format and must not change.
const (
	KeyBooks    = "books"
	KeySaved    = "savedBooks"
	KeyProfile  = "userProfile"
	KeyUser     = "user"
	KeyLoggedIn = "isLoggedIn"
)

// loadBookList decodes the JSON array stored under key. An absent key
// yields an empty list. A malformed value also yields an empty list —
// logged, never propagated — so one corrupt blob can't wedge every
// screen that reads it.
func loadBookList(ctx context.Context, kv KV, key string) ([]Book, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return []Book{}, nil
	}
	var books []Book
	if err := json.Unmarshal([]byte(raw), &books); err != nil {
		slog.Warn("stored collection is not valid JSON, treating as empty", "key", key, "err", err)
		return []Book{}, nil
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// saveBookList rewrites the whole collection under key. There is no
// delta write: the stored unit is the full array.
func saveBookList(ctx context.Context, kv KV, key string, books []Book) error {
	data, err := json.Marshal(books)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// loadRecord decodes the single JSON object stored under key into out.
// Returns false when the key is absent or the value is malformed.
func loadRecord(ctx context.Context, kv KV, key string, out any) (bool, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		slog.Warn("stored record is not valid JSON, treating as absent", "key", key, "err", err)
		return false, nil
	}
	return true, nil
}

func saveRecord(ctx context.Context, kv KV, key string, rec any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
