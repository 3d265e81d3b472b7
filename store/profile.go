package store

import (
	"context"
	"sync"
)

// ProfileStore holds the single seller contact profile under
// "userProfile". There is no partial update: Save overwrites the whole
// record.
type ProfileStore struct {
	kv KV
	mu *sync.Mutex
}

// Load returns the stored profile, or a zero Profile when none exists.
func (s *ProfileStore) Load(ctx context.Context) (Profile, error) {
	var p Profile
	if _, err := loadRecord(ctx, s.kv, KeyProfile, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Save replaces the stored profile.
func (s *ProfileStore) Save(ctx context.Context, p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveRecord(ctx, s.kv, KeyProfile, p)
}
