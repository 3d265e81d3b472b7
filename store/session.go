package store

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Session is the login state machine: LoggedOut until Login succeeds,
// LoggedOut again after Logout. The state lives under "isLoggedIn" so it
// survives restarts; the single account lives under "user".
//
// Passwords are stored bcrypt-hashed. The stored key layout is unchanged
// from the historical format — the password field simply holds a hash.
type Session struct {
	kv KV
	mu *sync.Mutex
}

// CreateAccount stores the single account, unconditionally replacing any
// previous one.
func (s *Session) CreateAccount(ctx context.Context, username, password string) error {
	var missing []string
	if strings.TrimSpace(username) == "" {
		missing = append(missing, "username")
	}
	if strings.TrimSpace(password) == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return saveRecord(ctx, s.kv, KeyUser, Credential{
		Username: username,
		Password: string(hash),
	})
}

// Login transitions to LoggedIn when the credentials match the stored
// account. Every failure is ErrInvalidCredentials and leaves the session
// flag untouched.
func (s *Session) Login(ctx context.Context, username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cred Credential
	ok, err := loadRecord(ctx, s.kv, KeyUser, &cred)
	if err != nil {
		return err
	}
	if !ok || cred.Username != username {
		return ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(cred.Password), []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	return s.kv.Set(ctx, KeyLoggedIn, "true")
}

// Logout clears the session flag. Logging out while logged out is a
// no-op.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Remove(ctx, KeyLoggedIn)
}

// LoggedIn reports the current session state.
func (s *Session) LoggedIn(ctx context.Context) (bool, error) {
	v, ok, err := s.kv.Get(ctx, KeyLoggedIn)
	if err != nil {
		return false, err
	}
	return ok && v == "true", nil
}

// RequireLogin returns ErrNotLoggedIn unless a session is active. The
// sell flow gates on this the way the app only shows the sell tab to a
// logged-in user.
func (s *Session) RequireLogin(ctx context.Context) error {
	ok, err := s.LoggedIn(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotLoggedIn
	}
	return nil
}
