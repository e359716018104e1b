package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"eventadmin/internal/storage"
)

// Session holds the admin bearer token and whether the remote service has
// accepted it. It is created once at startup and handed to the API client,
// which reads Token for every outbound request.
//
// Authenticated is true only after Accept or Establish, and goes back to
// false on End.
type Session struct {
	mu            sync.RWMutex
	store         storage.Storage
	key           string
	token         string
	authenticated bool
}

// NewSession returns an unauthenticated session persisted in store under key.
func NewSession(store storage.Storage, key string) *Session {
	if store == nil {
		store = storage.NewMemoryStorage()
	}
	return &Session{store: store, key: key}
}

// Key returns the storage key the token is persisted under.
func (s *Session) Key() string { return s.key }

// Load reads the persisted token into memory without marking the session
// authenticated. It reports whether a token was found.
func (s *Session) Load(ctx context.Context) (bool, error) {
	token, err := s.store.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		s.mu.Lock()
		s.token = ""
		s.authenticated = false
		s.mu.Unlock()
		return false, nil
	}
	if err != nil {
		return false, err
	}
	token = strings.TrimSpace(token)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.authenticated = false
	return token != "", nil
}

// Token returns the bearer token currently held, or "".
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Accept marks the loaded token as verified by the remote service.
func (s *Session) Accept() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return ErrNoToken
	}
	s.authenticated = true
	return nil
}

// Establish persists a freshly issued token and marks the session
// authenticated. On a storage failure the session is left unauthenticated.
func (s *Session) Establish(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrNoToken
	}
	if err := s.store.Set(ctx, s.key, token); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.authenticated = true
	return nil
}

// End discards the token both in memory and in storage. Memory is cleared
// even when storage fails, so the session never stays authenticated.
func (s *Session) End(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.authenticated = false
	s.mu.Unlock()
	return s.store.Delete(ctx, s.key)
}
