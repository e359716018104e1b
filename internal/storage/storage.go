package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"eventadmin/internal/config"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("storage: key not found")

// Storage is durable key/value storage for client-side state that must
// survive restarts, such as the admin bearer token.
type Storage interface {
	// Get retrieves a value by key; ErrNotFound when absent
	Get(ctx context.Context, key string) (string, error)

	// Set stores a value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error

	// Delete removes a key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
}

// Open builds the Storage selected by cfg.Session.Store. The returned close
// func releases any connection the backend holds.
func Open(cfg *config.Config) (Storage, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Session.Store {
	case config.StoreMemory:
		return NewMemoryStorage(), noop, nil
	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return NewRedisStorage(rdb), rdb.Close, nil
	case config.StoreFile, "":
		return NewFileStorage(cfg.Session.Path), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}

// MemoryStorage keeps values in process memory. It is used for tests and
// for one-shot runs where nothing should be written to disk.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: map[string]string{}}
}

func (s *MemoryStorage) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
