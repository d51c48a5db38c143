package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// DefaultKey holds the submission blob unless WithKey overrides it.
const DefaultKey = "survey:submissions"

// Store implements ports.BlobStore using a single Redis string key.
type Store struct {
	client *backend.Client
	key    string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration refreshed on every write.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithKey sets the key holding the blob.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		key:    DefaultKey,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Client exposes the underlying client, e.g. to share it with a Locker.
func (s *Store) Client() *backend.Client {
	return s.client
}

// Get retrieves the blob. A missing key is an empty store.
func (s *Store) Get(ctx context.Context) ([]byte, error) {
	val, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	return val, nil
}

// Put replaces the blob.
func (s *Store) Put(ctx context.Context, data []byte) error {
	// 0 means no expiration
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
