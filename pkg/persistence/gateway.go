// Package persistence implements the submission gateway on top of a single
// remote blob: fetch the whole collection, append, write it back.
package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/survey/internal/logging"
	"github.com/aretw0/survey/pkg/domain"
	"github.com/aretw0/survey/pkg/ports"
)

const (
	// DefaultLockKey names the lock guarding the read-modify-write cycle.
	DefaultLockKey = "survey:submissions"
	// DefaultLockTTL bounds how long a crashed writer holds the lock.
	DefaultLockTTL = 30 * time.Second
)

// Gateway is a ports.SubmissionGateway backed by a ports.BlobStore.
//
// The read-modify-write is not transactional. Concurrent respondents can lose
// updates unless a DistributedLocker is configured.
type Gateway struct {
	store   ports.BlobStore
	locker  ports.DistributedLocker
	lockKey string
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLocker serializes appends across processes.
func WithLocker(l ports.DistributedLocker) Option {
	return func(g *Gateway) {
		g.locker = l
	}
}

// WithLockKey overrides DefaultLockKey.
func WithLockKey(key string) Option {
	return func(g *Gateway) {
		if key != "" {
			g.lockKey = key
		}
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(g *Gateway) {
		if ttl > 0 {
			g.lockTTL = ttl
		}
	}
}

// WithLogger sets the gateway logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGateway creates a gateway over store.
func NewGateway(store ports.BlobStore, opts ...Option) *Gateway {
	g := &Gateway{
		store:   store,
		lockKey: DefaultLockKey,
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// FetchPriorSubmissions reads and decodes the blob. An empty blob is no data.
func (g *Gateway) FetchPriorSubmissions(ctx context.Context) ([]domain.Submission, error) {
	data, err := g.store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch: %v", domain.ErrPersistence, err)
	}
	subs, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return subs, nil
}

// AppendSubmission re-reads the blob, appends s and writes the result back.
// A blob that cannot be read or decoded is never overwritten.
func (g *Gateway) AppendSubmission(ctx context.Context, s domain.Submission) error {
	if g.locker != nil {
		unlock, err := g.locker.Lock(ctx, g.lockKey, g.lockTTL)
		if err != nil {
			return fmt.Errorf("%w: lock: %v", domain.ErrPersistence, err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				g.logger.Warn("failed to release submission lock", "key", g.lockKey, "err", err)
			}
		}()
	}

	prior, err := g.FetchPriorSubmissions(ctx)
	if err != nil {
		return err
	}

	data, err := Encode(append(prior, s))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if err := g.store.Put(ctx, data); err != nil {
		return fmt.Errorf("%w: append: %v", domain.ErrPersistence, err)
	}

	g.logger.Debug("submission appended", "submission", s.ID, "total", len(prior)+1)
	return nil
}
