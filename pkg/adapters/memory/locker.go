package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/survey/pkg/ports"
)

// Locker implements ports.DistributedLocker within a single process.
// The TTL is ignored: locks are held until released.
type Locker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

// NewLocker creates an in-process locker.
func NewLocker() *Locker {
	return &Locker{locks: make(map[string]chan struct{})}
}

// Lock blocks until key is free or ctx is done.
func (l *Locker) Lock(ctx context.Context, key string, _ time.Duration) (ports.UnlockFunc, error) {
	for {
		l.mu.Lock()
		held, busy := l.locks[key]
		if !busy {
			done := make(chan struct{})
			l.locks[key] = done
			l.mu.Unlock()

			var once sync.Once
			return func(context.Context) error {
				once.Do(func() {
					l.mu.Lock()
					delete(l.locks, key)
					l.mu.Unlock()
					close(done)
				})
				return nil
			}, nil
		}
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-held:
		}
	}
}
