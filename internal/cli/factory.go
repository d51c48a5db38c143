package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/survey"
	"github.com/aretw0/survey/internal/config"
	"github.com/aretw0/survey/pkg/adapters/file"
	loamadapter "github.com/aretw0/survey/pkg/adapters/loam"
	"github.com/aretw0/survey/pkg/adapters/memory"
	"github.com/aretw0/survey/pkg/adapters/redis"
	"github.com/aretw0/survey/pkg/adapters/textdb"
	"github.com/aretw0/survey/pkg/catalog"
	"github.com/aretw0/survey/pkg/observability"
	"github.com/aretw0/survey/pkg/persistence"
	"github.com/aretw0/survey/pkg/persistence/middleware"
	"github.com/aretw0/survey/pkg/ports"
)

// LoadCatalog resolves a catalog source: empty for the built-in catalog, a
// directory for one file per question, anything else for a YAML/JSON file.
func LoadCatalog(ctx context.Context, path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Builtin()
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("catalog not found: %w", err)
	}
	if info.IsDir() {
		return loamadapter.Load(ctx, path)
	}
	return catalog.LoadFile(path)
}

// Storage bundles the blob store, its optional locker and what must be
// closed on shutdown.
type Storage struct {
	Store  ports.BlobStore
	Locker ports.DistributedLocker

	lockKey string
	lockTTL time.Duration
	closer  io.Closer
}

// Close releases network clients.
func (s *Storage) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// OpenStorage builds the configured blob store and wraps it with the
// redaction and encryption middlewares when configured.
func OpenStorage(cfg config.StoreConfig, logger *slog.Logger) (*Storage, error) {
	s := &Storage{lockKey: cfg.LockKey, lockTTL: cfg.LockTTL}

	switch cfg.Kind {
	case config.StoreMemory:
		s.Store = memory.NewStore()
	case config.StoreFile, "":
		s.Store = file.New(cfg.Path)
	case config.StoreRedis:
		var opts []redis.Option
		if cfg.Redis.Key != "" {
			opts = append(opts, redis.WithKey(cfg.Redis.Key))
		}
		if cfg.Redis.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.Redis.TTL))
		}
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		s.Store = rs
		s.closer = rs
		if cfg.Lock {
			s.Locker = redis.NewLocker(rs.Client(), "survey:")
		}
	case config.StoreTextDB:
		opts := []textdb.Option{textdb.WithLogger(logger)}
		if cfg.TextDB.BaseURL != "" {
			opts = append(opts, textdb.WithBaseURL(cfg.TextDB.BaseURL))
		}
		ts, err := textdb.New(cfg.TextDB.Key, opts...)
		if err != nil {
			return nil, err
		}
		s.Store = ts
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
	}

	// A process-local lock still serializes concurrent sessions of one server.
	if cfg.Lock && s.Locker == nil {
		s.Locker = memory.NewLocker()
	}

	var mws []middleware.Middleware
	if len(cfg.Redact) > 0 {
		mw, err := middleware.NewRedactMiddleware(cfg.Redact)
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}
	if cfg.EncryptionKey != "" {
		active, fallback, err := cfg.Keys()
		if err != nil {
			return nil, err
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallback,
		}))
	}
	s.Store = middleware.Chain(s.Store, mws...)
	return s, nil
}

// Gateway wraps storage in the persistence gateway.
func (s *Storage) Gateway(logger *slog.Logger) *persistence.Gateway {
	opts := []persistence.Option{persistence.WithLogger(logger)}
	if s.Locker != nil {
		opts = append(opts,
			persistence.WithLocker(s.Locker),
			persistence.WithLockKey(s.lockKey),
			persistence.WithLockTTL(s.lockTTL),
		)
	}
	return persistence.NewGateway(s.Store, opts...)
}

// EngineOptions builds the survey options shared by every command: the
// gateway, the logger and the audit (plus optional metrics) hooks.
func EngineOptions(gateway ports.SubmissionGateway, logger *slog.Logger, metrics *observability.Metrics) []survey.Option {
	hooks := observability.AuditHooks(logger)
	if metrics != nil {
		hooks = observability.Combine(hooks, metrics.Hooks())
	}
	return []survey.Option{
		survey.WithGateway(gateway),
		survey.WithLogger(logger),
		survey.WithLifecycleHooks(hooks),
	}
}
