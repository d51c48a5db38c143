package survey

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/survey/internal/logging"
	"github.com/aretw0/survey/internal/runtime"
	"github.com/aretw0/survey/pkg/domain"
	"github.com/aretw0/survey/pkg/ports"
)

// Progress is the respondent position along the longest remaining path.
type Progress = runtime.Progress

// Engine is the high-level entry point of the survey library.
// It binds a catalog to its collaborators and starts sessions.
type Engine struct {
	runtime   *runtime.Engine
	catalog   ports.Catalog
	gateway   ports.SubmissionGateway
	presenter ports.Presenter
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithGateway sets where completed submissions are appended.
// Without one, completions are kept in memory only.
func WithGateway(g ports.SubmissionGateway) Option {
	return func(e *Engine) {
		e.gateway = g
	}
}

// WithPresenter registers the presentation collaborator.
func WithPresenter(p ports.Presenter) Option {
	return func(e *Engine) {
		e.presenter = p
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine over an immutable catalog.
func New(catalog ports.Catalog, opts ...Option) (*Engine, error) {
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}
	eng := &Engine{catalog: catalog}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized so we don't pass nil to runtime
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	eng.runtime = runtime.NewEngine(catalog,
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	)
	return eng, nil
}

// Catalog returns the catalog the engine serves.
func (e *Engine) Catalog() ports.Catalog {
	return e.catalog
}

// Start opens a session at the catalog entry question.
// Prior submissions are fetched best-effort: a failing gateway is logged and
// treated as an empty store.
func (e *Engine) Start(ctx context.Context) (*Session, error) {
	var prior []domain.Submission
	if e.gateway != nil {
		subs, err := e.gateway.FetchPriorSubmissions(ctx)
		if err != nil {
			e.logger.Warn("could not fetch prior submissions", "err", err)
		} else {
			prior = subs
		}
	}

	state, err := e.runtime.Start(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	s := &Session{engine: e, state: state, prior: prior}
	if e.presenter != nil {
		q, err := e.runtime.Current(state)
		if err != nil {
			return nil, err
		}
		e.presenter.OnQuestionChanged(ctx, q, nil)
	}
	e.logger.Info("session started", "entry", state.CurrentQuestionID, "prior_submissions", len(prior))
	return s, nil
}
