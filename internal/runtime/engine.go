package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/survey/internal/logging"
	"github.com/aretw0/survey/pkg/domain"
	"github.com/aretw0/survey/pkg/ports"
)

// Engine is the navigation core. It is stateless: every operation takes a
// State and returns a new one, leaving the input untouched.
type Engine struct {
	catalog ports.Catalog
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	now     func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates a new engine bound to a catalog.
func NewEngine(catalog ports.Catalog, opts ...EngineOption) *Engine {
	e := &Engine{
		catalog: catalog,
		logger:  logging.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the catalog the engine navigates.
func (e *Engine) Catalog() ports.Catalog {
	return e.catalog
}

// Start creates the initial state at the catalog entry.
func (e *Engine) Start(ctx context.Context) (*domain.State, error) {
	entry, err := e.catalog.Get(e.catalog.EntryID())
	if err != nil {
		return nil, fmt.Errorf("failed to load entry question: %w", err)
	}
	state := domain.NewState(entry.ID)
	e.emitEnter(ctx, entry)
	return state, nil
}

// Current returns the question the state points at.
func (e *Engine) Current(state *domain.State) (domain.Question, error) {
	if !state.Initialized() {
		return domain.Question{}, fmt.Errorf("%w: session not started", domain.ErrInvalidState)
	}
	q, err := e.catalog.Get(state.CurrentQuestionID)
	if err != nil {
		return domain.Question{}, fmt.Errorf("%w: current question %d: %v", domain.ErrInvalidState, state.CurrentQuestionID, err)
	}
	return q, nil
}

// Navigate records value as the answer to the current question and moves on.
// On any error the returned state is nil and the input state is unchanged.
func (e *Engine) Navigate(ctx context.Context, state *domain.State, value domain.Value) (*domain.State, domain.Outcome, error) {
	if err := e.checkActive(state); err != nil {
		return nil, domain.Outcome{}, err
	}
	q, err := e.Current(state)
	if err != nil {
		return nil, domain.Outcome{}, err
	}

	// 1. Validate
	value, err = validateAnswer(q, value)
	if err != nil {
		e.logger.Debug("answer rejected", "question", q.ID, "err", err)
		return nil, domain.Outcome{}, err
	}

	// 2. Resolve the route before mutating anything
	var target domain.Question
	if !q.IsTerminal() {
		target, err = e.resolveNext(q, value)
		if err != nil {
			e.logger.Error("routing failed", "question", q.ID, "err", err)
			return nil, domain.Outcome{}, err
		}
	}

	// 3. Upsert
	next := state.Clone()
	_, replaced := next.Answers.Get(q.ID)
	next.Answers.Put(q.ID, value)
	e.emitAnswer(ctx, q.ID, value, replaced)
	e.emitLeave(ctx, q)

	// 4. Complete or advance
	if q.IsTerminal() {
		next.Status = domain.StatusCompleted
		sub := domain.Submission{Answers: next.Answers.AllOrderedBy(next.History)}
		e.logger.Debug("session completed", "question", q.ID, "answers", len(sub.Answers))
		return next, domain.Completed(sub), nil
	}

	next.CurrentQuestionID = target.ID
	next.History = append(next.History, target.ID)
	e.logger.Debug("advanced", "from", q.ID, "to", target.ID)
	e.emitEnter(ctx, target)
	return next, domain.Advanced(target), nil
}

// Back moves to the previous question in history. Stored answers are kept.
// At the entry question it is a no-op reporting AtStart.
func (e *Engine) Back(ctx context.Context, state *domain.State) (*domain.State, domain.Outcome, error) {
	if err := e.checkActive(state); err != nil {
		return nil, domain.Outcome{}, err
	}
	current, err := e.Current(state)
	if err != nil {
		return nil, domain.Outcome{}, err
	}
	if len(state.History) <= 1 {
		return state.Clone(), domain.AtStart(current), nil
	}

	next := state.Clone()
	next.History = next.History[:len(next.History)-1]
	next.CurrentQuestionID = next.History[len(next.History)-1]

	prev, err := e.catalog.Get(next.CurrentQuestionID)
	if err != nil {
		return nil, domain.Outcome{}, fmt.Errorf("%w: history entry %d: %v", domain.ErrInvalidState, next.CurrentQuestionID, err)
	}

	e.emitLeave(ctx, current)
	e.emitBack(ctx, prev)
	e.emitEnter(ctx, prev)
	return next, domain.Advanced(prev), nil
}

// AnswerFor returns the stored answer for a question, if any.
func (e *Engine) AnswerFor(state *domain.State, questionID int) (domain.Answer, bool) {
	if state == nil {
		return domain.Answer{}, false
	}
	v, ok := state.Answers.Get(questionID)
	if !ok {
		return domain.Answer{}, false
	}
	return domain.Answer{QuestionID: questionID, Value: v}, true
}

func (e *Engine) checkActive(state *domain.State) error {
	if !state.Initialized() {
		return fmt.Errorf("%w: session not started", domain.ErrInvalidState)
	}
	if state.Status == domain.StatusCompleted {
		return fmt.Errorf("%w: session already completed", domain.ErrInvalidState)
	}
	return nil
}
