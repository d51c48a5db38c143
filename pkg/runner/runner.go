package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/survey"
	"github.com/aretw0/survey/internal/logging"
	"github.com/aretw0/survey/pkg/domain"
)

// Runner handles the interaction loop of a survey session using provided IO.
// It uses an IOHandler strategy to abstract the interaction mode (Text vs JSON).
type Runner struct {
	// Handler is the strategy for IO. It must also be the session's presenter
	// so questions get rendered. If nil, a TextHandler on Stdin/Stdout is used.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// MaxInputSize bounds each answer token. Zero means DefaultMaxInputSize.
	MaxInputSize int

	noSignals bool
}

// NewRunner creates a new Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	return r
}

// Run drives session until it completes, the respondent quits or input ends.
// Quitting, end of input and an interrupt signal are not errors. Invalid
// answers are reported through SystemOutput and asked again; any other
// engine error stops the loop.
func (r *Runner) Run(ctx context.Context, session *survey.Session) error {
	if session == nil {
		return errors.New("session is required")
	}
	handler := r.Handler
	if handler == nil {
		handler = NewTextHandler(os.Stdin, os.Stdout)
	}

	inputCtx := ctx
	var signals *SignalManager
	if !r.noSignals {
		signals = NewSignalManager(ctx)
		defer signals.Stop()
	}

	for session.Status() != domain.StatusCompleted {
		q, err := session.CurrentQuestion()
		if err != nil {
			return err
		}
		if signals != nil {
			inputCtx = signals.Context()
		}

		p := session.Progress()
		cmd, err := handler.Input(inputCtx, q, fmt.Sprintf("%d/%d", p.Position, p.Total))
		if err != nil {
			if signals != nil {
				signals.CheckRace()
				if signals.Interrupted() {
					r.Logger.Info("session interrupted", "question", q.ID)
					return nil
				}
			}
			if errors.Is(err, io.EOF) {
				r.Logger.Info("input closed before completion", "question", q.ID)
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		switch cmd.Kind {
		case CommandQuit:
			r.Logger.Info("respondent quit", "question", q.ID)
			return nil

		case CommandBack:
			out, err := session.GoBack(ctx)
			if err != nil {
				return fmt.Errorf("navigation error: %w", err)
			}
			if out.Kind == domain.OutcomeAtStart {
				_ = handler.SystemOutput(ctx, "Already at the first question.")
			}
			continue

		case CommandKeep:
			prior, ok := session.AnswerFor(q.ID)
			if !ok {
				_ = handler.SystemOutput(ctx, "There is no previous answer to keep.")
				continue
			}
			cmd.Value = prior.Value
		}

		value, err := Sanitize(Coerce(q, cmd.Value), r.MaxInputSize)
		if err == nil {
			err = CheckOptions(q, value)
		}
		if err != nil {
			_ = handler.SystemOutput(ctx, err.Error())
			continue
		}

		if _, err := session.RecordAndAdvance(ctx, value); err != nil {
			if errors.Is(err, domain.ErrInvalidAnswer) {
				r.Logger.Debug("answer rejected", "question", q.ID, "err", err)
				_ = handler.SystemOutput(ctx, err.Error())
				continue
			}
			return fmt.Errorf("navigation error: %w", err)
		}
	}
	return nil
}
