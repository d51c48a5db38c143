package runner

import (
	"context"

	"github.com/aretw0/survey/pkg/domain"
	"github.com/aretw0/survey/pkg/ports"
)

// CommandKind tells the runner what the respondent asked for.
type CommandKind int

const (
	// CommandAnswer submits Command.Value for the current question.
	CommandAnswer CommandKind = iota
	// CommandKeep resubmits the stored answer (an empty line on a prefilled question).
	CommandKeep
	// CommandBack requests the previous question.
	CommandBack
	// CommandQuit abandons the session.
	CommandQuit
)

// Command is one respondent action.
type Command struct {
	Kind  CommandKind
	Value domain.Value
}

// IOHandler defines the strategy for interacting with the respondent.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	// Presenter renders questions and the completion screen.
	ports.Presenter

	// Input reads the next command for question q.
	// status is a short progress hint such as "3/11".
	Input(ctx context.Context, q domain.Question, status string) (Command, error)

	// SystemOutput presents a meta-message (validation feedback, warnings).
	// This is distinct from question rendering.
	SystemOutput(ctx context.Context, msg string) error
}
