package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/survey/pkg/domain"
)

// Event types written by JSONHandler.
const (
	EventQuestion  = "question"
	EventCompleted = "completed"
	EventSystem    = "system"
)

// Event is one JSON line written by JSONHandler.
type Event struct {
	Type       string             `json:"type"`
	Question   *domain.Question   `json:"question,omitempty"`
	Prior      *domain.Value      `json:"prior,omitempty"`
	Submission *domain.Submission `json:"submission,omitempty"`
	Warning    string             `json:"warning,omitempty"`
	Message    string             `json:"message,omitempty"`
}

// Request is one JSON line read by JSONHandler.
// Action is "back", "quit" or "keep"; otherwise Answer is submitted.
type Request struct {
	Action string        `json:"action,omitempty"`
	Answer *domain.Value `json:"answer,omitempty"`
}

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
type JSONHandler struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Encoder *json.Encoder

	mu sync.Mutex
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) emit(ev Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Encoder.Encode(ev)
}

func (h *JSONHandler) OnQuestionChanged(ctx context.Context, q domain.Question, prior *domain.Answer) {
	ev := Event{Type: EventQuestion, Question: &q}
	if prior != nil {
		v := prior.Value
		ev.Prior = &v
	}
	_ = h.emit(ev)
}

func (h *JSONHandler) OnCompleted(ctx context.Context, s domain.Submission, persistErr error) {
	ev := Event{Type: EventCompleted, Submission: &s}
	if persistErr != nil {
		ev.Warning = persistErr.Error()
	}
	_ = h.emit(ev)
}

// Input reads lines until one decodes into a command. It accepts a Request
// object, a bare JSON string or array, or plain text parsed like the text
// handler does. Malformed lines are reported as system events.
func (h *JSONHandler) Input(ctx context.Context, q domain.Question, status string) (Command, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Command{}, err
		}
		text, err := h.Reader.ReadString('\n')
		if err != nil && (err != io.EOF || text == "") {
			return Command{}, err
		}

		cmd, perr := decodeRequest(q, strings.TrimSpace(text))
		if perr == nil {
			return cmd, nil
		}
		if err := h.SystemOutput(ctx, perr.Error()); err != nil {
			return Command{}, err
		}
	}
}

func decodeRequest(q domain.Question, text string) (Command, error) {
	if strings.HasPrefix(text, "{") {
		var req Request
		if err := json.Unmarshal([]byte(text), &req); err != nil {
			return Command{}, fmt.Errorf("invalid request: %w", err)
		}
		switch strings.ToLower(req.Action) {
		case "back":
			return Command{Kind: CommandBack}, nil
		case "quit":
			return Command{Kind: CommandQuit}, nil
		case "keep":
			return Command{Kind: CommandKeep}, nil
		case "":
		default:
			return Command{}, fmt.Errorf("unknown action %q", req.Action)
		}
		if req.Answer == nil {
			return Command{}, fmt.Errorf("request has neither answer nor action")
		}
		return Command{Kind: CommandAnswer, Value: *req.Answer}, nil
	}

	if strings.HasPrefix(text, "[") || strings.HasPrefix(text, `"`) {
		var v domain.Value
		if err := json.Unmarshal([]byte(text), &v); err == nil {
			return Command{Kind: CommandAnswer, Value: v}, nil
		}
	}

	// Fallback: plain text
	return ParseLine(q, text, false)
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.emit(Event{Type: EventSystem, Message: msg})
}
