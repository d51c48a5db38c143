package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/survey/pkg/domain"
)

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// TextHandler implements the standard text-based interface.
// Choice questions are printed with numbered options; the respondent may type
// the option value or its number.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer

	mu        sync.Mutex
	priors    map[int]bool
	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the content renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
		priors: make(map[int]bool),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

// pump reads lines in the background so Input can honor context cancellation
// while a read is blocked.
func (h *TextHandler) pump() {
	for {
		text, err := h.Reader.ReadString('\n')

		// If we got text (even with EOF), send it
		if text != "" {
			h.inputChan <- inputResult{text: text}
		}
		if err != nil {
			if err != io.EOF {
				h.inputChan <- inputResult{err: err}
			}
			close(h.inputChan)
			return
		}
	}
}

// OnQuestionChanged prints the question, its options and the stored answer.
func (h *TextHandler) OnQuestionChanged(ctx context.Context, q domain.Question, prior *domain.Answer) {
	h.mu.Lock()
	h.priors[q.ID] = prior != nil
	h.mu.Unlock()

	prompt := q.Prompt
	if h.Renderer != nil {
		if rendered, err := h.Renderer(prompt); err == nil {
			prompt = strings.TrimSpace(rendered)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", prompt)
	for i, o := range q.Options {
		fmt.Fprintf(&b, "  %d) %s\n", i+1, o.Label)
	}
	switch q.Kind {
	case domain.KindMultiChoice:
		b.WriteString("(select one or more, separated by commas)\n")
	case domain.KindLongText:
		b.WriteString("(single line; your full answer)\n")
	}
	if !q.Kind.IsChoice() {
		b.WriteString("(back and quit navigate; type \"back\" with quotes to answer it)\n")
	}
	if prior != nil {
		fmt.Fprintf(&b, "(previous answer: %s, press Enter to keep)\n", prior.Value)
	}
	fmt.Fprint(h.Writer, b.String())
}

// OnCompleted prints the closing screen and any persistence warning.
func (h *TextHandler) OnCompleted(ctx context.Context, s domain.Submission, persistErr error) {
	fmt.Fprintf(h.Writer, "\nThank you! %d answers recorded.\n", len(s.Answers))
	if persistErr != nil {
		fmt.Fprintf(h.Writer, "[Warning] your answers could not be saved: %v\n", persistErr)
	}
}

// Input reads lines until one parses into a command for q.
func (h *TextHandler) Input(ctx context.Context, q domain.Question, status string) (Command, error) {
	// Ensure the pump is running
	h.initPump()

	h.mu.Lock()
	hasPrior := h.priors[q.ID]
	h.mu.Unlock()

	for {
		// Only show prompt if context is not yet done
		select {
		case <-ctx.Done():
			return Command{}, ctx.Err()
		default:
			if status != "" {
				fmt.Fprintf(h.Writer, "[%s] > ", status)
			} else {
				fmt.Fprint(h.Writer, "> ")
			}
		}

		select {
		case <-ctx.Done():
			// Important: don't print anything here, just exit silently
			return Command{}, ctx.Err()
		case res, ok := <-h.inputChan:
			if !ok {
				return Command{}, io.EOF
			}
			if res.err != nil {
				return Command{}, res.err
			}

			clean, err := SanitizeInput(strings.TrimRight(res.text, "\r\n"))
			if err != nil {
				fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
				continue
			}
			cmd, err := ParseLine(q, clean, hasPrior)
			if err != nil {
				fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
				continue
			}
			return cmd, nil
		}
	}
}

func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	_, err := fmt.Fprintf(h.Writer, "[System] %s\n", msg)
	return err
}
