package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/survey/pkg/domain"
)

func TestTextHandler_OnQuestionChanged(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), outBuf)

	// Mock Renderer (optional)
	handler.Renderer = func(s string) (string, error) {
		return "Rendered: " + s, nil
	}

	q := colors
	q.Prompt = "Favorite color?"
	prior := &domain.Answer{QuestionID: 1, Value: domain.Single("green")}
	handler.OnQuestionChanged(context.Background(), q, prior)

	output := outBuf.String()
	for _, expected := range []string{"Rendered: Favorite color?", "1) Red", "2) Green", "previous answer: green"} {
		if !strings.Contains(output, expected) {
			t.Errorf("Expected output to contain '%s', got '%s'", expected, output)
		}
	}
}

func TestTextHandler_TextQuestionExplainsQuoting(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), outBuf)

	handler.OnQuestionChanged(context.Background(), nickname, nil)
	if !strings.Contains(outBuf.String(), `type "back" with quotes`) {
		t.Errorf("Expected quoting hint, got '%s'", outBuf.String())
	}

	outBuf.Reset()
	handler.OnQuestionChanged(context.Background(), colors, nil)
	if strings.Contains(outBuf.String(), "with quotes") {
		t.Errorf("Choice questions need no quoting hint, got '%s'", outBuf.String())
	}
}

func TestTextHandler_Input(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader("\x1b[31mAna\r\n"), outBuf)

	cmd, err := handler.Input(context.Background(), nickname, "2/5")
	if err != nil {
		t.Fatalf("Input failed: %v", err)
	}
	if cmd.Kind != CommandAnswer || cmd.Value.String() != "[31mAna" {
		t.Errorf("Expected sanitized answer, got %+v", cmd)
	}
	if !strings.Contains(outBuf.String(), "[2/5] > ") {
		t.Errorf("Expected progress prompt, got '%s'", outBuf.String())
	}

	if _, err := handler.Input(context.Background(), nickname, ""); !errors.Is(err, io.EOF) {
		t.Errorf("Expected EOF after the last line, got %v", err)
	}
}

func TestTextHandler_InputRetriesInvalidLine(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader("purple\n1\n"), outBuf)

	cmd, err := handler.Input(context.Background(), colors, "")
	if err != nil {
		t.Fatalf("Input failed: %v", err)
	}
	if cmd.Value.String() != "red" {
		t.Errorf("Expected 'red', got '%s'", cmd.Value)
	}
	if !strings.Contains(outBuf.String(), `unknown option "purple"`) {
		t.Errorf("Expected retry message, got '%s'", outBuf.String())
	}
}

func TestTextHandler_InputCancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	handler := NewTextHandler(r, &bytes.Buffer{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := handler.Input(ctx, nickname, "")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}
}

func TestTextHandler_OnCompletedWarns(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), outBuf)

	handler.OnCompleted(context.Background(), domain.Submission{Answers: make([]domain.Answer, 2)}, errors.New("disk full"))

	output := outBuf.String()
	if !strings.Contains(output, "2 answers recorded") || !strings.Contains(output, "disk full") {
		t.Errorf("Unexpected completion output '%s'", output)
	}
}
