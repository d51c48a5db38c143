package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/survey/internal/runtime"
	"github.com/aretw0/survey/pkg/catalog"
	"github.com/aretw0/survey/pkg/domain"
)

func TestEngine_LifecycleHooks(t *testing.T) {
	c := catalog.MustNew(1,
		domain.Question{ID: 1, Kind: domain.KindShortText, Route: domain.FixedRoute(2)},
		domain.Question{ID: 2, Kind: domain.KindShortText},
	)

	// Capture events
	var entered, left, backs []int
	var answers []*domain.AnswerEvent

	hooks := domain.LifecycleHooks{
		OnQuestionEnter: func(ctx context.Context, e *domain.QuestionEvent) {
			entered = append(entered, e.QuestionID)
		},
		OnQuestionLeave: func(ctx context.Context, e *domain.QuestionEvent) {
			left = append(left, e.QuestionID)
		},
		OnBack: func(ctx context.Context, e *domain.QuestionEvent) {
			backs = append(backs, e.QuestionID)
		},
		OnAnswer: func(ctx context.Context, e *domain.AnswerEvent) {
			answers = append(answers, e)
		},
	}

	engine := runtime.NewEngine(c, runtime.WithLifecycleHooks(hooks))
	ctx := context.Background()

	state, err := engine.Start(ctx)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if len(entered) != 1 || entered[0] != 1 {
		t.Errorf("Expected enter 1 on Start(), got: %v", entered)
	}

	state, _, err = engine.Navigate(ctx, state, domain.Single("first"))
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	state, _, err = engine.Back(ctx, state)
	if err != nil {
		t.Fatalf("Back failed: %v", err)
	}
	state, _, err = engine.Navigate(ctx, state, domain.Single("second"))
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if _, _, err = engine.Navigate(ctx, state, domain.Single("last")); err != nil {
		t.Fatalf("Navigate to completion failed: %v", err)
	}

	// enter: 1 (start), 2, 1 (back), 2
	if got, want := entered, []int{1, 2, 1, 2}; !equal(got, want) {
		t.Errorf("entered = %v, want %v", got, want)
	}
	// leave: 1, 2 (back), 1, 2 (completion)
	if got, want := left, []int{1, 2, 1, 2}; !equal(got, want) {
		t.Errorf("left = %v, want %v", got, want)
	}
	if got, want := backs, []int{1}; !equal(got, want) {
		t.Errorf("backs = %v, want %v", got, want)
	}
	if len(answers) != 3 {
		t.Fatalf("Expected 3 answer events, got %d", len(answers))
	}
	if !answers[1].Replaced {
		t.Error("Expected re-answer of question 1 to be flagged as replaced")
	}
	if answers[0].Replaced || answers[2].Replaced {
		t.Error("Expected first answers not to be flagged as replaced")
	}
}

func equal(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
