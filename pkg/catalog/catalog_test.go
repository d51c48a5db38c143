package catalog

import (
	"errors"
	"testing"

	"github.com/aretw0/survey/pkg/domain"
	"github.com/aretw0/survey/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func choice(id int, route domain.Route, values ...string) domain.Question {
	opts := make([]domain.Option, 0, len(values))
	for _, v := range values {
		opts = append(opts, domain.Option{Label: "Option " + v, Value: v})
	}
	return domain.Question{ID: id, Prompt: "Q", Kind: domain.KindSingleChoice, Options: opts, Route: route}
}

func TestCatalog_Contract(t *testing.T) {
	c, err := New(1,
		choice(1, domain.AnswerRoute(map[string]int{"A": 2, "B": 3}), "A", "B"),
		domain.Question{ID: 2, Prompt: "Why?", Kind: domain.KindLongText},
		domain.Question{ID: 3, Prompt: "Name", Kind: domain.KindShortText},
	)
	require.NoError(t, err)
	tests.CatalogContractTest(t, c)
	assert.Equal(t, []int{1, 2, 3}, c.IDs())
}

func TestCatalog_GetReturnsCopies(t *testing.T) {
	c := MustNew(1, choice(1, domain.TerminalRoute(), "A"))

	q, err := c.Get(1)
	require.NoError(t, err)
	q.Options[0].Value = "mutated"

	again, err := c.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "A", again.Options[0].Value)
}

func TestNew_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		entry     int
		questions []domain.Question
	}{
		{"missing entry", 9, []domain.Question{choice(1, domain.TerminalRoute(), "A")}},
		{"duplicate id", 1, []domain.Question{choice(1, domain.TerminalRoute(), "A"), choice(1, domain.TerminalRoute(), "B")}},
		{"non-positive id", 0, []domain.Question{choice(0, domain.TerminalRoute(), "A")}},
		{"choice without options", 1, []domain.Question{{ID: 1, Kind: domain.KindMultiChoice}}},
		{"duplicate option value", 1, []domain.Question{choice(1, domain.TerminalRoute(), "A", "A")}},
		{"text with options", 1, []domain.Question{{ID: 1, Kind: domain.KindShortText, Options: []domain.Option{{Value: "A"}}}}},
		{"text with keyed route", 1, []domain.Question{{ID: 1, Kind: domain.KindLongText, Route: domain.AnswerRoute(map[string]int{"A": 2})}}},
		{"unknown kind", 1, []domain.Question{{ID: 1, Kind: "slider"}}},
		{"bad target", 1, []domain.Question{{ID: 1, Kind: domain.KindShortText, Route: domain.FixedRoute(-2)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entry, tt.questions...)
			assert.Error(t, err)
		})
	}
}

func TestNew_MissingEntryIsNotFound(t *testing.T) {
	_, err := New(5, choice(1, domain.TerminalRoute(), "A"))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
