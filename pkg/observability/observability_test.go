package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/survey"
	"github.com/aretw0/survey/pkg/catalog"
	"github.com/aretw0/survey/pkg/domain"
	"github.com/aretw0/survey/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingGateway struct{}

func (failingGateway) FetchPriorSubmissions(context.Context) ([]domain.Submission, error) {
	return nil, nil
}

func (failingGateway) AppendSubmission(context.Context, domain.Submission) error {
	return errors.New("offline")
}

func TestHooks_RecordSession(t *testing.T) {
	ctx := context.Background()
	metrics := observability.NewMetrics()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cat := catalog.MustNew(1,
		domain.Question{ID: 1, Prompt: "Name", Kind: domain.KindShortText, Route: domain.FixedRoute(2)},
		domain.Question{ID: 2, Prompt: "City", Kind: domain.KindShortText},
	)
	eng, err := survey.New(cat,
		survey.WithGateway(failingGateway{}),
		survey.WithLifecycleHooks(observability.Combine(metrics.Hooks(), observability.AuditHooks(logger))),
	)
	require.NoError(t, err)

	s, err := eng.Start(ctx)
	require.NoError(t, err)
	_, err = s.RecordAndAdvance(ctx, domain.Single("secret-name"))
	require.NoError(t, err)
	_, err = s.GoBack(ctx)
	require.NoError(t, err)
	_, err = s.RecordAndAdvance(ctx, domain.Single("secret-name"))
	require.NoError(t, err)
	_, err = s.RecordAndAdvance(ctx, domain.Single("Recife"))
	require.NoError(t, err)

	reg := metrics.Registry()
	assert.Equal(t, 3, testutil.CollectAndCount(reg, "survey_answers_total"))
	assert.Equal(t, 1, testutil.CollectAndCount(reg, "survey_completions_total"))

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `survey_question_visits_total{question_id="1"} 2`)
	assert.Contains(t, body, `survey_answers_total{question_id="1",replaced="true"} 1`)
	assert.Contains(t, body, `survey_back_total 1`)
	assert.Contains(t, body, `survey_completions_total{persisted="false"} 1`)
	assert.Contains(t, body, `survey_question_dwell_seconds_count{question_id="1"}`)

	assert.Contains(t, logs.String(), "msg=complete")
	assert.Contains(t, logs.String(), "err=offline")
	assert.NotContains(t, logs.String(), "secret-name")
}

func TestCombine_Order(t *testing.T) {
	var order []string
	a := domain.LifecycleHooks{OnBack: func(context.Context, *domain.QuestionEvent) { order = append(order, "a") }}
	b := domain.LifecycleHooks{OnBack: func(context.Context, *domain.QuestionEvent) { order = append(order, "b") }}

	h := observability.Combine(a, domain.LifecycleHooks{}, b)
	h.OnBack(context.Background(), &domain.QuestionEvent{})
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Nil(t, h.OnAnswer)
}
