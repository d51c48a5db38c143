package observability

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/aretw0/survey/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the survey collectors in their own registry.
type Metrics struct {
	registry *prometheus.Registry

	visits      *prometheus.CounterVec
	answers     *prometheus.CounterVec
	backs       prometheus.Counter
	completions *prometheus.CounterVec
	dwell       *prometheus.HistogramVec

	mu      sync.Mutex
	entered map[int]time.Time
}

// NewMetrics registers the survey collectors in a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		visits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "survey_question_visits_total",
			Help: "Total number of times a question became current.",
		}, []string{"question_id"}),
		answers: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "survey_answers_total",
			Help: "Total number of accepted answers, partitioned by whether they replaced a prior answer.",
		}, []string{"question_id", "replaced"}),
		backs: factory.NewCounter(prometheus.CounterOpts{
			Name: "survey_back_total",
			Help: "Total number of backward moves.",
		}),
		completions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "survey_completions_total",
			Help: "Total number of completed sessions, partitioned by persistence result.",
		}, []string{"persisted"}),
		dwell: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "survey_question_dwell_seconds",
			Help:    "Time spent on a question before leaving it.",
			Buckets: []float64{1, 2, 5, 10, 30, 60, 120, 300},
		}, []string{"question_id"}),
		entered: make(map[int]time.Time),
	}
}

// Registry exposes the underlying registry, e.g. to add process collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnQuestionEnter: func(_ context.Context, e *domain.QuestionEvent) {
			m.visits.WithLabelValues(strconv.Itoa(e.QuestionID)).Inc()
			m.mu.Lock()
			m.entered[e.QuestionID] = e.Timestamp
			m.mu.Unlock()
		},
		OnQuestionLeave: func(_ context.Context, e *domain.QuestionEvent) {
			m.mu.Lock()
			start, ok := m.entered[e.QuestionID]
			delete(m.entered, e.QuestionID)
			m.mu.Unlock()
			if ok {
				m.dwell.WithLabelValues(strconv.Itoa(e.QuestionID)).Observe(e.Timestamp.Sub(start).Seconds())
			}
		},
		OnAnswer: func(_ context.Context, e *domain.AnswerEvent) {
			m.answers.WithLabelValues(strconv.Itoa(e.QuestionID), strconv.FormatBool(e.Replaced)).Inc()
		},
		OnBack: func(context.Context, *domain.QuestionEvent) {
			m.backs.Inc()
		},
		OnComplete: func(_ context.Context, e *domain.CompleteEvent) {
			m.completions.WithLabelValues(strconv.FormatBool(e.PersistErr == nil)).Inc()
		},
	}
}
