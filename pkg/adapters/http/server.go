// Package http exposes one survey session over a JSON API.
//
// The server is the session's presenter: question changes and completion
// are pushed to /events subscribers as server-sent events. It serves a
// single respondent per process; POST /restart begins a new session.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/aretw0/survey"
	"github.com/aretw0/survey/internal/logging"
	"github.com/aretw0/survey/internal/presentation/graph"
	"github.com/aretw0/survey/pkg/domain"
	"github.com/aretw0/survey/pkg/ports"
	"github.com/aretw0/survey/pkg/runner"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server binds a session to HTTP handlers.
type Server struct {
	catalog    ports.CatalogLister
	engineOpts []survey.Option
	logger     *slog.Logger
	metrics    http.Handler
	spec       *openapi3.T

	Streams *StreamManager

	mu      sync.Mutex
	engine  *survey.Engine
	session *survey.Session
}

// Option configures the Server.
type Option func(*Server)

// WithEngineOptions passes options (gateway, hooks) to the survey engine.
// The presenter is always the server itself.
func WithEngineOptions(opts ...survey.Option) Option {
	return func(s *Server) {
		s.engineOpts = append(s.engineOpts, opts...)
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewServer builds the engine over catalog and starts the first session.
func NewServer(ctx context.Context, catalog ports.CatalogLister, opts ...Option) (*Server, error) {
	s := &Server{catalog: catalog}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	s.Streams = NewStreamManager(s.logger)

	spec, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	s.spec = spec

	engineOpts := append([]survey.Option{survey.WithLogger(s.logger)}, s.engineOpts...)
	engineOpts = append(engineOpts, survey.WithPresenter(s))
	s.engine, err = survey.New(catalog, engineOpts...)
	if err != nil {
		return nil, err
	}
	if s.session, err = s.engine.Start(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler returns the HTTP handler with every route mounted.
func (s *Server) Handler() (http.Handler, error) {
	validate, err := validateRequests(s.spec, s.logger)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)
	r.Use(validate)

	r.Get("/question", s.GetQuestion)
	r.Post("/answer", s.PostAnswer)
	r.Post("/back", s.PostBack)
	r.Post("/restart", s.PostRestart)
	r.Get("/state", s.GetState)
	r.Get("/catalog", s.GetCatalog)
	r.Get("/graph", s.GetGraph)
	r.Get("/events", s.SubscribeEvents)
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Survey API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// View is the response body of the navigation endpoints.
type View struct {
	Status     domain.Status      `json:"status"`
	Outcome    domain.OutcomeKind `json:"outcome,omitempty"`
	Question   *domain.Question   `json:"question,omitempty"`
	Prior      *domain.Value      `json:"prior,omitempty"`
	Progress   survey.Progress    `json:"progress"`
	Submission *domain.Submission `json:"submission,omitempty"`
	Warning    string             `json:"warning,omitempty"`
}

// AnswerRequest is the body of POST /answer.
type AnswerRequest struct {
	Answer domain.Value `json:"answer"`
}

// view must be called with s.mu held.
func (s *Server) view(outcome domain.OutcomeKind) View {
	v := View{
		Status:   s.session.Status(),
		Outcome:  outcome,
		Progress: s.session.Progress(),
	}
	if v.Status == domain.StatusCompleted {
		sub, persistErr := s.session.Submission()
		v.Submission = sub
		if persistErr != nil {
			v.Warning = persistErr.Error()
		}
		return v
	}
	if q, err := s.session.CurrentQuestion(); err == nil {
		v.Question = &q
		if a, ok := s.session.AnswerFor(q.ID); ok {
			v.Prior = &a.Value
		}
	}
	return v
}

// GetQuestion handles GET /question.
func (s *Server) GetQuestion(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	v := s.view("")
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, v)
}

// PostAnswer handles POST /answer.
func (s *Server) PostAnswer(w http.ResponseWriter, r *http.Request) {
	var body AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q, err := s.session.CurrentQuestion()
	if err != nil {
		writeEngineError(w, s.logger, err)
		return
	}
	value, err := runner.Sanitize(runner.Coerce(q, body.Answer), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := runner.CheckOptions(q, value); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	out, err := s.session.RecordAndAdvance(r.Context(), value)
	if err != nil {
		writeEngineError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, s.view(out.Kind))
}

// PostBack handles POST /back.
func (s *Server) PostBack(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.session.GoBack(r.Context())
	if err != nil {
		writeEngineError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, s.view(out.Kind))
}

// PostRestart handles POST /restart.
func (s *Server) PostRestart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.engine.Start(r.Context())
	if err != nil {
		writeEngineError(w, s.logger, err)
		return
	}
	s.session = session
	writeJSON(w, http.StatusOK, s.view(""))
}

// GetState handles GET /state.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	state := s.session.State()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, state)
}

// GetCatalog handles GET /catalog.
func (s *Server) GetCatalog(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		Entry     int               `json:"entry"`
		Questions []domain.Question `json:"questions"`
	}{Entry: s.catalog.EntryID(), Questions: s.questions()}
	writeJSON(w, http.StatusOK, resp)
}

// GetGraph handles GET /graph.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	overlay := graph.OverlayFor(s.session.State())
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(graph.GenerateMermaid(s.questions(), s.catalog.EntryID(), overlay)))
}

func (s *Server) questions() []domain.Question {
	ids := s.catalog.IDs()
	out := make([]domain.Question, 0, len(ids))
	for _, id := range ids {
		if q, err := s.catalog.Get(id); err == nil {
			out = append(out, q)
		}
	}
	return out
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.spec.Info != nil {
		apiVersion = s.spec.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "survey-http",
		"version":     strings.TrimSpace(survey.Version),
		"api_version": apiVersion,
	})
}

// SubscribeEvents handles GET /events (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE Client Disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// OnQuestionChanged broadcasts the new question to /events subscribers.
func (s *Server) OnQuestionChanged(ctx context.Context, q domain.Question, prior *domain.Answer) {
	ev := runner.Event{Type: runner.EventQuestion, Question: &q}
	if prior != nil {
		ev.Prior = &prior.Value
	}
	s.broadcast(ev)
}

// OnCompleted broadcasts the submission to /events subscribers.
func (s *Server) OnCompleted(ctx context.Context, sub domain.Submission, persistErr error) {
	ev := runner.Event{Type: runner.EventCompleted, Submission: &sub}
	if persistErr != nil {
		ev.Warning = persistErr.Error()
	}
	s.broadcast(ev)
}

func (s *Server) broadcast(ev runner.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		s.logger.Error("event encode failed", "err", err)
		return
	}
	s.Streams.Broadcast(string(data))
}

// -- Helpers --

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeEngineError maps engine errors to status codes.
func writeEngineError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAnswer):
		writeError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, domain.ErrInvalidState):
		writeError(w, http.StatusConflict, err)
	default:
		logger.Error("navigation failed", "err", err)
		writeError(w, http.StatusInternalServerError, err)
	}
}
