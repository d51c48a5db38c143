package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/survey"
	"github.com/aretw0/survey/internal/presentation/graph"
	"github.com/aretw0/survey/pkg/domain"
	"github.com/aretw0/survey/pkg/ports"
	"github.com/aretw0/survey/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	catalogURI = "survey://catalog"
	stateURI   = "survey://state"
)

// SessionView is the structured result of every session tool.
type SessionView struct {
	Status     domain.Status      `json:"status" jsonschema_description:"in_progress or completed"`
	Outcome    domain.OutcomeKind `json:"outcome,omitempty" jsonschema_description:"What the last action did"`
	Question   *domain.Question   `json:"question,omitempty" jsonschema_description:"The question to answer next"`
	Prior      *domain.Value      `json:"prior,omitempty" jsonschema_description:"The answer already recorded for this question"`
	Progress   survey.Progress    `json:"progress" jsonschema_description:"Answered and total question counts"`
	Submission *domain.Submission `json:"submission,omitempty" jsonschema_description:"The recorded answers once completed"`
	Warning    string             `json:"warning,omitempty" jsonschema_description:"Set when the submission could not be saved"`
	Message    string             `json:"message,omitempty" jsonschema_description:"Feedback about the last action"`
}

type answerArgs struct {
	Answer string `json:"answer"`
}

// Server exposes one survey session as MCP tools and resources.
type Server struct {
	catalog   ports.CatalogLister
	logger    *slog.Logger
	mcpServer *server.MCPServer

	mu      sync.Mutex
	engine  *survey.Engine
	session *survey.Session
}

// NewServer starts a session over catalog and registers the MCP surface.
func NewServer(ctx context.Context, catalog ports.CatalogLister, logger *slog.Logger, opts ...survey.Option) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	engine, err := survey.New(catalog, opts...)
	if err != nil {
		return nil, err
	}
	session, err := engine.Start(ctx)
	if err != nil {
		return nil, err
	}

	s := &Server{
		catalog:   catalog,
		logger:    logger,
		engine:    engine,
		session:   session,
		mcpServer: server.NewMCPServer("survey-mcp", strings.TrimSpace(survey.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s, nil
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("current_question",
		mcp.WithDescription("Show the question to answer next, with any answer already recorded for it."),
		mcp.WithOutputSchema[SessionView](),
	), mcp.NewStructuredToolHandler(s.handleCurrentQuestion))

	s.mcpServer.AddTool(mcp.NewTool("submit_answer",
		mcp.WithDescription("Answer the current question and move on. Choice questions take an option value "+
			"or its 1-based number; multi choice takes several separated by commas or a JSON array."),
		mcp.WithString("answer", mcp.Required(), mcp.Description("The answer to record")),
		mcp.WithOutputSchema[SessionView](),
	), mcp.NewStructuredToolHandler(s.handleSubmitAnswer))

	s.mcpServer.AddTool(mcp.NewTool("go_back",
		mcp.WithDescription("Return to the previous question. Recorded answers are kept."),
		mcp.WithOutputSchema[SessionView](),
	), mcp.NewStructuredToolHandler(s.handleGoBack))

	s.mcpServer.AddTool(mcp.NewTool("restart",
		mcp.WithDescription("Discard the current session and start over from the first question."),
		mcp.WithOutputSchema[SessionView](),
	), mcp.NewStructuredToolHandler(s.handleRestart))

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the question graph as a Mermaid flowchart with the visited path highlighted."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(s.mermaid()), nil
	})
}

func (s *Server) handleCurrentQuestion(ctx context.Context, request mcp.CallToolRequest, _ struct{}) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(""), nil
}

func (s *Server) handleSubmitAnswer(ctx context.Context, request mcp.CallToolRequest, args answerArgs) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, err := s.session.CurrentQuestion()
	if err != nil {
		return SessionView{}, err
	}

	value, err := s.parseAnswer(q, args.Answer)
	if err != nil {
		v := s.view("")
		v.Message = err.Error()
		return v, nil
	}

	out, err := s.session.RecordAndAdvance(ctx, value)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAnswer) {
			v := s.view("")
			v.Message = err.Error()
			return v, nil
		}
		s.logger.Error("MCP submit_answer failed", "err", err)
		return SessionView{}, err
	}
	return s.view(out.Kind), nil
}

// parseAnswer takes text answers verbatim, since navigation has its own
// tools. Choice answers are a JSON array or the terminal runner's line syntax.
func (s *Server) parseAnswer(q domain.Question, raw string) (domain.Value, error) {
	var value domain.Value
	trimmed := strings.TrimSpace(raw)
	prior, hasPrior := s.session.AnswerFor(q.ID)
	switch {
	case trimmed == "" && hasPrior:
		value = prior.Value
	case !q.Kind.IsChoice():
		value = domain.Single(raw)
	case strings.HasPrefix(trimmed, "["):
		if err := json.Unmarshal([]byte(trimmed), &value); err != nil {
			return domain.Value{}, err
		}
	default:
		cmd, err := runner.ParseLine(q, raw, hasPrior)
		if err != nil {
			return domain.Value{}, err
		}
		if cmd.Kind != runner.CommandAnswer {
			return domain.Value{}, fmt.Errorf("use the go_back or restart tools to navigate")
		}
		value = cmd.Value
	}

	value, err := runner.Sanitize(runner.Coerce(q, value), 0)
	if err != nil {
		s.logger.Warn("MCP submit_answer: input rejected", "err", err)
		return domain.Value{}, fmt.Errorf("input rejected: %w", err)
	}
	if err := runner.CheckOptions(q, value); err != nil {
		return domain.Value{}, err
	}
	return value, nil
}

func (s *Server) handleGoBack(ctx context.Context, request mcp.CallToolRequest, _ struct{}) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.session.GoBack(ctx)
	if err != nil {
		return SessionView{}, err
	}
	v := s.view(out.Kind)
	if out.Kind == domain.OutcomeAtStart {
		v.Message = "already at the first question"
	}
	return v, nil
}

func (s *Server) handleRestart(ctx context.Context, request mcp.CallToolRequest, _ struct{}) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.engine.Start(ctx)
	if err != nil {
		return SessionView{}, err
	}
	s.session = session
	return s.view(""), nil
}

// view must be called with s.mu held.
func (s *Server) view(outcome domain.OutcomeKind) SessionView {
	v := SessionView{
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

func (s *Server) mermaid() string {
	s.mu.Lock()
	state := s.session.State()
	s.mu.Unlock()
	return graph.GenerateMermaid(s.questions(), s.catalog.EntryID(), graph.OverlayFor(state))
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

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(catalogURI, "Survey Questions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		doc := struct {
			Entry     int               `json:"entry"`
			Questions []domain.Question `json:"questions"`
		}{Entry: s.catalog.EntryID(), Questions: s.questions()}
		data, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to encode catalog: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: catalogURI, MIMEType: "application/json", Text: string(data)},
		}, nil
	})

	s.mcpServer.AddResource(mcp.NewResource(stateURI, "Current Session State",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		s.mu.Lock()
		state := s.session.State()
		s.mu.Unlock()
		data, err := json.Marshal(state)
		if err != nil {
			return nil, fmt.Errorf("failed to encode state: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: stateURI, MIMEType: "application/json", Text: string(data)},
		}, nil
	})
}
