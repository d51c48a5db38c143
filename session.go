package survey

import (
	"context"
	"time"

	"github.com/aretw0/survey/pkg/domain"
	"github.com/google/uuid"
)

// Session walks one respondent through the catalog.
//
// A Session is not safe for concurrent use. Callers issue one operation at a
// time, the way a respondent does.
type Session struct {
	engine     *Engine
	state      *domain.State
	prior      []domain.Submission
	submission *domain.Submission
	persistErr error
}

// CurrentQuestion returns the question being shown.
func (s *Session) CurrentQuestion() (domain.Question, error) {
	return s.engine.runtime.Current(s.state)
}

// RecordAndAdvance stores value as the answer to the current question and
// moves to the next one. Answering the terminal question completes the
// session and appends the submission through the gateway exactly once.
//
// An invalid answer returns an error wrapping domain.ErrInvalidAnswer and
// leaves the session untouched.
func (s *Session) RecordAndAdvance(ctx context.Context, value domain.Value) (domain.Outcome, error) {
	next, out, err := s.engine.runtime.Navigate(ctx, s.state, value)
	if err != nil {
		return domain.Outcome{}, err
	}
	s.state = next

	switch out.Kind {
	case domain.OutcomeAdvanced:
		s.notifyQuestion(ctx, *out.Question)
	case domain.OutcomeCompleted:
		out = s.complete(ctx, *out.Submission)
	}
	return out, nil
}

func (s *Session) complete(ctx context.Context, sub domain.Submission) domain.Outcome {
	e := s.engine
	sub.ID = uuid.NewString()

	var persistErr error
	if e.gateway != nil {
		// A started append runs to completion even if the caller goes away.
		persistErr = e.gateway.AppendSubmission(context.WithoutCancel(ctx), sub)
		if persistErr != nil {
			e.logger.Warn("submission was not stored", "submission", sub.ID, "err", persistErr)
		}
	}
	s.submission = &sub
	s.persistErr = persistErr
	e.logger.Info("session completed", "submission", sub.ID, "answers", len(sub.Answers))

	if e.hooks.OnComplete != nil {
		e.hooks.OnComplete(ctx, &domain.CompleteEvent{
			EventBase:    domain.EventBase{Timestamp: time.Now(), Type: domain.EventComplete},
			SubmissionID: sub.ID,
			Answers:      len(sub.Answers),
			PersistErr:   persistErr,
		})
	}
	if e.presenter != nil {
		e.presenter.OnCompleted(ctx, sub, persistErr)
	}

	out := domain.Completed(sub)
	out.PersistErr = persistErr
	return out
}

// GoBack returns to the previous question. At the entry question it is a
// no-op reporting domain.OutcomeAtStart.
func (s *Session) GoBack(ctx context.Context) (domain.Outcome, error) {
	next, out, err := s.engine.runtime.Back(ctx, s.state)
	if err != nil {
		return domain.Outcome{}, err
	}
	s.state = next
	if out.Kind == domain.OutcomeAdvanced {
		s.notifyQuestion(ctx, *out.Question)
	}
	return out, nil
}

func (s *Session) notifyQuestion(ctx context.Context, q domain.Question) {
	if s.engine.presenter == nil {
		return
	}
	var prior *domain.Answer
	if a, ok := s.AnswerFor(q.ID); ok {
		prior = &a
	}
	s.engine.presenter.OnQuestionChanged(ctx, q, prior)
}

// AnswerFor returns the stored answer for a question, used to pre-fill it.
func (s *Session) AnswerFor(questionID int) (domain.Answer, bool) {
	return s.engine.runtime.AnswerFor(s.state, questionID)
}

// Status reports whether the session is still in progress.
func (s *Session) Status() domain.Status {
	return s.state.Status
}

// State returns a copy of the navigation state.
func (s *Session) State() *domain.State {
	return s.state.Clone()
}

// Progress estimates how far along the respondent is.
func (s *Session) Progress() Progress {
	return s.engine.runtime.Progress(s.state)
}

// PriorSubmissions returns what the gateway held when the session started.
func (s *Session) PriorSubmissions() []domain.Submission {
	return s.prior
}

// Submission returns the completed submission and the persistence warning,
// or nil before completion.
func (s *Session) Submission() (*domain.Submission, error) {
	return s.submission, s.persistErr
}
