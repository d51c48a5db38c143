package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/survey/pkg/domain"
)

// AuditHooks logs every lifecycle event. Answer values are not logged, only
// their size, since they may carry personal data.
func AuditHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnQuestionEnter: func(ctx context.Context, e *domain.QuestionEvent) {
			logger.DebugContext(ctx, "question_enter", "question", e.QuestionID, "kind", e.Kind)
		},
		OnQuestionLeave: func(ctx context.Context, e *domain.QuestionEvent) {
			logger.DebugContext(ctx, "question_leave", "question", e.QuestionID)
		},
		OnAnswer: func(ctx context.Context, e *domain.AnswerEvent) {
			logger.InfoContext(ctx, "answer", "question", e.QuestionID, "tokens", e.Value.Len(), "replaced", e.Replaced)
		},
		OnBack: func(ctx context.Context, e *domain.QuestionEvent) {
			logger.InfoContext(ctx, "back", "question", e.QuestionID)
		},
		OnComplete: func(ctx context.Context, e *domain.CompleteEvent) {
			if e.PersistErr != nil {
				logger.WarnContext(ctx, "complete", "submission", e.SubmissionID, "answers", e.Answers, "err", e.PersistErr)
				return
			}
			logger.InfoContext(ctx, "complete", "submission", e.SubmissionID, "answers", e.Answers)
		},
	}
}

// Combine merges hook sets; each callback runs in argument order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		out.OnQuestionEnter = chain(out.OnQuestionEnter, h.OnQuestionEnter)
		out.OnQuestionLeave = chain(out.OnQuestionLeave, h.OnQuestionLeave)
		out.OnAnswer = chain(out.OnAnswer, h.OnAnswer)
		out.OnBack = chain(out.OnBack, h.OnBack)
		out.OnComplete = chain(out.OnComplete, h.OnComplete)
	}
	return out
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
