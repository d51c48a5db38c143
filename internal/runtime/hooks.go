package runtime

import (
	"context"

	"github.com/aretw0/survey/pkg/domain"
)

func (e *Engine) questionEvent(t domain.EventType, q domain.Question) *domain.QuestionEvent {
	return &domain.QuestionEvent{
		EventBase:  domain.EventBase{Timestamp: e.now(), Type: t},
		QuestionID: q.ID,
		Kind:       q.Kind,
	}
}

func (e *Engine) emitEnter(ctx context.Context, q domain.Question) {
	if e.hooks.OnQuestionEnter != nil {
		e.hooks.OnQuestionEnter(ctx, e.questionEvent(domain.EventQuestionEnter, q))
	}
}

func (e *Engine) emitLeave(ctx context.Context, q domain.Question) {
	if e.hooks.OnQuestionLeave != nil {
		e.hooks.OnQuestionLeave(ctx, e.questionEvent(domain.EventQuestionLeave, q))
	}
}

func (e *Engine) emitBack(ctx context.Context, q domain.Question) {
	if e.hooks.OnBack != nil {
		e.hooks.OnBack(ctx, e.questionEvent(domain.EventBack, q))
	}
}

func (e *Engine) emitAnswer(ctx context.Context, id int, v domain.Value, replaced bool) {
	if e.hooks.OnAnswer != nil {
		e.hooks.OnAnswer(ctx, &domain.AnswerEvent{
			EventBase:  domain.EventBase{Timestamp: e.now(), Type: domain.EventAnswer},
			QuestionID: id,
			Value:      v,
			Replaced:   replaced,
		})
	}
}
