package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventQuestionEnter EventType = "question_enter"
	EventQuestionLeave EventType = "question_leave"
	EventAnswer        EventType = "answer"
	EventBack          EventType = "back"
	EventComplete      EventType = "complete"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// QuestionEvent represents entry into or exit from a question.
type QuestionEvent struct {
	EventBase
	QuestionID int  `json:"question_id"`
	Kind       Kind `json:"kind"`
}

// AnswerEvent is emitted after an answer was accepted.
type AnswerEvent struct {
	EventBase
	QuestionID int   `json:"question_id"`
	Value      Value `json:"value"`
	Replaced   bool  `json:"replaced,omitempty"`
}

// CompleteEvent is emitted once a submission was produced and its
// persistence attempted.
type CompleteEvent struct {
	EventBase
	SubmissionID string `json:"submission_id"`
	Answers      int    `json:"answers"`
	PersistErr   error  `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnQuestionEnter func(context.Context, *QuestionEvent)
	OnQuestionLeave func(context.Context, *QuestionEvent)
	OnAnswer        func(context.Context, *AnswerEvent)
	OnBack          func(context.Context, *QuestionEvent)
	OnComplete      func(context.Context, *CompleteEvent)
}
