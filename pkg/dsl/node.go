package dsl

import "github.com/aretw0/survey/pkg/domain"

// QuestionBuilder provides a fluent API for configuring a question.
type QuestionBuilder struct {
	question domain.Question
	branches map[string]int
	builder  *Builder
}

func (q *QuestionBuilder) prompt(kind domain.Kind, text string) *QuestionBuilder {
	q.question.Kind = kind
	q.question.Prompt = text
	return q
}

// SingleChoice makes the question pick exactly one option.
func (q *QuestionBuilder) SingleChoice(prompt string) *QuestionBuilder {
	return q.prompt(domain.KindSingleChoice, prompt)
}

// MultiChoice makes the question pick one or more options.
func (q *QuestionBuilder) MultiChoice(prompt string) *QuestionBuilder {
	return q.prompt(domain.KindMultiChoice, prompt)
}

// ShortText makes the question take a one-line free text answer.
func (q *QuestionBuilder) ShortText(prompt string) *QuestionBuilder {
	return q.prompt(domain.KindShortText, prompt)
}

// LongText makes the question take a free text answer that may span lines.
func (q *QuestionBuilder) LongText(prompt string) *QuestionBuilder {
	return q.prompt(domain.KindLongText, prompt)
}

// Option appends a selectable option. An empty label shows the value.
func (q *QuestionBuilder) Option(value, label string) *QuestionBuilder {
	if label == "" {
		label = value
	}
	q.question.Options = append(q.question.Options, domain.Option{Label: label, Value: value})
	return q
}

// Go leads to target regardless of the answer. It replaces any branches.
func (q *QuestionBuilder) Go(target int) *QuestionBuilder {
	q.branches = nil
	q.question.Route = domain.FixedRoute(target)
	return q
}

// Branch leads to target when the (first) selected option is value.
func (q *QuestionBuilder) Branch(value string, target int) *QuestionBuilder {
	if q.branches == nil {
		q.branches = make(map[string]int)
	}
	q.branches[value] = target
	q.question.Route = domain.AnswerRoute(q.branches)
	return q
}

// Terminal marks the question as the end of the session.
func (q *QuestionBuilder) Terminal() *QuestionBuilder {
	q.branches = nil
	q.question.Route = domain.TerminalRoute()
	return q
}

// Then returns to the catalog builder to chain the next question.
func (q *QuestionBuilder) Then() *Builder {
	return q.builder
}

// Build returns the underlying domain.Question.
// This is primarily used by the Builder, but exposed for advanced usage.
func (q *QuestionBuilder) Build() domain.Question {
	return q.question.Clone()
}
