package domain

import (
	"fmt"
	"strings"
)

// Kind defines the input control a question expects.
type Kind string

const (
	KindSingleChoice Kind = "single_choice"
	KindMultiChoice  Kind = "multi_choice"
	KindShortText    Kind = "short_text"
	KindLongText     Kind = "long_text"
)

// ParseKind accepts the canonical kind names and the form-control aliases
// (radio, checkbox, text, textarea) used by older catalogs.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(KindSingleChoice), "radio", "single":
		return KindSingleChoice, nil
	case string(KindMultiChoice), "checkbox", "multi":
		return KindMultiChoice, nil
	case string(KindShortText), "text":
		return KindShortText, nil
	case string(KindLongText), "textarea":
		return KindLongText, nil
	}
	return "", fmt.Errorf("unknown question kind %q", s)
}

// IsChoice reports whether the kind selects from a fixed option list.
func (k Kind) IsChoice() bool {
	return k == KindSingleChoice || k == KindMultiChoice
}

// Option is a selectable choice. Value is the token stored in answers and
// used as routing key; it is unique within its question.
type Option struct {
	Label string `json:"label" yaml:"label" mapstructure:"label"`
	Value string `json:"value" yaml:"value" mapstructure:"value"`
}

// Question represents a node in the navigation graph.
type Question struct {
	ID      int      `json:"id"`
	Prompt  string   `json:"prompt"`
	Kind    Kind     `json:"kind"`
	Options []Option `json:"options,omitempty"`
	Route   Route    `json:"next"`
}

// IsTerminal is true iff the question has no outgoing route.
func (q Question) IsTerminal() bool {
	return q.Route.IsTerminal()
}

// HasOption reports whether value is one of the question's option values.
func (q Question) HasOption(value string) bool {
	_, ok := q.Option(value)
	return ok
}

// Option looks up an option by value.
func (q Question) Option(value string) (Option, bool) {
	for _, o := range q.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// Clone returns a copy that shares no mutable memory with q.
func (q Question) Clone() Question {
	out := q
	if q.Options != nil {
		out.Options = append([]Option(nil), q.Options...)
	}
	out.Route = q.Route.clone()
	return out
}
