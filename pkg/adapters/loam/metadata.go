package loam

import "github.com/aretw0/survey/pkg/domain"

// QuestionMetadata represents the frontmatter of a question document.
// The document body is the prompt unless Prompt is set.
//
// ID and Next are left untyped: strict Loam returns json.Number, plain YAML
// returns int, and Next may be a number, a map or absent.
type QuestionMetadata struct {
	ID      any             `json:"id" mapstructure:"id"`
	Kind    string          `json:"kind" mapstructure:"kind"`
	Prompt  string          `json:"prompt" mapstructure:"prompt"`
	Options []domain.Option `json:"options" mapstructure:"options"`
	Next    any             `json:"next" mapstructure:"next"`

	// Entry marks the first question. Without it the lowest id is the entry.
	Entry bool `json:"entry" mapstructure:"entry"`
}
