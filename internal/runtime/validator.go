package runtime

import (
	"strings"

	"github.com/aretw0/survey/pkg/domain"
)

// validateAnswer checks a value against the question kind and returns the
// value to store. Text answers are stored trimmed.
func validateAnswer(q domain.Question, v domain.Value) (domain.Value, error) {
	invalid := func(reason string) (domain.Value, error) {
		return domain.Value{}, &domain.InvalidAnswerError{QuestionID: q.ID, Reason: reason}
	}

	switch q.Kind {
	case domain.KindMultiChoice:
		if !v.IsMulti() {
			return invalid("expected a list of selected options")
		}
		if v.Len() == 0 {
			return invalid("select at least one option")
		}
		seen := make(map[string]bool, v.Len())
		for _, tok := range v.Tokens() {
			if !q.HasOption(tok) {
				return invalid("unknown option " + quote(tok))
			}
			if seen[tok] {
				return invalid("option " + quote(tok) + " selected twice")
			}
			seen[tok] = true
		}
		return v, nil

	case domain.KindSingleChoice:
		if v.IsMulti() {
			return invalid("expected a single option")
		}
		tok, _ := v.First()
		if tok == "" {
			return invalid("an option is required")
		}
		return v, nil

	case domain.KindShortText, domain.KindLongText:
		if v.IsMulti() {
			return invalid("expected text")
		}
		tok, _ := v.First()
		text := strings.TrimSpace(tok)
		if text == "" {
			return invalid("an answer is required")
		}
		return domain.Single(text), nil
	}
	return invalid("unsupported question kind " + quote(string(q.Kind)))
}

func quote(s string) string {
	return `"` + s + `"`
}
