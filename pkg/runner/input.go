package runner

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/survey/pkg/domain"
)

// ParseLine interprets one line typed for question q.
//
//   - "back" or "b" goes back, "quit" or "exit" abandons.
//   - An empty line keeps the prior answer, if hasPrior.
//   - Choice questions accept an option value (case-insensitive) or its
//     1-based position; multi choice answers are separated by commas or spaces.
//     An option value wins over a navigation word, so an option "B" is
//     selected, not "back".
//   - Text questions take the line as is.
//   - A line wrapped in double quotes is a JSON string and always an answer,
//     so "exit" (with the quotes) records the word exit.
func ParseLine(q domain.Question, line string, hasPrior bool) (Command, error) {
	text := strings.TrimSpace(line)
	if literal, ok := quoted(text); ok {
		text = literal
	} else if !matchesOption(q, text) {
		switch strings.ToLower(text) {
		case "back", "b":
			return Command{Kind: CommandBack}, nil
		case "quit", "exit":
			return Command{Kind: CommandQuit}, nil
		case "":
			if hasPrior {
				return Command{Kind: CommandKeep}, nil
			}
		}
	}

	switch q.Kind {
	case domain.KindMultiChoice:
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == ';'
		})
		tokens := make([]string, 0, len(fields))
		for _, f := range fields {
			v, err := resolveOption(q, f)
			if err != nil {
				return Command{}, err
			}
			tokens = append(tokens, v)
		}
		return Command{Kind: CommandAnswer, Value: domain.Multi(tokens...)}, nil

	case domain.KindSingleChoice:
		if text == "" {
			return Command{Kind: CommandAnswer, Value: domain.Single("")}, nil
		}
		v, err := resolveOption(q, text)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandAnswer, Value: domain.Single(v)}, nil
	}
	return Command{Kind: CommandAnswer, Value: domain.Single(text)}, nil
}

func quoted(text string) (string, bool) {
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return "", false
	}
	return s, true
}

func matchesOption(q domain.Question, text string) bool {
	for _, o := range q.Options {
		if strings.EqualFold(o.Value, text) {
			return true
		}
	}
	return false
}

// resolveOption maps typed text to an option value.
func resolveOption(q domain.Question, text string) (string, error) {
	for _, o := range q.Options {
		if strings.EqualFold(o.Value, text) {
			return o.Value, nil
		}
	}
	if n, err := strconv.Atoi(text); err == nil {
		if n < 1 || n > len(q.Options) {
			return "", fmt.Errorf("choose a number between 1 and %d", len(q.Options))
		}
		return q.Options[n-1].Value, nil
	}
	return "", fmt.Errorf("unknown option %q", text)
}

// CheckOptions rejects selections naming options q does not offer. The
// engine accepts any single choice token, so the presentation layer checks
// membership before an unknown token turns into a routing failure.
func CheckOptions(q domain.Question, v domain.Value) error {
	if !q.Kind.IsChoice() {
		return nil
	}
	for _, tok := range v.Tokens() {
		if tok != "" && !q.HasOption(tok) {
			return fmt.Errorf("unknown option %q", tok)
		}
	}
	return nil
}

// Coerce adapts a value to the shape q expects: a single token becomes a
// one-element selection on multi choice questions and a one-element selection
// becomes a single token elsewhere. Other shapes are left to the engine.
func Coerce(q domain.Question, v domain.Value) domain.Value {
	if q.Kind == domain.KindMultiChoice && !v.IsMulti() {
		if tok, ok := v.First(); ok && tok != "" {
			return domain.Multi(tok)
		}
		return domain.Multi()
	}
	if q.Kind != domain.KindMultiChoice && v.IsMulti() && v.Len() == 1 {
		tok, _ := v.First()
		return domain.Single(tok)
	}
	return v
}

// Sanitize applies SanitizeInputLimit to every token of v.
func Sanitize(v domain.Value, limit int) (domain.Value, error) {
	tokens := v.Tokens()
	for i, tok := range tokens {
		clean, err := SanitizeInputLimit(tok, limit)
		if err != nil {
			return domain.Value{}, err
		}
		tokens[i] = clean
	}
	if v.IsMulti() {
		return domain.Multi(tokens...), nil
	}
	if len(tokens) == 0 {
		return v, nil
	}
	return domain.Single(tokens[0]), nil
}
