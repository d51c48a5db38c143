package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/survey/pkg/domain"
	"github.com/aretw0/survey/pkg/persistence"
	"github.com/aretw0/survey/pkg/ports"
)

// Mask replaces every redacted match.
const Mask = "***"

type redactMiddleware struct {
	next     ports.BlobStore
	patterns []*regexp.Regexp
}

// NewRedactMiddleware masks parts of answer values matching any pattern
// before the blob leaves the process. Typical patterns catch e-mail addresses
// or phone numbers typed into free text questions.
func NewRedactMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redaction pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.BlobStore) ports.BlobStore {
		return &redactMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *redactMiddleware) Get(ctx context.Context) ([]byte, error) {
	return m.next.Get(ctx)
}

func (m *redactMiddleware) Put(ctx context.Context, data []byte) error {
	subs, err := persistence.Decode(data)
	if err != nil {
		return err
	}
	for i := range subs {
		for j, a := range subs[i].Answers {
			subs[i].Answers[j].Value = m.mask(a.Value)
		}
	}
	masked, err := persistence.Encode(subs)
	if err != nil {
		return err
	}
	return m.next.Put(ctx, masked)
}

func (m *redactMiddleware) mask(v domain.Value) domain.Value {
	tokens := v.Tokens()
	for i, tok := range tokens {
		for _, p := range m.patterns {
			tok = p.ReplaceAllString(tok, Mask)
		}
		tokens[i] = tok
	}
	if v.IsMulti() {
		return domain.Multi(tokens...)
	}
	if len(tokens) == 0 {
		return v
	}
	return domain.Single(tokens[0])
}
