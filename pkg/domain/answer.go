package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Value is an answer value: a single token (single choice, text kinds) or an
// ordered selection of tokens (multi choice). Selection order is preserved.
type Value struct {
	tokens []string
	multi  bool
}

// Single builds a single-token value.
func Single(s string) Value {
	return Value{tokens: []string{s}}
}

// Multi builds a selection value, keeping the given order.
func Multi(tokens ...string) Value {
	return Value{tokens: append([]string{}, tokens...), multi: true}
}

func (v Value) IsMulti() bool { return v.multi }

// Tokens returns a copy of the underlying tokens.
func (v Value) Tokens() []string {
	return append([]string(nil), v.tokens...)
}

// Len is the number of tokens.
func (v Value) Len() int { return len(v.tokens) }

// First returns the first token, which is the routing key for selections.
func (v Value) First() (string, bool) {
	if len(v.tokens) == 0 {
		return "", false
	}
	return v.tokens[0], true
}

// IsZero reports whether no value was ever set.
func (v Value) IsZero() bool {
	return v.tokens == nil && !v.multi
}

// Equal compares kind and tokens in order.
func (v Value) Equal(o Value) bool {
	if v.multi != o.multi || len(v.tokens) != len(o.tokens) {
		return false
	}
	for i := range v.tokens {
		if v.tokens[i] != o.tokens[i] {
			return false
		}
	}
	return true
}

func (v Value) String() string {
	if v.multi {
		return "[" + strings.Join(v.tokens, ", ") + "]"
	}
	if len(v.tokens) == 0 {
		return ""
	}
	return v.tokens[0]
}

// MarshalJSON encodes a single value as a string and a selection as an array.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.multi {
		if v.tokens == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.tokens)
	}
	if len(v.tokens) == 0 {
		return []byte(`""`), nil
	}
	return json.Marshal(v.tokens[0])
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var tokens []string
		if err := json.Unmarshal(data, &tokens); err != nil {
			return fmt.Errorf("invalid answer selection: %w", err)
		}
		*v = Multi(tokens...)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid answer value: %w", err)
	}
	*v = Single(s)
	return nil
}

// Answer is the value recorded for one question.
type Answer struct {
	QuestionID int   `json:"questionId"`
	Value      Value `json:"answer"`
}

// Answers is the answer store: at most one value per question id.
// Put replaces any prior value for the same id.
type Answers map[int]Value

// Put upserts the value for id.
func (a Answers) Put(id int, v Value) {
	a[id] = v
}

// Get returns the value for id, if any.
func (a Answers) Get(id int) (Value, bool) {
	v, ok := a[id]
	return v, ok
}

// AllOrderedBy projects the stored answers in the order given by ids.
// Ids without an answer are skipped and repeated ids appear once, at their
// first position.
func (a Answers) AllOrderedBy(ids []int) []Answer {
	out := make([]Answer, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if v, ok := a[id]; ok {
			out = append(out, Answer{QuestionID: id, Value: v})
		}
	}
	return out
}

// Clone copies the store. Values are immutable so a shallow copy is enough.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
