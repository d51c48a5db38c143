package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// RouteKind tags which variant a Route holds.
type RouteKind int

const (
	// RouteTerminal means the question ends the session.
	RouteTerminal RouteKind = iota
	// RouteFixed always leads to the same question.
	RouteFixed
	// RouteByAnswer picks the next question from the answer's option value.
	// For multi choice answers only the first selected option is used.
	RouteByAnswer
)

func (k RouteKind) String() string {
	switch k {
	case RouteFixed:
		return "fixed"
	case RouteByAnswer:
		return "by_answer"
	default:
		return "terminal"
	}
}

// Route defines where a question leads once answered.
// The zero value is a terminal route.
type Route struct {
	kind  RouteKind
	next  int
	byKey map[string]int
}

// FixedRoute leads to id regardless of the answer.
func FixedRoute(id int) Route {
	return Route{kind: RouteFixed, next: id}
}

// AnswerRoute leads to targets[optionValue].
func AnswerRoute(targets map[string]int) Route {
	cp := make(map[string]int, len(targets))
	for k, v := range targets {
		cp[k] = v
	}
	return Route{kind: RouteByAnswer, byKey: cp}
}

// TerminalRoute ends the session.
func TerminalRoute() Route {
	return Route{}
}

func (r Route) Kind() RouteKind { return r.kind }

func (r Route) IsTerminal() bool { return r.kind == RouteTerminal }

// Fixed returns the target of a fixed route.
func (r Route) Fixed() (int, bool) {
	if r.kind != RouteFixed {
		return 0, false
	}
	return r.next, true
}

// Lookup resolves an option value on an answer-keyed route.
func (r Route) Lookup(key string) (int, bool) {
	if r.kind != RouteByAnswer {
		return 0, false
	}
	id, ok := r.byKey[key]
	return id, ok
}

// Keys returns the option values of an answer-keyed route, sorted.
func (r Route) Keys() []string {
	keys := make([]string, 0, len(r.byKey))
	for k := range r.byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Targets lists every question id the route can lead to, sorted and deduplicated.
func (r Route) Targets() []int {
	switch r.kind {
	case RouteFixed:
		return []int{r.next}
	case RouteByAnswer:
		seen := make(map[int]bool, len(r.byKey))
		out := make([]int, 0, len(r.byKey))
		for _, id := range r.byKey {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
		sort.Ints(out)
		return out
	}
	return nil
}

func (r Route) clone() Route {
	if r.kind == RouteByAnswer {
		return AnswerRoute(r.byKey)
	}
	return r
}

// MarshalJSON encodes a fixed route as a number, a keyed route as an object
// and a terminal route as null.
func (r Route) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case RouteFixed:
		return json.Marshal(r.next)
	case RouteByAnswer:
		return json.Marshal(r.byKey)
	}
	return []byte("null"), nil
}

func (r *Route) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = TerminalRoute()
		return nil
	}
	if data[0] == '{' {
		var m map[string]int
		if err := json.Unmarshal(data, &m); err != nil {
			return fmt.Errorf("invalid keyed route: %w", err)
		}
		*r = AnswerRoute(m)
		return nil
	}
	var id int
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("invalid fixed route: %w", err)
	}
	*r = FixedRoute(id)
	return nil
}
