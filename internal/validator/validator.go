package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/survey/pkg/domain"
	"github.com/aretw0/survey/pkg/ports"
)

// Validate crawls the catalog from its entry question and reports every
// authoring defect the engine would otherwise only discover at runtime:
// routes to missing questions, answer-keyed routes that do not match the
// options, unreachable questions and questions from which no terminal
// question can be reached.
func Validate(cat ports.CatalogLister) error {
	var problems []string
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	questions := make(map[int]domain.Question)
	for _, id := range cat.IDs() {
		q, err := cat.Get(id)
		if err != nil {
			report("Question %d is listed but cannot be loaded: %v", id, err)
			continue
		}
		questions[id] = q
	}

	entry := cat.EntryID()
	if _, ok := questions[entry]; !ok {
		report("Entry question %d not found", entry)
		return combine(problems)
	}

	// 1. Crawler
	visited := make(map[int]bool)
	queue := []int{entry}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true
		q := questions[id]

		checkRouteKeys(q, report)

		for _, target := range q.Route.Targets() {
			if _, ok := questions[target]; !ok {
				report("Missing question %d (routed from question %d)", target, id)
				continue
			}
			if !visited[target] {
				queue = append(queue, target)
			}
		}
	}

	// 2. Unreachable questions
	for _, id := range cat.IDs() {
		if _, ok := questions[id]; ok && !visited[id] {
			report("Question %d is unreachable from entry question %d", id, entry)
		}
	}

	// 3. Every reachable question must be able to finish the survey.
	finishes := canFinish(questions)
	for _, id := range cat.IDs() {
		if visited[id] && !finishes[id] {
			report("Question %d cannot reach a terminal question", id)
		}
	}

	return combine(problems)
}

func checkRouteKeys(q domain.Question, report func(string, ...any)) {
	if q.Route.Kind() != domain.RouteByAnswer {
		return
	}
	for _, key := range q.Route.Keys() {
		if !q.HasOption(key) {
			report("Question %d routes on %q which is not one of its options", q.ID, key)
		}
	}
	for _, o := range q.Options {
		if _, ok := q.Route.Lookup(o.Value); !ok {
			report("Option %q of question %d has no route", o.Value, q.ID)
		}
	}
}

// canFinish marks questions from which some route reaches a terminal
// question, by fixed-point propagation backwards along the edges.
func canFinish(questions map[int]domain.Question) map[int]bool {
	ok := make(map[int]bool, len(questions))
	for id, q := range questions {
		if q.IsTerminal() {
			ok[id] = true
		}
	}
	for changed := true; changed; {
		changed = false
		for id, q := range questions {
			if ok[id] {
				continue
			}
			for _, t := range q.Route.Targets() {
				if ok[t] {
					ok[id] = true
					changed = true
					break
				}
			}
		}
	}
	return ok
}

func combine(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("found %d errors:\n- %s", len(problems), strings.Join(problems, "\n- "))
}
