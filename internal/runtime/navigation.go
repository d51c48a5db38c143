package runtime

import (
	"errors"

	"github.com/aretw0/survey/pkg/domain"
)

// resolveNext picks the next question from the route and the validated answer.
func (e *Engine) resolveNext(q domain.Question, value domain.Value) (domain.Question, error) {
	var target int
	var key string

	switch q.Route.Kind() {
	case domain.RouteFixed:
		target, _ = q.Route.Fixed()

	case domain.RouteByAnswer:
		// Selections route by their first element only.
		first, ok := value.First()
		if !ok {
			return domain.Question{}, &domain.RoutingError{QuestionID: q.ID, Reason: "no answer to route by"}
		}
		key = first
		target, ok = q.Route.Lookup(key)
		if !ok {
			return domain.Question{}, &domain.RoutingError{QuestionID: q.ID, Key: key, Reason: "no route for answer"}
		}

	default:
		return domain.Question{}, &domain.RoutingError{QuestionID: q.ID, Reason: "question is terminal"}
	}

	next, err := e.catalog.Get(target)
	if err != nil {
		reason := err.Error()
		if errors.Is(err, domain.ErrNotFound) {
			reason = "target is not in the catalog"
		}
		return domain.Question{}, &domain.RoutingError{QuestionID: q.ID, Key: key, Target: target, Reason: reason}
	}
	return next, nil
}
