// Package catalog provides the immutable question catalog and its loaders.
package catalog

import (
	"fmt"

	"github.com/aretw0/survey/pkg/domain"
)

// Catalog implements ports.CatalogLister over an in-memory index.
// It is safe for concurrent reads and never mutated after New.
type Catalog struct {
	entry int
	order []int
	byID  map[int]domain.Question
}

// New builds a catalog from questions in declaration order.
// It checks each question on its own; cross-question integrity (dangling
// routes, reachability) is the validator's job.
func New(entryID int, questions ...domain.Question) (*Catalog, error) {
	c := &Catalog{
		entry: entryID,
		order: make([]int, 0, len(questions)),
		byID:  make(map[int]domain.Question, len(questions)),
	}
	for _, q := range questions {
		if err := checkQuestion(q); err != nil {
			return nil, err
		}
		if _, dup := c.byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %d", q.ID)
		}
		c.byID[q.ID] = q.Clone()
		c.order = append(c.order, q.ID)
	}
	if _, ok := c.byID[entryID]; !ok {
		return nil, fmt.Errorf("entry question %d: %w", entryID, domain.ErrNotFound)
	}
	return c, nil
}

// MustNew is like New but panics on error. Intended for tests and static catalogs.
func MustNew(entryID int, questions ...domain.Question) *Catalog {
	c, err := New(entryID, questions...)
	if err != nil {
		panic(err)
	}
	return c
}

func checkQuestion(q domain.Question) error {
	if q.ID <= 0 {
		return fmt.Errorf("question id must be positive, got %d", q.ID)
	}
	switch q.Kind {
	case domain.KindSingleChoice, domain.KindMultiChoice:
		if len(q.Options) == 0 {
			return fmt.Errorf("question %d: %s requires options", q.ID, q.Kind)
		}
		seen := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			if o.Value == "" {
				return fmt.Errorf("question %d: option %q has an empty value", q.ID, o.Label)
			}
			if seen[o.Value] {
				return fmt.Errorf("question %d: duplicate option value %q", q.ID, o.Value)
			}
			seen[o.Value] = true
		}
	case domain.KindShortText, domain.KindLongText:
		if len(q.Options) > 0 {
			return fmt.Errorf("question %d: %s does not take options", q.ID, q.Kind)
		}
		if q.Route.Kind() == domain.RouteByAnswer {
			return fmt.Errorf("question %d: answer-keyed routing needs a choice question", q.ID)
		}
	default:
		return fmt.Errorf("question %d: unknown kind %q", q.ID, q.Kind)
	}
	for _, target := range q.Route.Targets() {
		if target <= 0 {
			return fmt.Errorf("question %d: route target must be positive, got %d", q.ID, target)
		}
	}
	return nil
}

// Get returns a copy of the question with the given id.
func (c *Catalog) Get(id int) (domain.Question, error) {
	q, ok := c.byID[id]
	if !ok {
		return domain.Question{}, fmt.Errorf("question %d: %w", id, domain.ErrNotFound)
	}
	return q.Clone(), nil
}

// EntryID returns the first question shown.
func (c *Catalog) EntryID() int {
	return c.entry
}

// IDs returns the question ids in declaration order.
func (c *Catalog) IDs() []int {
	return append([]int(nil), c.order...)
}

// Questions returns copies of all questions in declaration order.
func (c *Catalog) Questions() []domain.Question {
	out := make([]domain.Question, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id].Clone())
	}
	return out
}

// Len is the number of questions.
func (c *Catalog) Len() int {
	return len(c.order)
}
