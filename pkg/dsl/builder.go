package dsl

import (
	"fmt"

	"github.com/aretw0/survey/pkg/catalog"
	"github.com/aretw0/survey/pkg/domain"
)

// Builder manages the catalog construction.
type Builder struct {
	entry int
	order []int
	nodes map[int]*QuestionBuilder
}

// New creates a new catalog builder.
func New() *Builder {
	return &Builder{
		nodes: make(map[int]*QuestionBuilder),
	}
}

// Entry sets the first question of every session.
func (b *Builder) Entry(id int) *Builder {
	b.entry = id
	return b
}

// Add creates a new question in the catalog.
// If the question already exists, it returns the existing builder.
func (b *Builder) Add(id int) *QuestionBuilder {
	if qb, ok := b.nodes[id]; ok {
		return qb
	}
	qb := &QuestionBuilder{
		question: domain.Question{ID: id},
		builder:  b,
	}
	b.nodes[id] = qb
	b.order = append(b.order, id)
	return qb
}

// Build compiles the questions, in the order they were added, into a catalog.
func (b *Builder) Build() (*catalog.Catalog, error) {
	if len(b.order) == 0 {
		return nil, fmt.Errorf("catalog has no questions")
	}
	entry := b.entry
	if entry == 0 {
		entry = b.order[0]
	}

	questions := make([]domain.Question, 0, len(b.order))
	for _, id := range b.order {
		questions = append(questions, b.nodes[id].Build())
	}

	cat, err := catalog.New(entry, questions...)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}
	return cat, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *catalog.Catalog {
	cat, err := b.Build()
	if err != nil {
		panic(err)
	}
	return cat
}
