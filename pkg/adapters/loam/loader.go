// Package loam loads a question catalog from a directory of documents, one
// question per file, using the Loam document repository.
//
// A question file looks like:
//
//	---
//	id: 3
//	kind: single_choice
//	options:
//	  - { label: Yes, value: A }
//	  - { label: No, value: B }
//	next: { A: 4, B: 7 }
//	---
//	Do you agree?
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/survey/pkg/catalog"
	"github.com/aretw0/survey/pkg/domain"
)

// Loader adapts a Loam repository to a question catalog.
type Loader struct {
	Repo *loam.TypedRepository[QuestionMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[QuestionMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numbers as json.Number across JSON and YAML documents.
	// ReadOnly avoids Loam's sandbox behavior; the catalog is never written.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[QuestionMetadata](repo)), nil
}

// Load opens dir and builds the catalog in one step.
func Load(ctx context.Context, dir string) (*catalog.Catalog, error) {
	l, err := Open(dir)
	if err != nil {
		return nil, err
	}
	return l.Catalog(ctx)
}

// Catalog reads every document and builds an immutable catalog.
func (l *Loader) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[int]string)
	questions := make([]domain.Question, 0, len(docs))
	entry := 0

	for _, doc := range docs {
		q, err := toQuestion(doc.ID, doc.Data, doc.Content)
		if err != nil {
			return nil, err
		}

		// Collision Detection
		if existing, ok := seen[q.ID]; ok {
			return nil, fmt.Errorf("collision detected: question %d is defined in both '%s' and '%s'", q.ID, existing, doc.ID)
		}
		seen[q.ID] = doc.ID

		if doc.Data.Entry {
			if entry != 0 {
				return nil, fmt.Errorf("more than one entry question: %d and %d", entry, q.ID)
			}
			entry = q.ID
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("no question documents found")
	}

	// Directory listing order is not meaningful, order by id instead
	sort.Slice(questions, func(i, j int) bool { return questions[i].ID < questions[j].ID })
	if entry == 0 {
		entry = questions[0].ID
	}
	return catalog.New(entry, questions...)
}

func toQuestion(docID string, meta QuestionMetadata, content string) (domain.Question, error) {
	rawID := meta.ID
	if rawID == nil || rawID == "" {
		// Fall back to the file name: 03.md -> 3
		rawID = trimExtension(filepath.Base(docID))
	}
	id, err := catalog.ToInt(rawID)
	if err != nil {
		return domain.Question{}, fmt.Errorf("%s: invalid question id: %w", docID, err)
	}

	kind, err := domain.ParseKind(meta.Kind)
	if err != nil {
		return domain.Question{}, fmt.Errorf("%s: %w", docID, err)
	}

	route, err := catalog.RouteFromValue(meta.Next)
	if err != nil {
		return domain.Question{}, fmt.Errorf("%s: %w", docID, err)
	}

	prompt := strings.TrimSpace(meta.Prompt)
	if prompt == "" {
		prompt = strings.TrimSpace(content)
	}

	return domain.Question{
		ID:      id,
		Prompt:  prompt,
		Kind:    kind,
		Options: meta.Options,
		Route:   route,
	}, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
