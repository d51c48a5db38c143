package ports

import "github.com/aretw0/survey/pkg/domain"

// Catalog is the static question set. It is immutable once loaded.
type Catalog interface {
	// Get returns the question with the given id.
	// It returns an error wrapping domain.ErrNotFound if the id is absent.
	Get(id int) (domain.Question, error)

	// EntryID is the id of the first question shown.
	EntryID() int
}

// CatalogLister is a Catalog that can also enumerate its questions.
// The engine never needs it; validation and visualization tools do.
type CatalogLister interface {
	Catalog

	// IDs returns every question id in declaration order.
	IDs() []int
}
