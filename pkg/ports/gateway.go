package ports

import (
	"context"

	"github.com/aretw0/survey/pkg/domain"
)

// SubmissionGateway is the persistence collaborator of a session.
type SubmissionGateway interface {
	// FetchPriorSubmissions returns what the remote store already holds.
	// Callers treat an error as "no prior submissions".
	FetchPriorSubmissions(ctx context.Context) ([]domain.Submission, error)

	// AppendSubmission stores s after the prior submissions.
	// It is called at most once per completion.
	AppendSubmission(ctx context.Context, s domain.Submission) error
}

// BlobStore holds a single opaque value.
type BlobStore interface {
	// Get returns the stored value, or nil with no error if nothing is stored yet.
	Get(ctx context.Context) ([]byte, error)

	// Put replaces the stored value.
	Put(ctx context.Context, data []byte) error
}
