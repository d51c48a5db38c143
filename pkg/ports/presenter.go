package ports

import (
	"context"

	"github.com/aretw0/survey/pkg/domain"
)

// Presenter is the presentation collaborator. It owns rendering, styling and
// progress display; the engine only tells it what changed.
//
// The presenter drives the session in the other direction by calling
// Session.RecordAndAdvance (submit an answer) and Session.GoBack (request the
// previous question).
type Presenter interface {
	// OnQuestionChanged is called whenever a question becomes current.
	// prior is the answer stored for it, if the respondent answered it before.
	OnQuestionChanged(ctx context.Context, q domain.Question, prior *domain.Answer)

	// OnCompleted is called once the terminal question was answered.
	// persistErr is non-nil when the submission could not be stored; the
	// presenter should still show completion and report the warning.
	OnCompleted(ctx context.Context, s domain.Submission, persistErr error)
}
