package domain

// OutcomeKind tags the result of a navigation operation.
type OutcomeKind string

const (
	OutcomeAdvanced  OutcomeKind = "advanced"
	OutcomeAtStart   OutcomeKind = "at_start"
	OutcomeCompleted OutcomeKind = "completed"
)

// Outcome is what RecordAndAdvance and GoBack report back to the presentation layer.
type Outcome struct {
	Kind OutcomeKind

	// Question is the question now current (Advanced, AtStart).
	Question *Question

	// Submission is set on Completed.
	Submission *Submission

	// PersistErr is set on Completed when the submission could not be
	// stored. Completion still stands; the error is a warning.
	PersistErr error
}

// Advanced builds an Advanced outcome.
func Advanced(q Question) Outcome {
	return Outcome{Kind: OutcomeAdvanced, Question: &q}
}

// AtStart builds the no-op outcome of going back from the entry question.
func AtStart(q Question) Outcome {
	return Outcome{Kind: OutcomeAtStart, Question: &q}
}

// Completed builds a Completed outcome.
func Completed(s Submission) Outcome {
	return Outcome{Kind: OutcomeCompleted, Submission: &s}
}
