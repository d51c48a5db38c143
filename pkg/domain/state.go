package domain

// Status is the session lifecycle state.
type Status string

const (
	StatusInProgress Status = "in_progress" // Initial; navigation allowed
	StatusCompleted  Status = "completed"   // Sink state; no further navigation
)

// State represents the current snapshot of a respondent's navigation.
type State struct {
	// CurrentQuestionID is the question being shown.
	CurrentQuestionID int `json:"current_question_id"`

	Status Status `json:"status"`

	// History is the path of visited question ids. It grows on advance and
	// is truncated on back; its last entry is always CurrentQuestionID.
	History []int `json:"history"`

	// Answers survive going back so a revisited question can be pre-filled.
	Answers Answers `json:"answers"`
}

// NewState creates a clean state positioned at the entry question.
func NewState(entryID int) *State {
	return &State{
		CurrentQuestionID: entryID,
		Status:            StatusInProgress,
		History:           []int{entryID},
		Answers:           make(Answers),
	}
}

// Clone returns a deep copy safe for mutation.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	next := *s
	next.History = append([]int(nil), s.History...)
	next.Answers = s.Answers.Clone()
	return &next
}

// Initialized reports whether the state points at a question.
func (s *State) Initialized() bool {
	return s != nil && s.CurrentQuestionID > 0 && len(s.History) > 0
}
