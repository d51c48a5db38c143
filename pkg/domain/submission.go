package domain

import (
	"encoding/json"
	"fmt"
)

// Submission is the ordered answer set emitted when a terminal question is
// answered. It is encoded as a bare JSON array of answers.
type Submission struct {
	// ID correlates the submission in logs and events. It is not persisted.
	ID      string   `json:"-"`
	Answers []Answer `json:"answers"`
}

func (s Submission) MarshalJSON() ([]byte, error) {
	if s.Answers == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.Answers)
}

func (s *Submission) UnmarshalJSON(data []byte) error {
	var answers []Answer
	if err := json.Unmarshal(data, &answers); err != nil {
		return fmt.Errorf("invalid submission: %w", err)
	}
	s.Answers = answers
	return nil
}
