package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/aretw0/survey/pkg/domain"
)

// Encode serializes submissions as a JSON array of answer arrays:
//
//	[[{"questionId":1,"answer":"A"},{"questionId":4,"answer":["B","A"]}]]
func Encode(subs []domain.Submission) ([]byte, error) {
	if subs == nil {
		subs = []domain.Submission{}
	}
	data, err := json.Marshal(subs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode submissions: %w", err)
	}
	return data, nil
}

// Decode parses a blob written by Encode. Empty input and JSON null decode to
// no submissions. A blob that was stored as a JSON string holding the array
// is unwrapped first.
func Decode(data []byte) ([]domain.Submission, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, fmt.Errorf("failed to decode submissions: %w", err)
		}
		return Decode([]byte(inner))
	}
	var subs []domain.Submission
	if err := json.Unmarshal(data, &subs); err != nil {
		return nil, fmt.Errorf("failed to decode submissions: %w", err)
	}
	return subs, nil
}
