package runtime

import "github.com/aretw0/survey/pkg/domain"

// Progress reports how far a respondent is along the longest path still ahead.
type Progress struct {
	Position int `json:"position"`
	Total    int `json:"total"`
}

// Progress estimates position and total question count for the state.
// Total assumes the longest remaining path, so it can shrink as branches are taken.
func (e *Engine) Progress(state *domain.State) Progress {
	if !state.Initialized() {
		return Progress{}
	}
	pos := len(state.History)
	if state.Status == domain.StatusCompleted {
		return Progress{Position: pos, Total: pos}
	}
	memo := make(map[int]int)
	onPath := make(map[int]bool)
	rest, _ := e.remaining(state.CurrentQuestionID, memo, onPath)
	return Progress{Position: pos, Total: pos + rest}
}

// remaining is the number of questions after id on the longest acyclic path.
// Edges back onto the current path and unknown targets contribute nothing.
// cut reports that an edge was dropped only because of the current path; such
// results depend on how id was reached and are not memoized.
func (e *Engine) remaining(id int, memo map[int]int, onPath map[int]bool) (best int, cut bool) {
	if n, ok := memo[id]; ok {
		return n, false
	}
	q, err := e.catalog.Get(id)
	if err != nil {
		return 0, false
	}
	onPath[id] = true
	for _, t := range q.Route.Targets() {
		if onPath[t] {
			cut = true
			continue
		}
		if _, err := e.catalog.Get(t); err != nil {
			continue
		}
		n, c := e.remaining(t, memo, onPath)
		cut = cut || c
		if n+1 > best {
			best = n + 1
		}
	}
	onPath[id] = false
	if !cut {
		memo[id] = best
	}
	return best, cut
}
