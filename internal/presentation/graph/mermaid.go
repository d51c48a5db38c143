package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/survey/pkg/domain"
)

// maxLabel bounds prompt text shown inside a node.
const maxLabel = 40

// GraphOverlay contains respondent state to visualize on the graph.
type GraphOverlay struct {
	VisitedIDs []int
	CurrentID  int
}

// GenerateMermaid produces a Mermaid flowchart for a question catalog.
// It applies semantic styling:
// - Entry: ((Circle))
// - Terminal: ([Stadium])
// - Choice: [/Parallelogram/]
// - Text: [Rectangle]
// Answer-keyed routes are labelled with the option values that take them.
func GenerateMermaid(questions []domain.Question, entryID int, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, q := range questions {
		id := nodeID(q.ID)

		opener, closer := "[", "]"
		switch {
		case q.ID == entryID:
			opener, closer = "((", "))"
		case q.IsTerminal():
			opener, closer = "([", "])"
		case q.Kind.IsChoice():
			opener, closer = "[/", "/]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, label(q), closer)

		switch q.Route.Kind() {
		case domain.RouteFixed:
			to, _ := q.Route.Fixed()
			fmt.Fprintf(&sb, "    %s --> %s\n", id, nodeID(to))
		case domain.RouteByAnswer:
			// Group option values that share a target into one edge.
			byTarget := make(map[int][]string)
			for _, key := range q.Route.Keys() {
				to, _ := q.Route.Lookup(key)
				byTarget[to] = append(byTarget[to], key)
			}
			for _, to := range q.Route.Targets() {
				keys := strings.ReplaceAll(strings.Join(byTarget[to], ", "), "\"", "'")
				fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", id, keys, nodeID(to))
			}
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[int]bool)
		for _, id := range overlay.VisitedIDs {
			if seen[id] || id == overlay.CurrentID {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", nodeID(id))
		}
		if overlay.CurrentID != 0 {
			fmt.Fprintf(&sb, "    class %s current;\n", nodeID(overlay.CurrentID))
		}
	}

	return sb.String()
}

// OverlayFor builds the overlay of a navigation state.
func OverlayFor(s *domain.State) *GraphOverlay {
	if s == nil {
		return nil
	}
	o := &GraphOverlay{VisitedIDs: append([]int(nil), s.History...)}
	if s.Status != domain.StatusCompleted {
		o.CurrentID = s.CurrentQuestionID
	}
	return o
}

func nodeID(id int) string {
	return fmt.Sprintf("q%d", id)
}

func label(q domain.Question) string {
	text := strings.Join(strings.Fields(q.Prompt), " ")
	if r := []rune(text); len(r) > maxLabel {
		text = string(r[:maxLabel-1]) + "…"
	}
	text = strings.ReplaceAll(text, "\"", "'")
	if text == "" {
		return fmt.Sprintf("%d", q.ID)
	}
	return fmt.Sprintf("%d. %s", q.ID, text)
}
