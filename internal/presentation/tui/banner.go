package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the survey banner and the catalog summary to w.
func PrintBanner(w io.Writer, questions int, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"  ___ _   _ _ ____   _____ _   _ ", "#818cf8"},
		{" / __| | | | '__\\ \\ / / _ \\ | | |", "#a78bfa"},
		{" \\__ \\ |_| | |   \\ V /  __/ |_| |", "#c084fc"},
		{" |___/\\__,_|_|    \\_/ \\___|\\__, |", "#e879f9"},
		{"                           |___/ ", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	info := fmt.Sprintf(" v%s · %d questions · type 'back' or 'quit' at any prompt", version, questions)
	fmt.Fprintln(w, termenv.String(info).Faint())
	fmt.Fprintln(w)
}
