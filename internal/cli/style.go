package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/roadmap"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true).
			MarginTop(1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printRoadmap is the styled terminal view of a roadmap. Exports use
// Roadmap.WriteText.
func printRoadmap(w io.Writer, rm roadmap.Roadmap) {
	if rm.Title != "" {
		fmt.Fprintln(w, titleStyle.Render(rm.Title))
	}
	if rm.Period != "" {
		fmt.Fprintln(w, rm.Period)
	}
	fmt.Fprintln(w, mutedStyle.Render("["+rm.Status+"]"))

	for _, s := range rm.Sections {
		fmt.Fprintln(w, sectionStyle.Render(s.Title))
		for _, l := range s.Lines {
			switch {
			case l.Label == "":
				fmt.Fprintln(w, "  "+l.Value)
			case l.Value == "":
				fmt.Fprintln(w, "  "+labelStyle.Render(l.Label))
			default:
				fmt.Fprintln(w, "  "+labelStyle.Render(l.Label+":")+" "+l.Value)
			}
		}
	}
}
