package roadmap

import (
	"bufio"
	"io"
	"strings"
)

// WriteText renders the roadmap as plain text. The output depends only on
// the roadmap, so a preview and an export of the same data are identical.
func (r Roadmap) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if r.Title != "" {
		bw.WriteString(r.Title + "\n")
	}
	if r.Period != "" {
		bw.WriteString(r.Period + "\n")
	}
	if r.Status != "" {
		bw.WriteString("[" + r.Status + "]\n")
	}

	for _, s := range r.Sections {
		bw.WriteString("\n" + s.Title + "\n")
		bw.WriteString(strings.Repeat("-", len([]rune(s.Title))) + "\n")
		for _, l := range s.Lines {
			bw.WriteString(l.String() + "\n")
		}
	}

	return bw.Flush()
}

func (l Line) String() string {
	switch {
	case l.Label == "":
		return "  " + l.Value
	case l.Value == "":
		return "  " + l.Label
	default:
		return "  " + l.Label + ": " + l.Value
	}
}
