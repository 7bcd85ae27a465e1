package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

var (
	diffDelLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	diffAddLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
	faint       = lipgloss.NewStyle().Faint(true)
)

// renderLineDiff renders a line-level diff of two texts, one line per
// output line prefixed with "- ", "+ " or two spaces.
func renderLineDiff(before, after string) string {
	if before == after {
		return "No changes\n"
	}

	d := dmp.New()
	a, b, lines := d.DiffLinesToChars(before, after)
	diffs := d.DiffCharsToLines(d.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, df := range diffs {
		for _, line := range splitLines(df.Text) {
			switch df.Type {
			case dmp.DiffDelete:
				sb.WriteString(diffDelLine.Render("- " + line))
			case dmp.DiffInsert:
				sb.WriteString(diffAddLine.Render("+ " + line))
			case dmp.DiffEqual:
				sb.WriteString(faint.Render("  " + line))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// splitLines splits text into lines without their terminators.
func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
