// Package style defines the visual styling for result output. Statuses use
// pterm styles for inline markers and lipgloss adaptive colors for the run
// summary, adjusting to light and dark terminal themes.
package style

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/types"
)

// StatusStyle returns the pterm style for a result status.
func StatusStyle(status types.ResultStatus) *pterm.Style {
	switch status {
	case types.StatusSuccess:
		return pterm.NewStyle(pterm.FgGreen)
	case types.StatusFailure:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case types.StatusDeclined:
		return pterm.NewStyle(pterm.FgYellow)
	case types.StatusSkipped:
		return pterm.NewStyle(pterm.FgGray)
	default:
		return pterm.NewStyle(pterm.FgDefault)
	}
}

// StatusMarker returns the short marker shown next to each result line.
func StatusMarker(status types.ResultStatus) string {
	switch status {
	case types.StatusSuccess:
		return "ok"
	case types.StatusFailure:
		return "FAILED"
	case types.StatusDeclined:
		return "declined"
	case types.StatusSkipped:
		return "skipped"
	default:
		return string(status)
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#fafafa"})

	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#7653ff", Dark: "#9d7cff"})
)

// RenderResults renders the per-action result lines followed by the
// aggregated summary.
func RenderResults(title string, results []types.MutationResult) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	for _, r := range results {
		marker := StatusStyle(r.Status).Sprint(StatusMarker(r.Status))
		line := fmt.Sprintf("  %-28s %s", r.Action, marker)
		if r.Message != "" {
			line += "  " + pterm.FgGray.Sprint(r.Message)
		}
		if r.Err != nil {
			line += "  " + pterm.FgRed.Sprint(r.Err.Error())
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(summaryStyle.Render(RenderSummary(types.Summarize(results))))
	b.WriteString("\n")
	return b.String()
}

// RenderSummary renders the aggregate counts on one line.
func RenderSummary(s types.Summary) string {
	parts := []string{fmt.Sprintf("%d succeeded", s.Succeeded)}
	if s.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", s.Failed))
	}
	if s.Declined > 0 {
		parts = append(parts, fmt.Sprintf("%d declined", s.Declined))
	}
	if s.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", s.Skipped))
	}
	return strings.Join(parts, ", ")
}

// HasDarkBackground reports the terminal background, used by callers that
// want to tune glamour rendering to the active theme.
func HasDarkBackground() bool {
	return termenv.HasDarkBackground()
}
