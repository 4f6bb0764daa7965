package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Timeline phase keys, in order.
const (
	PhaseInput      = "input"
	PhaseScan       = "scan"
	PhaseDuplicates = "duplicates"
	PhaseTransfer   = "transfer"
	PhaseDone       = "done"
)

// RenderTimeline renders the phase progression for the header.
// Earlier phases show as done, the current one as active and later ones as
// pending. A "_error" suffix (e.g. "scan_error") marks the failing phase and
// everything after it as cancelled.
func RenderTimeline(currentPhase string) string {
	phase := strings.ToLower(strings.TrimSpace(currentPhase))

	isError := strings.HasSuffix(phase, "_error")
	if isError {
		phase = strings.TrimSuffix(phase, "_error")
	}

	phases := []struct {
		name string
		key  string
	}{
		{"Input", PhaseInput},
		{"Scan", PhaseScan},
		{"Duplicates", PhaseDuplicates},
		{"Transfer", PhaseTransfer},
		{"Done", PhaseDone},
	}

	currentIdx := 0
	for i, p := range phases {
		if p.key == phase {
			currentIdx = i
			break
		}
	}

	parts := make([]string, 0, len(phases))

	for idx, p := range phases {
		var symbol string
		var style lipgloss.Style

		switch {
		case isError && idx == currentIdx:
			symbol = ErrorSymbol()
			style = lipgloss.NewStyle().Foreground(ErrorColor())
		case isError && idx > currentIdx:
			symbol = CancelledSymbol()
			style = DimStyle()
		case idx < currentIdx, idx == currentIdx && idx == len(phases)-1:
			symbol = SuccessSymbol()
			style = lipgloss.NewStyle().Foreground(SuccessColor())
		case idx == currentIdx:
			symbol = ActiveSymbol()
			style = lipgloss.NewStyle().Foreground(PrimaryColor())
		default:
			symbol = PendingSymbol()
			style = DimStyle()
		}

		parts = append(parts, style.Render(symbol+" "+p.name))
	}

	return strings.Join(parts, DimStyle().Render(" ── "))
}
