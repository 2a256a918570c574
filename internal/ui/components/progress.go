package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/prostheticlab/myoctl/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar. percent is a fraction in [0, 1].
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 8 // "  100.0%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	filled = max(0, min(filled, barWidth))

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %.1f%%", p.Percent*100))
	}

	return result
}

// StepBar shows a fixed number of segments: completed steps, the current
// step, and the ones still pending.
type StepBar struct {
	Total   int
	Current int
	// Done marks every step complete regardless of Current.
	Done bool
}

// View renders one segment per step separated by a gap.
func (s StepBar) View() string {
	segments := make([]string, 0, s.Total)
	for i := 0; i < s.Total; i++ {
		style := theme.ProgressEmpty
		switch {
		case s.Done || i < s.Current:
			style = theme.ProgressFilled
		case i == s.Current:
			style = theme.StepCurrent
		}
		segments = append(segments, style.Render("    "))
	}
	return strings.Join(segments, " ")
}
