package components

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/prostheticlab/myoctl/internal/ui/theme"
)

// Spinner is the busy indicator shown while a service call is in flight.
type Spinner struct {
	model spinner.Model
}

// NewSpinner creates a spinner in the theme accent color.
func NewSpinner() Spinner {
	m := spinner.New()
	m.Spinner = spinner.MiniDot
	m.Style = lipgloss.NewStyle().Foreground(theme.Accent)
	return Spinner{model: m}
}

// Init starts the animation.
func (s Spinner) Init() tea.Cmd {
	return s.model.Tick
}

// Update advances the animation on its own tick messages.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.model, cmd = s.model.Update(msg)
	return s, cmd
}

// View renders the current frame followed by label.
func (s Spinner) View(label string) string {
	return s.model.View() + " " + theme.Hint.Render(label)
}
