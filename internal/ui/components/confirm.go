package components

import (
	"charm.land/lipgloss/v2"

	"github.com/prostheticlab/myoctl/internal/ui/theme"
)

// ConfirmPrompt renders a yes/no question. Key handling stays with the
// owning screen.
func ConfirmPrompt(question string) string {
	q := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(question)
	keys := theme.Selected.Render("[S]") + theme.Body.Render(" Sí    ") +
		theme.Selected.Render("[N]") + theme.Body.Render(" No")
	return theme.Card.Render(q + "\n\n" + keys)
}

// IsConfirmKey reports whether key answers a ConfirmPrompt with yes.
func IsConfirmKey(key string) bool {
	switch key {
	case "s", "S", "y", "Y":
		return true
	}
	return false
}

// IsDenyKey reports whether key answers a ConfirmPrompt with no.
func IsDenyKey(key string) bool {
	switch key {
	case "n", "N", "esc":
		return true
	}
	return false
}
