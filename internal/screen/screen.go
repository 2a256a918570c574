package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/prostheticlab/myoctl/internal/ui/layout"
)

// Screen is one workflow section as the operator sees it.
type Screen interface {
	// Init returns the command to run each time the section is entered.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
