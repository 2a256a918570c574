package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/prostheticlab/myoctl/internal/ui/theme"
)

// Button is a styled button component. An inactive button renders its
// busy label and ignores key presses.
type Button struct {
	Label     string
	BusyLabel string
	Active    bool
	OnPress   func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(label, busyLabel string, onPress func() tea.Cmd) Button {
	return Button{
		Label:     label,
		BusyLabel: busyLabel,
		Active:    true,
		OnPress:   onPress,
	}
}

// Update handles key events.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Active {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "space":
			if b.OnPress != nil {
				return b, b.OnPress()
			}
		}
	}

	return b, nil
}

// View renders the button.
func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	label := b.BusyLabel
	if label == "" {
		label = b.Label
	}
	return theme.ButtonInactive.Render(label)
}
