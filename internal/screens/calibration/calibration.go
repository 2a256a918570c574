package calibration

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/prostheticlab/myoctl/internal/screen"
	"github.com/prostheticlab/myoctl/internal/ui/components"
	"github.com/prostheticlab/myoctl/internal/ui/layout"
	"github.com/prostheticlab/myoctl/internal/ui/theme"
	"github.com/prostheticlab/myoctl/internal/workflow"
)

// CalibrationScreen walks the operator through the movement captures.
type CalibrationScreen struct {
	flow    *workflow.Workflow
	button  components.Button
	spinner components.Spinner
}

var _ screen.Screen = (*CalibrationScreen)(nil)

// New creates the calibration screen over flow.
func New(flow *workflow.Workflow) *CalibrationScreen {
	return &CalibrationScreen{
		flow:    flow,
		button:  components.NewButton("Empezar Calibración", "Recolectando datos...", flow.Calibration.Capture),
		spinner: components.NewSpinner(),
	}
}

func (c *CalibrationScreen) Init() tea.Cmd {
	return c.spinner.Init()
}

func (c *CalibrationScreen) Title() string {
	return "Calibración de la Prótesis"
}

func (c *CalibrationScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var spinCmd, pressCmd tea.Cmd
	c.spinner, spinCmd = c.spinner.Update(msg)

	c.button, pressCmd = c.buttonFor(c.flow.State().Session).Update(msg)

	return c, tea.Batch(spinCmd, pressCmd)
}

// buttonFor returns the capture button as sess should show it.
func (c *CalibrationScreen) buttonFor(sess workflow.Session) components.Button {
	b := c.button
	b.Active = !sess.Collecting
	return b
}

func (c *CalibrationScreen) View(width, height int) string {
	st := c.flow.State()
	step := c.flow.Calibration.Current()

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render(c.Title()))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("Paso %d de %d", step.ID+1, workflow.StepCount)))
	b.WriteString("\n\n")

	card := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(step.Movement) +
		"\n\n" + theme.Body.Render(step.Description)
	b.WriteString(theme.Card.Width(min(width-4, 72)).Render(card))
	b.WriteString("\n\n")

	b.WriteString(components.StepBar{
		Total:   workflow.StepCount,
		Current: st.Session.CurrentStep,
		Done:    st.Progress.CalibrationCompleted,
	}.View())
	b.WriteString("\n\n")

	b.WriteString(c.buttonFor(st.Session).View())
	if st.Session.Collecting {
		b.WriteString("  ")
		b.WriteString(c.spinner.View("Mantenga el movimiento"))
	}
	b.WriteString("\n")

	if st.Session.Notice != "" {
		b.WriteString("\n")
		b.WriteString(components.Notice(st.Session.Notice))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (c *CalibrationScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Capturar"},
		{Key: "Esc", Description: "Volver"},
		{Key: "Ctrl+C", Description: "Salir"},
	}
}
