package execution

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/prostheticlab/myoctl/internal/screen"
	"github.com/prostheticlab/myoctl/internal/ui/components"
	"github.com/prostheticlab/myoctl/internal/ui/layout"
	"github.com/prostheticlab/myoctl/internal/ui/theme"
	"github.com/prostheticlab/myoctl/internal/workflow"
)

// ExecutionScreen starts and pauses real-time inference.
type ExecutionScreen struct {
	flow    *workflow.Workflow
	button  components.Button
	spinner components.Spinner
}

var _ screen.Screen = (*ExecutionScreen)(nil)

// New creates the execution screen over flow.
func New(flow *workflow.Workflow) *ExecutionScreen {
	return &ExecutionScreen{
		flow:    flow,
		button:  components.NewButton("Iniciar Ejecución", "Enviando...", flow.Execution.ToggleExecution),
		spinner: components.NewSpinner(),
	}
}

func (e *ExecutionScreen) Init() tea.Cmd {
	return e.spinner.Init()
}

func (e *ExecutionScreen) Title() string {
	return "Ejecución en Tiempo Real"
}

func (e *ExecutionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var spinCmd, pressCmd tea.Cmd
	e.spinner, spinCmd = e.spinner.Update(msg)

	e.button, pressCmd = e.buttonFor(e.flow.State().Session).Update(msg)
	return e, tea.Batch(spinCmd, pressCmd)
}

// buttonFor returns the toggle button as sess should show it.
func (e *ExecutionScreen) buttonFor(sess workflow.Session) components.Button {
	b := e.button
	b.Active = !sess.Toggling
	if sess.Running {
		b.Label = "Pausar"
	} else {
		b.Label = "Iniciar Ejecución"
	}
	return b
}

func (e *ExecutionScreen) View(width, height int) string {
	sess := e.flow.State().Session

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render(e.Title()))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render("El modelo está listo para procesar los movimientos en tiempo real."))
	b.WriteString("\n\n")

	status := theme.Hint.Render("● En pausa")
	if sess.Running {
		status = theme.Online.Render("● En ejecución")
	}
	b.WriteString(status)
	b.WriteString("\n\n")

	b.WriteString(e.buttonFor(sess).View())
	if sess.Toggling {
		b.WriteString("  ")
		b.WriteString(e.spinner.View("Esperando confirmación"))
	}
	b.WriteString("\n")

	if sess.Notice != "" {
		b.WriteString("\n")
		b.WriteString(components.Notice(sess.Notice))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (e *ExecutionScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Iniciar/Pausar"},
		{Key: "Esc", Description: "Volver"},
		{Key: "Ctrl+C", Description: "Salir"},
	}
}
