package menu

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/prostheticlab/myoctl/internal/router"
	"github.com/prostheticlab/myoctl/internal/screen"
	"github.com/prostheticlab/myoctl/internal/ui/components"
	"github.com/prostheticlab/myoctl/internal/ui/layout"
	"github.com/prostheticlab/myoctl/internal/ui/theme"
	"github.com/prostheticlab/myoctl/internal/workflow"
)

// Menu item positions.
const (
	itemCalibrate = iota
	itemTrain
	itemExecute
	itemReconnect
	itemPower
	itemExit
)

// MenuScreen is the main panel: section entries gated by progress, plus
// the armband reconnect and power controls.
type MenuScreen struct {
	flow    *workflow.Workflow
	menu    components.Menu
	spinner components.Spinner
}

var _ screen.Screen = (*MenuScreen)(nil)

// New creates the menu screen over flow.
func New(flow *workflow.Workflow) *MenuScreen {
	m := &MenuScreen{flow: flow, spinner: components.NewSpinner()}
	m.menu = components.NewMenu([]components.MenuItem{
		{Label: "Calibrar la prótesis", Action: func() tea.Cmd {
			return router.Navigate(workflow.SectionCalibration)
		}},
		{Label: "Entrenar el modelo de IA", Action: func() tea.Cmd {
			return router.Navigate(workflow.SectionTraining)
		}},
		{Label: "Ejecutar modelo en tiempo real", Action: func() tea.Cmd {
			return router.Navigate(workflow.SectionExecution)
		}},
		{Label: "Reconectar brazalete", Action: func() tea.Cmd {
			return flow.Connection.Reconnect()
		}},
		{Label: "Apagar prótesis", Action: func() tea.Cmd {
			flow.Power.TogglePower()
			return nil
		}},
		{Label: "Salir", Action: func() tea.Cmd {
			return tea.Quit
		}},
	})
	m.sync()
	return m
}

func (m *MenuScreen) Init() tea.Cmd {
	m.sync()
	return m.spinner.Init()
}

func (m *MenuScreen) Title() string {
	return "Panel Principal"
}

func (m *MenuScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmds []tea.Cmd

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)

	if kmsg, ok := msg.(tea.KeyMsg); ok && m.flow.State().Session.ConfirmingPowerOff {
		key := kmsg.String()
		switch {
		case components.IsConfirmKey(key):
			cmds = append(cmds, m.flow.Power.ConfirmPowerOff())
		case components.IsDenyKey(key):
			m.flow.Power.CancelPowerOff()
		}
		m.sync()
		return m, tea.Batch(cmds...)
	}

	m.sync()
	m.menu, cmd = m.menu.Update(msg)
	cmds = append(cmds, cmd)
	m.sync()
	return m, tea.Batch(cmds...)
}

// sync refreshes item labels and locks from the workflow state.
func (m *MenuScreen) sync() {
	st := m.flow.State()
	sess := st.Session

	m.menu = m.menu.SetDisabled(itemTrain, !m.flow.CanEnter(workflow.SectionTraining))
	m.menu = m.menu.SetDisabled(itemExecute, !m.flow.CanEnter(workflow.SectionExecution))

	reconnect := "Reconectar brazalete"
	if sess.Reconnecting {
		reconnect = "Reconectando..."
	}
	m.menu = m.menu.SetLabel(itemReconnect, reconnect)
	m.menu = m.menu.SetDisabled(itemReconnect, sess.Reconnecting)

	power := "Apagar prótesis"
	switch {
	case sess.PoweringOff:
		power = "Apagando..."
	case !sess.PowerOn:
		power = "Encender prótesis"
	}
	m.menu = m.menu.SetLabel(itemPower, power)
	m.menu = m.menu.SetDisabled(itemPower, sess.PoweringOff)
}

func (m *MenuScreen) View(width, height int) string {
	sess := m.flow.State().Session

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("Panel Principal"))
	b.WriteString("\n")
	if !layout.IsCompactHeight(height) {
		b.WriteString(theme.Subtitle.Width(width).Render(
			"Aquí puedes calibrar la prótesis, entrenar el modelo de IA y ejecutar el modelo en tiempo real."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.menu.View())

	if sess.Reconnecting || sess.PoweringOff {
		b.WriteString("\n")
		b.WriteString(m.spinner.View("Esperando al servicio..."))
		b.WriteString("\n")
	}
	if sess.ConfirmingPowerOff {
		b.WriteString("\n")
		b.WriteString(components.ConfirmPrompt("¿Seguro que deseas apagar?"))
		b.WriteString("\n")
	}
	if sess.Notice != "" {
		b.WriteString("\n")
		b.WriteString(components.Notice(sess.Notice))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m *MenuScreen) KeyHints() []layout.KeyHint {
	if m.flow.State().Session.ConfirmingPowerOff {
		return []layout.KeyHint{
			{Key: "S", Description: "Apagar"},
			{Key: "N", Description: "Cancelar"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Enter", Description: "Seleccionar"},
		{Key: "Ctrl+C", Description: "Salir"},
	}
}
