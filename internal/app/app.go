package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/prostheticlab/myoctl/internal/backend"
	"github.com/prostheticlab/myoctl/internal/router"
	"github.com/prostheticlab/myoctl/internal/screen"
	"github.com/prostheticlab/myoctl/internal/screens/calibration"
	"github.com/prostheticlab/myoctl/internal/screens/execution"
	"github.com/prostheticlab/myoctl/internal/screens/menu"
	"github.com/prostheticlab/myoctl/internal/screens/training"
	"github.com/prostheticlab/myoctl/internal/store"
	"github.com/prostheticlab/myoctl/internal/ui/layout"
	"github.com/prostheticlab/myoctl/internal/workflow"
)

// Options holds the dependencies the application is built from.
type Options struct {
	Client    backend.Client
	EventRepo store.EventRepo
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	flow   *workflow.Workflow
	router *router.Router
	width  int
	height int
}

// NewAppModel wires the workflow and one screen per section.
func NewAppModel(opts Options) AppModel {
	flow := workflow.New(opts.Client, opts.EventRepo)
	screens := map[workflow.Section]screen.Screen{
		workflow.SectionMenu:        menu.New(flow),
		workflow.SectionCalibration: calibration.New(flow),
		workflow.SectionTraining:    training.New(flow),
		workflow.SectionExecution:   execution.New(flow),
	}
	return AppModel{
		flow:   flow,
		router: router.New(flow, screens),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.flow.Close()
			return m, tea.Quit
		case "esc":
			sess := m.flow.State().Session
			if m.router.Section() != workflow.SectionMenu && !sess.ConfirmingRetrain {
				return m, router.Back()
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, headerStatus(m.flow.State().Session), m.width)

	footerHints := []layout.KeyHint{
		{Key: "Esc", Description: "Volver"},
		{Key: "Ctrl+C", Description: "Salir"},
	}
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func headerStatus(sess workflow.Session) layout.HeaderStatus {
	link := layout.LinkUnknown
	switch sess.Connectivity {
	case workflow.Connected:
		link = layout.LinkUp
	case workflow.Disconnected:
		link = layout.LinkDown
	}
	return layout.HeaderStatus{Link: link, PowerOn: sess.PowerOn}
}

// Run starts the Bubble Tea program and cancels outstanding requests
// when it exits.
func Run(opts Options) error {
	m := NewAppModel(opts)
	defer m.flow.Close()

	p := tea.NewProgram(m)
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
