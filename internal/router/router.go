package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/prostheticlab/myoctl/internal/screen"
	"github.com/prostheticlab/myoctl/internal/workflow"
)

// NavigateMsg requests a move to another workflow section.
type NavigateMsg struct {
	Section workflow.Section
}

// BackMsg requests a return to the menu.
type BackMsg struct{}

// Navigate returns a command that emits NavigateMsg for s.
func Navigate(s workflow.Section) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Section: s} }
}

// Back returns a command that emits BackMsg.
func Back() tea.Cmd {
	return func() tea.Msg { return BackMsg{} }
}

// Router shows one screen per workflow section. The workflow decides
// which section is current; the router follows it and runs a screen's
// Init whenever its section is entered.
type Router struct {
	flow    *workflow.Workflow
	screens map[workflow.Section]screen.Screen
	shown   workflow.Section
}

// New creates a Router over flow. screens must hold one entry per
// section.
func New(flow *workflow.Workflow, screens map[workflow.Section]screen.Screen) *Router {
	return &Router{
		flow:    flow,
		screens: screens,
		shown:   flow.State().Session.Section,
	}
}

// Init runs the workflow's startup command and the initial screen's Init.
func (r *Router) Init() tea.Cmd {
	var cmd tea.Cmd
	if s := r.Active(); s != nil {
		cmd = s.Init()
	}
	return tea.Batch(r.flow.Init(), cmd)
}

// Active returns the screen for the current section.
func (r *Router) Active() screen.Screen {
	return r.screens[r.shown]
}

// Section returns the section currently shown.
func (r *Router) Section() workflow.Section {
	return r.shown
}

// Update handles navigation, feeds backend results to the workflow and
// forwards everything else to the active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NavigateMsg:
		// Locked sections are not selectable; a stray request is dropped.
		cmd, err := r.flow.Enter(msg.Section)
		if err != nil {
			return nil
		}
		return tea.Batch(cmd, r.follow())
	case BackMsg:
		return tea.Batch(r.flow.Back(), r.follow())
	}

	flowCmd := r.flow.Update(msg)
	followCmd := r.follow()

	active := r.Active()
	if active == nil {
		return tea.Batch(flowCmd, followCmd)
	}
	updated, cmd := active.Update(msg)
	r.screens[r.shown] = updated
	return tea.Batch(flowCmd, followCmd, cmd)
}

// follow switches to the workflow's current section, which may have
// changed underneath the router.
func (r *Router) follow() tea.Cmd {
	current := r.flow.State().Session.Section
	if current == r.shown {
		return nil
	}
	r.shown = current
	if s := r.Active(); s != nil {
		return s.Init()
	}
	return nil
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
