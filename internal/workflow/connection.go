package workflow

import (
	tea "charm.land/bubbletea/v2"

	"github.com/prostheticlab/myoctl/internal/backend"
)

// ConnectionMonitor tracks the armband link. Connectivity only changes
// when the operator asks to reconnect; outcomes of other requests never
// touch it.
type ConnectionMonitor struct {
	router *Router
	client backend.Client
}

type reconnectResultMsg struct {
	Epoch uint64
	Err   error
}

// Reconnect asks the service to re-establish the link. Connectivity is
// session state, so the request runs on the session context and its outcome
// applies even after the operator leaves the menu.
func (c *ConnectionMonitor) Reconnect() tea.Cmd {
	if c.router.State().Session.Reconnecting {
		return nil
	}
	c.router.apply(reconnectStarted{})
	_, epoch := c.router.scope()
	ctx := c.router.sessionContext()
	return func() tea.Msg {
		_, err := c.client.Reconnect(ctx)
		return reconnectResultMsg{Epoch: epoch, Err: err}
	}
}

func (c *ConnectionMonitor) handle(msg reconnectResultMsg) {
	// The notice belongs to the menu visit that asked; a later section
	// keeps its own.
	res := connectionResolved{Connected: msg.Err == nil, Keep: !c.router.current(msg.Epoch)}
	if msg.Err != nil && !res.Keep {
		res.Notice = backend.Describe(msg.Err)
	}
	c.router.apply(res)
}
