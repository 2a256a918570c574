package workflow

import (
	tea "charm.land/bubbletea/v2"

	"github.com/prostheticlab/myoctl/internal/backend"
)

// ExecutionController starts and pauses real-time inference on the
// service.
type ExecutionController struct {
	router *Router
	client backend.Client
}

type toggleResultMsg struct {
	Epoch uint64
	Err   error
}

// ToggleExecution requests the opposite of the current run state. Running
// flips only when the service acknowledges.
func (e *ExecutionController) ToggleExecution() tea.Cmd {
	s := e.router.State().Session
	if s.Section != SectionExecution || s.Toggling {
		return nil
	}

	message := backend.MessageStart
	if s.Running {
		message = backend.MessagePause
	}

	e.router.apply(toggleStarted{})
	ctx, epoch := e.router.scope()
	return func() tea.Msg {
		_, err := e.client.Realtime(ctx, message)
		return toggleResultMsg{Epoch: epoch, Err: err}
	}
}

func (e *ExecutionController) handle(msg toggleResultMsg) {
	if !e.router.current(msg.Epoch) {
		e.router.apply(toggleAbandoned{})
		return
	}
	if msg.Err != nil {
		e.router.apply(toggleResolved{OK: false, Notice: backend.Describe(msg.Err)})
		return
	}
	e.router.apply(toggleResolved{OK: true})
}
