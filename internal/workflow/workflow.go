// Package workflow implements the operator workflow: calibration capture,
// model training and real-time execution, gated by readiness flags the
// remote service reports.
//
// All state lives in a single Router. Controllers turn operator actions
// into tea.Cmds that call the service, and Workflow.Update feeds the
// results back on the Bubble Tea event loop, so State has one writer.
package workflow

import (
	tea "charm.land/bubbletea/v2"

	"github.com/prostheticlab/myoctl/internal/backend"
	"github.com/prostheticlab/myoctl/internal/store"
)

// Workflow composes the router and its controllers.
type Workflow struct {
	router *Router

	Progress    *ProgressStore
	Calibration *CalibrationSequencer
	Training    *TrainingCoordinator
	Connection  *ConnectionMonitor
	Power       *PowerController
	Execution   *ExecutionController
}

// New wires a Workflow around client. eventRepo records section
// transitions and may be nil.
func New(client backend.Client, eventRepo store.EventRepo) *Workflow {
	r := NewRouter(eventRepo)
	w := &Workflow{
		router:      r,
		Progress:    &ProgressStore{router: r, client: client},
		Calibration: &CalibrationSequencer{router: r, client: client},
		Training:    &TrainingCoordinator{router: r, client: client},
		Connection:  &ConnectionMonitor{router: r, client: client},
		Power:       &PowerController{router: r, client: client},
		Execution:   &ExecutionController{router: r, client: client},
	}
	r.onEnter = w.onEnter
	return w
}

// Init loads readiness flags from the service.
func (w *Workflow) Init() tea.Cmd {
	return w.Progress.Refresh()
}

// Update applies a backend result. Messages it does not own are ignored.
func (w *Workflow) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case readinessMsg:
		w.Progress.handle(msg)
	case captureResultMsg:
		return w.Calibration.handle(msg)
	case trainResultMsg:
		return w.Training.handleTrain(msg)
	case accuracyResultMsg:
		w.Training.handleAccuracy(msg)
	case reconnectResultMsg:
		w.Connection.handle(msg)
	case powerOffResultMsg:
		w.Power.handle(msg)
	case toggleResultMsg:
		w.Execution.handle(msg)
	}
	return nil
}

// State returns a copy of the current state.
func (w *Workflow) State() State {
	return w.router.State()
}

// Enter moves to section s if its gate allows it.
func (w *Workflow) Enter(s Section) (tea.Cmd, error) {
	return w.router.Enter(s)
}

// CanEnter reports whether s is reachable from the current section.
func (w *Workflow) CanEnter(s Section) bool {
	return w.router.CanEnter(s)
}

// Back returns to the menu.
func (w *Workflow) Back() tea.Cmd {
	return w.router.Back()
}

// Close cancels every outstanding request.
func (w *Workflow) Close() {
	w.router.Close()
}

func (w *Workflow) onEnter(s Section) tea.Cmd {
	if s == SectionTraining {
		return w.Training.FetchAccuracy()
	}
	return nil
}
