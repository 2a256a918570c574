package workflow

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/prostheticlab/myoctl/internal/store"
)

var (
	// ErrSectionLocked is returned when a section's readiness gate is closed.
	ErrSectionLocked = errors.New("section locked")

	// ErrInvalidTransition is returned for transitions the workflow never
	// takes, such as Training to Execution.
	ErrInvalidTransition = errors.New("invalid transition")
)

// Router is the workflow state machine. It owns State, enforces
// section-entry gates, and scopes in-flight requests to the section that
// issued them.
//
// Every section visit gets a fresh scope: a context cancelled when the
// section is left and an epoch that increases on each transition. Results
// carrying an older epoch are stale and must not change progress or
// navigation.
type Router struct {
	state     State
	eventRepo store.EventRepo

	session       context.Context
	cancelSession context.CancelFunc

	scopeCtx    context.Context
	cancelScope context.CancelFunc
	epoch       uint64

	// onEnter runs after every transition, inside the new scope.
	onEnter func(Section) tea.Cmd
}

// NewRouter creates a Router in the Menu section. eventRepo may be nil.
func NewRouter(eventRepo store.EventRepo) *Router {
	session, cancel := context.WithCancel(context.Background())
	r := &Router{
		state:         NewState(),
		eventRepo:     eventRepo,
		session:       session,
		cancelSession: cancel,
	}
	r.scopeCtx, r.cancelScope = context.WithCancel(session)
	return r
}

// State returns a copy of the current state.
func (r *Router) State() State {
	return r.state
}

// Section returns the active section.
func (r *Router) Section() Section {
	return r.state.Session.Section
}

// CanEnter reports whether Enter(to) would succeed from the current section.
func (r *Router) CanEnter(to Section) bool {
	return r.check(to) == nil
}

func (r *Router) check(to Section) error {
	from := r.state.Session.Section
	if to == SectionMenu {
		return nil
	}
	if from != SectionMenu {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, to)
	}
	if !r.state.Progress.Allows(to) {
		return fmt.Errorf("%w: %s", ErrSectionLocked, to)
	}
	return nil
}

// Enter moves to section to on operator request.
func (r *Router) Enter(to Section) (tea.Cmd, error) {
	if err := r.check(to); err != nil {
		return nil, err
	}
	if to == r.state.Session.Section {
		return nil, nil
	}
	return r.transition(to, "operator"), nil
}

// Back returns to the menu. In-flight requests of the section being left
// are cancelled.
func (r *Router) Back() tea.Cmd {
	if r.state.Session.Section == SectionMenu {
		return nil
	}
	return r.transition(SectionMenu, "back")
}

// Close cancels every outstanding request.
func (r *Router) Close() {
	r.cancelSession()
}

// transition switches sections unconditionally. Gate checks are the
// caller's job.
func (r *Router) transition(to Section, reason string) tea.Cmd {
	from := r.state.Session.Section

	r.cancelScope()
	r.scopeCtx, r.cancelScope = context.WithCancel(r.session)
	r.epoch++

	r.apply(sectionEntered{Section: to})

	cmds := []tea.Cmd{r.recordTransition(from, to, reason)}
	if r.onEnter != nil {
		cmds = append(cmds, r.onEnter(to))
	}
	return tea.Batch(cmds...)
}

func (r *Router) recordTransition(from, to Section, reason string) tea.Cmd {
	if r.eventRepo == nil {
		return nil
	}
	repo := r.eventRepo
	return func() tea.Msg {
		err := repo.AppendTransition(context.Background(), store.TransitionEventData{
			From:   from.String(),
			To:     to.String(),
			Reason: reason,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to log transition event: %v\n", err)
		}
		return nil
	}
}

// apply is the only write path into State.
func (r *Router) apply(m Mutation) {
	m.apply(&r.state)
}

// scope returns the active section's context and epoch.
func (r *Router) scope() (context.Context, uint64) {
	return r.scopeCtx, r.epoch
}

// current reports whether epoch belongs to the active section visit.
func (r *Router) current(epoch uint64) bool {
	return epoch == r.epoch
}

func (r *Router) sessionContext() context.Context {
	return r.session
}
