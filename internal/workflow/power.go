package workflow

import (
	tea "charm.land/bubbletea/v2"

	"github.com/prostheticlab/myoctl/internal/backend"
)

// PowerController turns the armband on and off. Turning on is immediate;
// turning off goes through a confirmation prompt.
type PowerController struct {
	router *Router
	client backend.Client
}

type powerOffResultMsg struct {
	Epoch uint64
	Err   error
}

// TogglePower opens the power-off prompt when on and powers on when off.
func (p *PowerController) TogglePower() {
	s := p.router.State().Session
	switch {
	case s.PoweringOff:
	case s.PowerOn:
		p.router.apply(powerPrompt{Open: true})
	default:
		p.router.apply(poweredOn{})
	}
}

// ConfirmPowerOff sends the power-off request. The prompt stays open
// until the service answers.
func (p *PowerController) ConfirmPowerOff() tea.Cmd {
	s := p.router.State().Session
	if !s.ConfirmingPowerOff || s.PoweringOff {
		return nil
	}
	p.router.apply(powerOffStarted{})
	ctx, epoch := p.router.scope()
	return func() tea.Msg {
		_, err := p.client.PowerOff(ctx)
		return powerOffResultMsg{Epoch: epoch, Err: err}
	}
}

// CancelPowerOff closes the prompt without changing power state.
func (p *PowerController) CancelPowerOff() {
	if p.router.State().Session.PoweringOff {
		return
	}
	p.router.apply(powerPrompt{Open: false})
}

func (p *PowerController) handle(msg powerOffResultMsg) {
	if !p.router.current(msg.Epoch) {
		p.router.apply(powerOffAbandoned{})
		return
	}
	if msg.Err != nil {
		p.router.apply(powerOffResolved{OK: false, Notice: backend.Describe(msg.Err)})
		return
	}
	p.router.apply(powerOffResolved{OK: true})
}
