package workflow

import (
	tea "charm.land/bubbletea/v2"

	"github.com/prostheticlab/myoctl/internal/backend"
)

// CalibrationSequencer walks the calibration table, one capture request
// per step.
type CalibrationSequencer struct {
	router *Router
	client backend.Client
}

type captureResultMsg struct {
	Epoch uint64
	Step  int
	Err   error
}

// Capture starts capturing the current step. It returns nil when the
// calibration section is not active or a capture is already in flight.
func (c *CalibrationSequencer) Capture() tea.Cmd {
	s := c.router.State().Session
	if s.Section != SectionCalibration || s.Collecting {
		return nil
	}

	step := s.CurrentStep
	c.router.apply(captureStarted{})
	ctx, epoch := c.router.scope()
	return func() tea.Msg {
		_, err := c.client.CollectData(ctx, step)
		return captureResultMsg{Epoch: epoch, Step: step, Err: err}
	}
}

// Current returns the step awaiting capture.
func (c *CalibrationSequencer) Current() CalibrationStep {
	step, _ := Step(c.router.State().Session.CurrentStep)
	return step
}

func (c *CalibrationSequencer) handle(msg captureResultMsg) tea.Cmd {
	if !c.router.current(msg.Epoch) {
		c.router.apply(captureAbandoned{})
		return nil
	}
	if msg.Err != nil {
		c.router.apply(captureFailed{Notice: backend.Describe(msg.Err)})
		return nil
	}

	c.router.apply(captureSucceeded{Step: msg.Step})
	if msg.Step >= LastStep {
		return c.router.transition(SectionTraining, "calibration complete")
	}
	return nil
}
