package workflow

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/prostheticlab/myoctl/internal/backend"
)

// Progress holds the readiness flags that gate the Training and Execution
// sections.
//
// ModelReady implies TrainingCompleted: both are only ever set together.
// TrainingCompleted does not imply CalibrationCompleted; an inconsistent
// backend can report a model without a dataset.
type Progress struct {
	CalibrationCompleted bool
	TrainingCompleted    bool
	ModelReady           bool
}

// ProgressFromArtifacts derives Progress from the backend's artifact flags.
// The trained-model artifact sets both TrainingCompleted and ModelReady.
func ProgressFromArtifacts(datasetCaptured, modelTrained bool) Progress {
	return Progress{
		CalibrationCompleted: datasetCaptured,
		TrainingCompleted:    modelTrained,
		ModelReady:           modelTrained,
	}
}

// Allows reports whether the flags permit entering s from the menu.
func (p Progress) Allows(s Section) bool {
	switch s {
	case SectionMenu, SectionCalibration:
		return true
	case SectionTraining:
		return p.CalibrationCompleted
	case SectionExecution:
		return p.ModelReady
	}
	return false
}

// ProgressStore loads readiness flags from the backend at startup.
type ProgressStore struct {
	router *Router
	client backend.Client
}

type readinessMsg struct {
	Readiness *backend.Readiness
	Err       error
}

// Refresh queries artifact presence. It is not tied to a section scope.
func (p *ProgressStore) Refresh() tea.Cmd {
	ctx := p.router.sessionContext()
	return func() tea.Msg {
		r, err := p.client.Check(ctx)
		return readinessMsg{Readiness: r, Err: err}
	}
}

func (p *ProgressStore) handle(msg readinessMsg) {
	if msg.Err != nil {
		if !isCancelled(msg.Err) {
			p.router.apply(noticeSet{Notice: "No se pudo consultar el estado: " + backend.Describe(msg.Err)})
		}
		return
	}
	p.router.apply(readinessLoaded{
		Progress: ProgressFromArtifacts(msg.Readiness.DatasetCaptured, msg.Readiness.ModelTrained),
	})
}

func isCancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}
