package workflow

import (
	tea "charm.land/bubbletea/v2"

	"github.com/prostheticlab/myoctl/internal/backend"
)

// TrainingCoordinator runs remote training and tracks model accuracy.
// Once a model exists, training again requires explicit confirmation.
type TrainingCoordinator struct {
	router *Router
	client backend.Client
}

type trainResultMsg struct {
	Epoch uint64
	Err   error
}

type accuracyResultMsg struct {
	Epoch uint64
	Value float64
	Err   error
}

// Train starts the first training run. When a model already exists it
// does nothing; use RequestRetrain and ConfirmRetrain instead.
func (t *TrainingCoordinator) Train() tea.Cmd {
	st := t.router.State()
	if !t.idle(st) || st.Progress.TrainingCompleted {
		return nil
	}
	return t.dispatch()
}

// RequestRetrain opens the retrain confirmation prompt.
func (t *TrainingCoordinator) RequestRetrain() {
	st := t.router.State()
	if !t.idle(st) || !st.Progress.TrainingCompleted {
		return
	}
	t.router.apply(retrainPrompt{Open: true})
}

// ConfirmRetrain closes the prompt and starts training.
func (t *TrainingCoordinator) ConfirmRetrain() tea.Cmd {
	st := t.router.State()
	if !st.Session.ConfirmingRetrain || !t.idle(st) {
		return nil
	}
	return t.dispatch()
}

// CancelRetrain closes the prompt without training.
func (t *TrainingCoordinator) CancelRetrain() {
	t.router.apply(retrainPrompt{Open: false})
}

// FetchAccuracy queries the trained model's accuracy. A failure keeps the
// previous value.
func (t *TrainingCoordinator) FetchAccuracy() tea.Cmd {
	ctx, epoch := t.router.scope()
	return func() tea.Msg {
		acc, err := t.client.GetAccuracy(ctx)
		if err != nil {
			return accuracyResultMsg{Epoch: epoch, Err: err}
		}
		return accuracyResultMsg{Epoch: epoch, Value: acc.Value}
	}
}

func (t *TrainingCoordinator) idle(st State) bool {
	return st.Session.Section == SectionTraining && !st.Session.Training
}

func (t *TrainingCoordinator) dispatch() tea.Cmd {
	t.router.apply(trainingStarted{})
	ctx, epoch := t.router.scope()
	return func() tea.Msg {
		_, err := t.client.TrainModel(ctx)
		return trainResultMsg{Epoch: epoch, Err: err}
	}
}

func (t *TrainingCoordinator) handleTrain(msg trainResultMsg) tea.Cmd {
	if !t.router.current(msg.Epoch) {
		t.router.apply(trainingAbandoned{})
		return nil
	}
	if msg.Err != nil {
		t.router.apply(trainingFailed{Notice: backend.Describe(msg.Err)})
		return nil
	}
	t.router.apply(trainingSucceeded{})
	return t.FetchAccuracy()
}

func (t *TrainingCoordinator) handleAccuracy(msg accuracyResultMsg) {
	if !t.router.current(msg.Epoch) || msg.Err != nil {
		return
	}
	t.router.apply(accuracyLoaded{Value: msg.Value})
}
