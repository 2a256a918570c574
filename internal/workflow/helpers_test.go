package workflow

import (
	"context"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/prostheticlab/myoctl/internal/backend"
	"github.com/prostheticlab/myoctl/internal/store"
)

// run executes cmd and feeds every resulting message back into w,
// following batches and follow-up commands.
func run(w *Workflow, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			run(w, c)
		}
	default:
		run(w, w.Update(msg))
	}
}

// enter navigates to s and runs the resulting commands.
func enter(t *testing.T, w *Workflow, s Section) {
	t.Helper()
	cmd, err := w.Enter(s)
	if err != nil {
		t.Fatalf("enter %s: %v", s, err)
	}
	run(w, cmd)
}

// newTestWorkflow returns a workflow whose readiness check reported the
// given artifacts.
func newTestWorkflow(t *testing.T, dataset, model bool) (*Workflow, *backend.MockClient) {
	t.Helper()
	mock := backend.NewMockClient().On(backend.PathCheck, backend.MockResponse{
		Readiness: &backend.Readiness{DatasetCaptured: dataset, ModelTrained: model},
	})
	w := New(mock, nil)
	t.Cleanup(w.Close)
	run(w, w.Init())
	return w, mock
}

func statusErr(endpoint string, code int) error {
	return &backend.ErrStatus{Endpoint: endpoint, StatusCode: code, Message: "boom"}
}

// memEventRepo implements store.EventRepo in memory.
type memEventRepo struct {
	mu          sync.Mutex
	transitions []store.TransitionEventData
}

func (m *memEventRepo) AppendRequest(_ context.Context, _ store.RequestEventData) error {
	return nil
}
func (m *memEventRepo) AppendTransition(_ context.Context, data store.TransitionEventData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions = append(m.transitions, data)
	return nil
}
func (m *memEventRepo) QueryEvents(_ context.Context, _ store.QueryOpts) ([]store.Event, error) {
	return nil, nil
}
func (m *memEventRepo) GetEvent(_ context.Context, _ int64) (*store.Event, error) {
	return nil, nil
}
