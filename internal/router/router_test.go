package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/prostheticlab/myoctl/internal/backend"
	"github.com/prostheticlab/myoctl/internal/screen"
	"github.com/prostheticlab/myoctl/internal/workflow"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title    string
	initRuns int
	seen     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRuns++
	return nil
}
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.seen = append(s.seen, msg)
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

type pingMsg struct{}

// drive runs cmd and feeds every message it produces back into r.
func drive(r *Router, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			drive(r, c)
		}
	default:
		drive(r, r.Update(msg))
	}
}

func newTestRouter(t *testing.T, dataset, model bool) (*Router, map[workflow.Section]*stubScreen, *backend.MockClient) {
	t.Helper()
	mock := backend.NewMockClient().On(backend.PathCheck, backend.MockResponse{
		Readiness: &backend.Readiness{DatasetCaptured: dataset, ModelTrained: model},
	})
	flow := workflow.New(mock, nil)
	t.Cleanup(flow.Close)

	stubs := map[workflow.Section]*stubScreen{
		workflow.SectionMenu:        {title: "menu"},
		workflow.SectionCalibration: {title: "calibration"},
		workflow.SectionTraining:    {title: "training"},
		workflow.SectionExecution:   {title: "execution"},
	}
	screens := make(map[workflow.Section]screen.Screen, len(stubs))
	for s, stub := range stubs {
		screens[s] = stub
	}
	r := New(flow, screens)
	drive(r, r.Init())
	return r, stubs, mock
}

func TestStartsOnMenu(t *testing.T) {
	r, stubs, mock := newTestRouter(t, false, false)

	if r.Active().Title() != "menu" {
		t.Errorf("expected active 'menu', got %q", r.Active().Title())
	}
	if stubs[workflow.SectionMenu].initRuns != 1 {
		t.Errorf("expected menu Init once, got %d", stubs[workflow.SectionMenu].initRuns)
	}
	if mock.CallCount(backend.PathCheck) != 1 {
		t.Errorf("expected one readiness check, got %d", mock.CallCount(backend.PathCheck))
	}
}

func TestNavigate(t *testing.T) {
	r, stubs, _ := newTestRouter(t, false, false)

	drive(r, Navigate(workflow.SectionCalibration))

	if r.Section() != workflow.SectionCalibration {
		t.Errorf("expected calibration, got %s", r.Section())
	}
	if r.View(80, 24) != "calibration" {
		t.Errorf("expected calibration view, got %q", r.View(80, 24))
	}
	if stubs[workflow.SectionCalibration].initRuns != 1 {
		t.Error("expected Init() to run on entered screen")
	}
}

func TestNavigateLockedIsDropped(t *testing.T) {
	r, stubs, _ := newTestRouter(t, false, false)

	drive(r, Navigate(workflow.SectionExecution))

	if r.Section() != workflow.SectionMenu {
		t.Errorf("expected menu, got %s", r.Section())
	}
	if stubs[workflow.SectionExecution].initRuns != 0 {
		t.Error("locked screen should not be initialised")
	}
}

func TestBack(t *testing.T) {
	r, stubs, _ := newTestRouter(t, true, true)

	drive(r, Navigate(workflow.SectionExecution))
	drive(r, Back())

	if r.Section() != workflow.SectionMenu {
		t.Errorf("expected menu after back, got %s", r.Section())
	}
	if stubs[workflow.SectionMenu].initRuns != 2 {
		t.Errorf("expected menu Init on return, got %d runs", stubs[workflow.SectionMenu].initRuns)
	}
}

func TestForwardsToActiveScreen(t *testing.T) {
	r, stubs, _ := newTestRouter(t, false, false)

	r.Update(pingMsg{})

	seen := stubs[workflow.SectionMenu].seen
	if len(seen) == 0 {
		t.Fatal("expected menu to receive the message")
	}
	if _, ok := seen[len(seen)-1].(pingMsg); !ok {
		t.Errorf("expected pingMsg, got %T", seen[len(seen)-1])
	}
	if len(stubs[workflow.SectionCalibration].seen) != 0 {
		t.Error("inactive screen should not receive messages")
	}
}

func TestFollowsWorkflowAfterLastCapture(t *testing.T) {
	r, stubs, mock := newTestRouter(t, false, false)
	drive(r, Navigate(workflow.SectionCalibration))

	for range workflow.StepCount {
		mock.On(backend.PathCollectData, backend.MockResponse{})
	}
	for range workflow.StepCount {
		drive(r, r.flow.Calibration.Capture())
	}

	if r.Section() != workflow.SectionTraining {
		t.Fatalf("expected training after the last step, got %s", r.Section())
	}
	if stubs[workflow.SectionTraining].initRuns != 1 {
		t.Error("expected training Init after automatic transition")
	}
}

