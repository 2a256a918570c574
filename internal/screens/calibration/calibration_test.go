package calibration

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/prostheticlab/myoctl/internal/backend"
	"github.com/prostheticlab/myoctl/internal/workflow"
)

func newTestFlow(t *testing.T, mock *backend.MockClient, dataset, model bool) *workflow.Workflow {
	t.Helper()
	mock.On(backend.PathCheck, backend.MockResponse{
		Readiness: &backend.Readiness{DatasetCaptured: dataset, ModelTrained: model},
	})
	flow := workflow.New(mock, nil)
	t.Cleanup(flow.Close)
	run(flow, flow.Init())
	return flow
}

// run executes cmd and feeds workflow results back into flow.
func run(flow *workflow.Workflow, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			run(flow, c)
		}
	default:
		run(flow, flow.Update(msg))
	}
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}
func enterCalibration(t *testing.T, mock *backend.MockClient) (*workflow.Workflow, *CalibrationScreen) {
	t.Helper()
	flow := newTestFlow(t, mock, false, false)
	cmd, err := flow.Enter(workflow.SectionCalibration)
	if err != nil {
		t.Fatalf("enter calibration: %v", err)
	}
	run(flow, cmd)
	return flow, New(flow)
}

func TestCalibrationScreen_Title(t *testing.T) {
	_, c := enterCalibration(t, backend.NewMockClient())
	if c.Title() != "Calibración de la Prótesis" {
		t.Errorf("Title = %q", c.Title())
	}
}

func TestCalibrationScreen_ShowsFirstStep(t *testing.T) {
	_, c := enterCalibration(t, backend.NewMockClient())

	view := c.View(100, 40)
	if !strings.Contains(view, "Paso 1 de 6") {
		t.Error("expected step counter in view")
	}
	if !strings.Contains(view, "Mano Abierta") {
		t.Error("expected first movement in view")
	}
}

func TestCalibrationScreen_EnterCapturesAndAdvances(t *testing.T) {
	mock := backend.NewMockClient()
	flow, c := enterCalibration(t, mock)
	mock.On(backend.PathCollectData, backend.MockResponse{})

	_, cmd := c.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected capture command")
	}
	if !flow.State().Session.Collecting {
		t.Error("expected collecting while the capture is in flight")
	}
	if !strings.Contains(c.View(100, 40), "Recolectando datos...") {
		t.Error("expected busy label while collecting")
	}

	run(flow, cmd)

	if got := mock.LastCallTo(backend.PathCollectData).Step; got != 0 {
		t.Errorf("expected step 0 sent, got %d", got)
	}
	if !strings.Contains(c.View(100, 40), "Paso 2 de 6") {
		t.Error("expected second step after capture")
	}
}

func TestCalibrationScreen_IgnoresEnterWhileCollecting(t *testing.T) {
	mock := backend.NewMockClient()
	_, c := enterCalibration(t, mock)

	_, first := c.Update(key("enter"))
	_, second := c.Update(key("enter"))

	if first == nil {
		t.Fatal("expected first press to start a capture")
	}
	if second != nil {
		t.Error("expected second press to be ignored")
	}
}

func TestCalibrationScreen_FailureNotice(t *testing.T) {
	mock := backend.NewMockClient()
	flow, c := enterCalibration(t, mock)
	mock.On(backend.PathCollectData, backend.MockResponse{
		Err: &backend.ErrStatus{Endpoint: backend.PathCollectData, StatusCode: 500, Message: "Myo no conectado"},
	})

	_, cmd := c.Update(key("enter"))
	run(flow, cmd)

	view := c.View(100, 40)
	if !strings.Contains(view, "Myo no conectado") {
		t.Error("expected failure notice in view")
	}
	if !strings.Contains(view, "Paso 1 de 6") {
		t.Error("expected to stay on the failed step")
	}
}
