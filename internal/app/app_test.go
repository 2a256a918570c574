package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/prostheticlab/myoctl/internal/backend"
	"github.com/prostheticlab/myoctl/internal/router"
	"github.com/prostheticlab/myoctl/internal/workflow"
)

func newTestModel(t *testing.T, dataset, model bool) AppModel {
	t.Helper()
	mock := backend.NewMockClient().On(backend.PathCheck, backend.MockResponse{
		Readiness: &backend.Readiness{DatasetCaptured: dataset, ModelTrained: model},
	})
	m := NewAppModel(Options{Client: mock})
	t.Cleanup(m.flow.Close)
	m.flow.Update(mustReadiness(t, m.flow.Init()))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(AppModel)
}

func mustReadiness(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected readiness command")
	}
	return cmd()
}

func TestContentFollowsSection(t *testing.T) {
	m := newTestModel(t, false, false)

	if !strings.Contains(m.router.View(100, 30), "Panel Principal") {
		t.Error("expected menu content at startup")
	}
	m.router.Update(router.NavigateMsg{Section: workflow.SectionCalibration})
	if !strings.Contains(m.router.View(100, 30), "Paso 1 de 6") {
		t.Error("expected calibration content after navigating")
	}
}

func TestEscGoesBack(t *testing.T) {
	m := newTestModel(t, true, true)
	m.router.Update(router.NavigateMsg{Section: workflow.SectionExecution})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected back command")
	}
	if _, ok := cmd().(router.BackMsg); !ok {
		t.Error("expected BackMsg")
	}
}

func TestEscOnMenuStays(t *testing.T) {
	m := newTestModel(t, false, false)

	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Section() != workflow.SectionMenu {
		t.Errorf("expected menu, got %s", m.router.Section())
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(t, false, false)

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestHeaderStatus(t *testing.T) {
	tests := []struct {
		conn workflow.Connectivity
		want string
	}{
		{workflow.ConnectivityUnknown, "unknown"},
		{workflow.Connected, "up"},
		{workflow.Disconnected, "down"},
	}
	names := map[int]string{0: "unknown", 1: "up", 2: "down"}
	for _, tt := range tests {
		got := headerStatus(workflow.Session{Connectivity: tt.conn, PowerOn: true})
		if names[int(got.Link)] != tt.want {
			t.Errorf("%s: link = %d, want %s", tt.conn, got.Link, tt.want)
		}
		if !got.PowerOn {
			t.Errorf("%s: expected power on", tt.conn)
		}
	}
}
