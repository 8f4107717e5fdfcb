package ui

import (
	"errors"
	"io"
	"testing"

	"github.com/Mshel/sshnake/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func newTestController(t *testing.T, deps ControllerDeps) *ControllerModel {
	t.Helper()
	deps.Settings = game.DefaultSettings()
	deps.Logger = log.New(io.Discard)
	return NewControllerModel(deps, 140, 40)
}

func TestControllerModel_StartFlow(t *testing.T) {
	m := newTestController(t, ControllerDeps{})

	m.Update(IntroSubmitMsg{Option: OptionStart, SpeedLevel: 3})
	if m.CurrentScreen != SetupScreen || m.SpeedLevel != 3 {
		t.Fatalf("screen = %v speed = %d", m.CurrentScreen, m.SpeedLevel)
	}

	_, cmd := m.Update(SetupSubmitMsg{Name: "ada"})
	if cmd == nil || m.CurrentScreen != GameScreen {
		t.Fatalf("game did not start, screen = %v", m.CurrentScreen)
	}
	if m.PlayerName != "ada" || m.cancelGame == nil {
		t.Fatalf("player = %q cancel = %v", m.PlayerName, m.cancelGame != nil)
	}
	view := m.GameModel.(GameViewModel)
	if view.gameManager.PlayerName != "ada" || view.gameManager.SpeedLevel != 3 || view.isDemo {
		t.Errorf("manager for %q at speed %d demo=%v", view.gameManager.PlayerName, view.gameManager.SpeedLevel, view.isDemo)
	}

	m.Update(QuitGameMsg{})
	if m.CurrentScreen != IntroScreen || m.GameModel != nil || m.cancelGame != nil {
		t.Error("quit did not return to the intro")
	}
}

func TestControllerModel_RestartReplacesGame(t *testing.T) {
	m := newTestController(t, ControllerDeps{})
	m.Update(SetupSubmitMsg{Name: "ada"})
	first := m.GameModel.(GameViewModel)

	m.Update(RestartGameMsg{})
	second := m.GameModel.(GameViewModel)

	if first.gameManager == second.gameManager {
		t.Fatal("restart kept the old manager")
	}
	if first.ctx.Err() == nil {
		t.Error("old game was not cancelled")
	}
}

func TestControllerModel_DemoFallsBackToGreedy(t *testing.T) {
	m := newTestController(t, ControllerDeps{
		NewStrategy: func() (game.Strategy, error) { return nil, errors.New("broken script") },
	})

	m.Update(IntroSubmitMsg{Option: OptionDemo, SpeedLevel: 1})
	if m.CurrentScreen != GameScreen || !m.isDemo {
		t.Fatalf("demo did not start, screen = %v", m.CurrentScreen)
	}
	if !m.GameModel.(GameViewModel).isDemo {
		t.Error("game view is not in demo mode")
	}
}

func TestControllerModel_DemoOnlyInit(t *testing.T) {
	m := newTestController(t, ControllerDeps{DemoOnly: true})

	msg, ok := m.Init()().(IntroSubmitMsg)
	if !ok || msg.Option != OptionDemo {
		t.Fatalf("init sent %#v, want a demo start", msg)
	}
}

func TestControllerModel_Leaderboard(t *testing.T) {
	m := newTestController(t, ControllerDeps{})

	m.Update(IntroSubmitMsg{Option: OptionLeaderboard, SpeedLevel: 1})
	view, ok := m.GameModel.(GameViewModel)
	if !ok || view.gameState != StateLeaderboard || view.gameManager != nil {
		t.Fatalf("leaderboard not shown: %#v", m.GameModel)
	}
}

func TestControllerModel_Quit(t *testing.T) {
	m := newTestController(t, ControllerDeps{})

	_, cmd := m.Update(IntroSubmitMsg{Option: OptionQuit})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("quit option got %T", cmd())
	}

	m.Update(SetupSubmitMsg{Name: "ada"})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("ctrl+c got %T", cmd())
	}
	if m.cancelGame != nil {
		t.Error("ctrl+c left the game running")
	}
}

func TestAutopilotFactory(t *testing.T) {
	strategy, err := AutopilotFactory("")()
	if err != nil || strategy != game.GreedyStrategy {
		t.Fatalf("empty path = %v, %v, want the greedy strategy", strategy, err)
	}

	if _, err := AutopilotFactory("does-not-exist.lua")(); err == nil {
		t.Error("missing script loaded")
	}
}
