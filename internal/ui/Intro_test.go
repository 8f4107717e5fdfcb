package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func pressKeys(t *testing.T, model tea.Model, keys ...tea.KeyMsg) (tea.Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		model, cmd = model.Update(k)
	}
	return model, cmd
}

func TestIntroModel_SelectSpeedAndOption(t *testing.T) {
	m := NewIntroModel(1, 120, 40)

	_, cmd := pressKeys(t, m, runeKey("3"), tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter produced no command")
	}
	got, ok := cmd().(IntroSubmitMsg)
	if !ok {
		t.Fatalf("got %T, want IntroSubmitMsg", cmd())
	}
	if got.Option != OptionDemo || got.SpeedLevel != 3 {
		t.Errorf("submitted %+v, want demo at speed 3", got)
	}
}

func TestIntroModel_SelectionWraps(t *testing.T) {
	m := NewIntroModel(1, 120, 40)

	model, _ := pressKeys(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if got := model.(IntroModel).selected; got != OptionQuit {
		t.Errorf("selected %v after wrapping left, want OptionQuit", got)
	}
}

func TestIntroModel_Shortcuts(t *testing.T) {
	tests := []struct {
		key  string
		want IntroOption
	}{
		{"s", OptionStart},
		{"q", OptionQuit},
	}

	for _, tt := range tests {
		_, cmd := NewIntroModel(2, 120, 40).Update(runeKey(tt.key))
		if cmd == nil {
			t.Fatalf("%q produced no command", tt.key)
		}
		if got := cmd().(IntroSubmitMsg); got.Option != tt.want || got.SpeedLevel != 2 {
			t.Errorf("%q submitted %+v", tt.key, got)
		}
	}
}

func TestNewIntroModel_UnknownSpeedFallsBack(t *testing.T) {
	if m := NewIntroModel(9, 120, 40); m.speedLevel != 1 {
		t.Errorf("speed = %d, want 1", m.speedLevel)
	}
}

func TestIntroModel_View(t *testing.T) {
	view := NewIntroModel(4, 120, 40).View()
	for _, label := range introOptionLabels {
		if !strings.Contains(view, label) {
			t.Errorf("view is missing %q", label)
		}
	}
	if !strings.Contains(view, "[4]") {
		t.Error("selected speed is not highlighted")
	}
}
