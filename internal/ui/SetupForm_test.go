package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestSetupModel_SubmitName(t *testing.T) {
	m := NewInitialSetupModel(80, 24)

	_, cmd := pressKeys(t, m,
		runeKey("a"), runeKey("d"), runeKey("a"),
		tea.KeyMsg{Type: tea.KeyEnter}, // focus the button
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	if cmd == nil {
		t.Fatal("submit produced no command")
	}
	got, ok := cmd().(SetupSubmitMsg)
	if !ok || got.Name != "ada" {
		t.Fatalf("got %#v, want SetupSubmitMsg{Name: ada}", cmd())
	}
}

func TestSetupModel_EmptyNameGetsPlaceholder(t *testing.T) {
	model, _ := pressKeys(t, NewInitialSetupModel(80, 24), runeKey(" "), tea.KeyMsg{Type: tea.KeyTab})

	if got := model.(SetupModel).PlayerName(); got != defaultPlayerName {
		t.Errorf("name = %q, want %q", got, defaultPlayerName)
	}
}

func TestSetupModel_TypingIgnoredOnButton(t *testing.T) {
	model, _ := pressKeys(t, NewInitialSetupModel(80, 24),
		runeKey("x"), tea.KeyMsg{Type: tea.KeyTab}, runeKey("y"))

	if got := model.(SetupModel).PlayerName(); got != "x" {
		t.Errorf("name = %q, want x", got)
	}
}

func TestSetupModel_EscReturnsToMenu(t *testing.T) {
	_, cmd := NewInitialSetupModel(80, 24).Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc produced no command")
	}
	if _, ok := cmd().(QuitGameMsg); !ok {
		t.Errorf("got %T, want QuitGameMsg", cmd())
	}
}
