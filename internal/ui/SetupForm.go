package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	playerNameLimit   = 20
	defaultPlayerName = "anonymous"
)

// Define styles
var (
	focusedColor = lipgloss.Color("205") // Bright Pink/Purple
	blurredColor = lipgloss.Color("240")
	focusedStyle = lipgloss.NewStyle().Foreground(focusedColor)
	blurredStyle = lipgloss.NewStyle().Foreground(blurredColor)
	helpStyle    = blurredStyle

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder())

	submitButtonStyle = buttonStyle.
				BorderForeground(focusedColor).
				Padding(0, 1)

	blurredButtonStyle = buttonStyle.
				BorderForeground(blurredColor).
				Padding(0, 1)
)

// SetupModel asks for the name the score is saved under.
type SetupModel struct {
	nameInput  textinput.Model
	focusIndex int // 0: Name, 1: Submit
	width      int
	height     int
}

func NewInitialSetupModel(w, h int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "Your snake's name"
	ti.Focus()
	ti.CharLimit = playerNameLimit
	ti.PromptStyle = focusedStyle
	ti.TextStyle = focusedStyle

	return SetupModel{
		nameInput: ti,
		width:     w,
		height:    h,
	}
}

// Init sends a command to start the cursor blinking
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.toggleFocus()
			return m, nil
		case "enter":
			if m.focusIndex == 0 {
				m.toggleFocus()
				return m, nil
			}
			name := m.PlayerName()
			return m, func() tea.Msg { return SetupSubmitMsg{Name: name} }
		case "esc":
			return m, func() tea.Msg { return QuitGameMsg{} }
		}

		if m.focusIndex == 0 {
			var cmd tea.Cmd
			m.nameInput, cmd = m.nameInput.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m *SetupModel) toggleFocus() {
	if m.focusIndex == 0 {
		m.focusIndex = 1
		m.nameInput.Blur()
		return
	}
	m.focusIndex = 0
	m.nameInput.Focus()
}

// PlayerName returns the trimmed input, or a placeholder name when empty.
func (m SetupModel) PlayerName() string {
	name := strings.TrimSpace(m.nameInput.Value())
	if name == "" {
		return defaultPlayerName
	}
	return name
}

func (m SetupModel) View() string {
	center := func(s string) string {
		return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(s)
	}

	var b strings.Builder

	b.WriteString(center(focusedStyle.Render("Who is playing?")))
	b.WriteString("\n\n")
	b.WriteString(center(m.nameInput.View()))
	b.WriteString("\n\n")

	submitText := "Play"
	if m.focusIndex == 1 {
		b.WriteString(center(submitButtonStyle.Render(submitText)))
	} else {
		b.WriteString(center(blurredButtonStyle.Render(submitText)))
	}
	b.WriteString("\n\n")

	b.WriteString(center(helpStyle.Render("(tab to navigate, enter to confirm, esc for menu, ctrl+c to quit)")))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
