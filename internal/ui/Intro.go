package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Mshel/sshnake/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type IntroOption int

const (
	OptionStart IntroOption = iota
	OptionDemo
	OptionLeaderboard
	OptionQuit
)

var introOptionLabels = []string{"Start", "Watch Demo", "Leaderboard", "Quit"}

// IntroModel holds the state for the main menu.
type IntroModel struct {
	selected   IntroOption
	speedLevel int
	width      int
	height     int
}

func NewIntroModel(speedLevel int, w, h int) IntroModel {
	if _, err := game.TickDurationForLevel(speedLevel); err != nil {
		speedLevel = game.DefaultSpeedLevel
	}
	return IntroModel{selected: OptionStart, speedLevel: speedLevel, width: w, height: h}
}

func (m IntroModel) Init() tea.Cmd { return nil }

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch s := msg.String(); s {
		case "left", "h", "up", "k":
			m.selected = (m.selected + IntroOption(len(introOptionLabels)) - 1) % IntroOption(len(introOptionLabels))
		case "right", "l", "down", "j", "tab":
			m.selected = (m.selected + 1) % IntroOption(len(introOptionLabels))
		case "1", "2", "3", "4", "5":
			m.speedLevel, _ = strconv.Atoi(s)
		case "s":
			return m, m.submit(OptionStart)
		case "q":
			return m, m.submit(OptionQuit)
		case "enter":
			return m, m.submit(m.selected)
		}
	}
	return m, nil
}

func (m IntroModel) submit(option IntroOption) tea.Cmd {
	return func() tea.Msg { return IntroSubmitMsg{Option: option, SpeedLevel: m.speedLevel} }
}

var snakeAscii = `
########   #######  ###   ###########   ###    ##    #######
##         ###  ##  ###   ###     ###   ###   ##     ###
##         ###  ##  ###   ###     ###   ###  ##      ###
##         ###  ##  ###   ###########   #######      #######
########   ###  ##  ###   ###     ###   ###  ##      ###
      ##   ###  ##  ###   ###     ###   ###   ##     ###
      ##   ###  ######    ###     ###   ###    ##    ###
########   ###  ######    ###     ###   ###     ##   #######
`

var (
	asciiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("87"))

	introButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("12")).
				Padding(0, 2).
				Margin(1, 1).
				Border(lipgloss.RoundedBorder())

	introSelectedButtonStyle = introButtonStyle.
					Background(lipgloss.Color("87")).
					Foreground(lipgloss.Color("0"))

	speedStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	selectedSpeedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
)

func (m IntroModel) View() string {
	var sb strings.Builder
	sb.WriteString(asciiStyle.Render(snakeAscii))
	sb.WriteString("\n")

	buttons := make([]string, 0, len(introOptionLabels))
	for i, label := range introOptionLabels {
		if IntroOption(i) == m.selected {
			buttons = append(buttons, introSelectedButtonStyle.Render(label))
		} else {
			buttons = append(buttons, introButtonStyle.Render(label))
		}
	}

	var speeds strings.Builder
	speeds.WriteString(speedStyle.Render("Speed: "))
	for level := 1; level <= len(game.SpeedLevels); level++ {
		label := fmt.Sprintf(" %d ", level)
		if level == m.speedLevel {
			speeds.WriteString(selectedSpeedStyle.Render("[" + strconv.Itoa(level) + "]"))
		} else {
			speeds.WriteString(speedStyle.Render(label))
		}
	}

	help := helpStyle.Render("1-5 speed  ←/→ select  enter confirm  s start  q quit")

	content := lipgloss.JoinVertical(lipgloss.Center,
		sb.String(),
		speeds.String(),
		lipgloss.JoinHorizontal(lipgloss.Center, buttons...),
		help,
	)

	// Center the entire view within the terminal
	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}
