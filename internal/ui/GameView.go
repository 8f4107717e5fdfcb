package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/Mshel/sshnake/internal/game"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Internal Game States for GameViewModel ---

type GameState int

const (
	StatePlaying GameState = iota
	StateGameOver
	StateLeaderboard
)

var (
	voidColor    = "233"
	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 0)

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	scoreLineStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	demoLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("13")).Padding(0, 1)

	// Each cell is rendered once here instead of per frame.
	cellGlyphs = map[game.Cell]string{
		game.CellEmpty:    lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Render(" "),
		game.CellWall:     lipgloss.NewStyle().Foreground(lipgloss.Color("172")).Render("▒"),
		game.CellFruit:    lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color("10")).Bold(true).Render("$"),
		game.CellDynamite: lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color("9")).Bold(true).Render("#"),
		game.CellBody:     lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color("87")).Render("O"),
		game.CellHead:     lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color("15")).Bold(true).Render("@"),
		game.CellCrash:    lipgloss.NewStyle().Background(lipgloss.Color("9")).Foreground(lipgloss.Color("15")).Bold(true).Render("X"),
	}
)

type gameKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Quit  key.Binding
}

var gameKeys = gameKeyMap{
	Up:    key.NewBinding(key.WithKeys("up", "w", "k"), key.WithHelp("↑/w", "up")),
	Down:  key.NewBinding(key.WithKeys("down", "s", "j"), key.WithHelp("↓/s", "down")),
	Left:  key.NewBinding(key.WithKeys("left", "a", "h"), key.WithHelp("←/a", "left")),
	Right: key.NewBinding(key.WithKeys("right", "d", "l"), key.WithHelp("→/d", "right")),
	Quit:  key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q/esc", "menu")),
}

// gameUpdateMsg tags a manager message with its source so frames from a
// replaced game are dropped.
type gameUpdateMsg struct {
	source *game.GameManager
	msg    tea.Msg
}

// --- GameViewModel Definition ---

type GameViewModel struct {
	TickCount    int
	ScreenWidth  int
	ScreenHeight int

	ctx         context.Context
	gameManager *game.GameManager // nil when only the leaderboard is shown
	highScores  *game.HighScoreService
	isDemo      bool

	snapshot game.Snapshot
	hasFrame bool

	gameState     GameState
	gameOverState GameOverState
	leaderboard   LeaderboardState
}

func NewGameModel(ctx context.Context, gm *game.GameManager, highScores *game.HighScoreService, isDemo bool,
	screenWidth int, screenHeight int) GameViewModel {
	return GameViewModel{
		ctx:          ctx,
		gameManager:  gm,
		highScores:   highScores,
		isDemo:       isDemo,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		gameState:    StatePlaying,
		gameOverState: GameOverState{
			ScreenWidth:  screenWidth,
			ScreenHeight: screenHeight,
		},
	}
}

// NewLeaderboardModel shows the leaderboard without a running game.
func NewLeaderboardModel(highScores *game.HighScoreService, screenWidth int, screenHeight int) GameViewModel {
	return GameViewModel{
		ctx:          context.Background(),
		highScores:   highScores,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		gameState:    StateLeaderboard,
	}
}

// --- Init/Update/View Methods ---

func (m GameViewModel) Init() tea.Cmd {
	if m.gameManager == nil {
		return loadLeaderboard(m.highScores)
	}
	return m.listenForGameUpdates()
}

func (m GameViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth, m.ScreenHeight = msg.Width, msg.Height
		m.gameOverState.ScreenWidth, m.gameOverState.ScreenHeight = msg.Width, msg.Height
		return m, nil

	case leaderboardLoadedMsg:
		m.leaderboard = LeaderboardState{Scores: msg.scores, Total: msg.total, Err: msg.err, Loaded: true}
		return m, nil

	case gameUpdateMsg:
		if msg.source != m.gameManager {
			return m, nil
		}
		return m.handleGameUpdate(msg.msg)

	case tea.KeyMsg:
		switch m.gameState {
		case StateLeaderboard:
			return m.updateLeaderboard(msg)
		case StateGameOver:
			return m.updateGameOver(msg)
		default:
			return m.updatePlaying(msg)
		}
	}

	return m, nil
}

func (m GameViewModel) handleGameUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case game.GameTickMsg:
		m.TickCount++
		m.snapshot = msg.Snapshot
		m.hasFrame = true
		return m, m.listenForGameUpdates()

	case game.SnakeDeadMsg:
		m.snapshot = msg.Snapshot
		m.hasFrame = true
		m.gameState = StateGameOver
		m.gameOverState.Final = msg.Snapshot
		m.gameOverState.Recorded = !m.isDemo && m.highScores != nil
		m.gameOverState.SelectedButton = GameOverRestart
		return m, nil
	}
	return m, m.listenForGameUpdates()
}

func (m GameViewModel) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, gameKeys.Quit) {
		return m, func() tea.Msg { return QuitGameMsg{} }
	}
	if m.isDemo || m.gameManager == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, gameKeys.Up):
		m.gameManager.SendDirection(game.Up)
	case key.Matches(msg, gameKeys.Down):
		m.gameManager.SendDirection(game.Down)
	case key.Matches(msg, gameKeys.Left):
		m.gameManager.SendDirection(game.Left)
	case key.Matches(msg, gameKeys.Right):
		m.gameManager.SendDirection(game.Right)
	}
	return m, nil
}

func (m GameViewModel) updateGameOver(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h", "shift+tab":
		m.gameOverState.selectPrevious()
	case "right", "l", "tab":
		m.gameOverState.selectNext()
	case "r":
		return m, func() tea.Msg { return RestartGameMsg{} }
	case "esc":
		return m, func() tea.Msg { return QuitGameMsg{} }
	case "q":
		return m, tea.Quit
	case "enter":
		switch m.gameOverState.SelectedButton {
		case GameOverRestart:
			return m, func() tea.Msg { return RestartGameMsg{} }
		case GameOverLeaderboard:
			m.gameState = StateLeaderboard
			m.leaderboard = LeaderboardState{}
			return m, loadLeaderboard(m.highScores)
		case GameOverMainMenu:
			return m, func() tea.Msg { return QuitGameMsg{} }
		case GameOverQuit:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m GameViewModel) updateLeaderboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		// Opened from a finished game: go back to its menu
		if m.gameManager != nil {
			m.gameState = StateGameOver
			return m, nil
		}
		return m, func() tea.Msg { return QuitGameMsg{} }
	}
	return m, nil
}

func (m GameViewModel) View() string {
	switch m.gameState {
	case StateGameOver:
		return m.gameOverState.RenderGameOverScreen()
	case StateLeaderboard:
		return RenderLeaderboardScreen(m.leaderboard, m.ScreenWidth, m.ScreenHeight)
	}

	if !m.hasFrame {
		return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, "Waiting for game manager...")
	}

	scoreLine := scoreLineStyle.Render(fmt.Sprintf("Score: %d", m.snapshot.Score))
	if m.isDemo {
		scoreLine = lipgloss.JoinHorizontal(lipgloss.Center, demoLabelStyle.Render("DEMO"), " ", scoreLine)
	}

	board := lipgloss.JoinVertical(lipgloss.Left,
		scoreLine,
		mapViewStyle.Render(renderMap(m.snapshot)),
	)

	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Top, board, statusPanelStyle.Render(m.renderStatusPanel())),
	)
}

func renderMap(snapshot game.Snapshot) string {
	var sb strings.Builder
	for y, row := range game.GetGameMap(snapshot) {
		if y > 0 {
			sb.WriteString("\n")
		}
		for _, cell := range row {
			sb.WriteString(cellGlyphs[cell])
		}
	}
	return sb.String()
}

// renderStatusPanel draws the stats and the controls.
func (m GameViewModel) renderStatusPanel() string {
	var statusContent strings.Builder

	statusContent.WriteString(lipgloss.NewStyle().Bold(true).Render("--- Snake ---") + "\n")
	statusContent.WriteString(fmt.Sprintf("Player: %s\n", m.gameManager.PlayerName))
	statusContent.WriteString(fmt.Sprintf("Speed: %d\n", m.gameManager.SpeedLevel))
	statusContent.WriteString(fmt.Sprintf("Length: %d\n", len(m.snapshot.Body)))
	statusContent.WriteString(fmt.Sprintf("Fruit: %d\n", m.snapshot.FruitsEaten))
	statusContent.WriteString(fmt.Sprintf("Dynamite: %d\n", m.snapshot.DynamitesHit))
	statusContent.WriteString(fmt.Sprintf("Heading: %s\n", m.snapshot.Direction))

	statusContent.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Controls ---") + "\n")
	if m.isDemo {
		statusContent.WriteString("Autopilot is driving\n")
	} else {
		statusContent.WriteString("WASD / Arrows: Move\n")
	}
	statusContent.WriteString("Q / Esc: Main menu\n")
	statusContent.WriteString("Ctrl+C: Quit\n")

	return statusContent.String()
}

// listenForGameUpdates blocks until the manager publishes or the game is cancelled.
func (m GameViewModel) listenForGameUpdates() tea.Cmd {
	gm, ctx := m.gameManager, m.ctx
	return func() tea.Msg {
		select {
		case msg := <-gm.UpdateChannel:
			return gameUpdateMsg{source: gm, msg: msg}
		case <-ctx.Done():
			return nil
		}
	}
}
