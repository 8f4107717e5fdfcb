package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Mshel/sshnake/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const leaderboardSize = 10

var errLeaderboardUnavailable = errors.New("leaderboard unavailable")

type GameOverOption int

const (
	GameOverRestart GameOverOption = iota
	GameOverLeaderboard
	GameOverMainMenu
	GameOverQuit
)

var gameOverLabels = []string{"RESTART", "LEADERBOARD", "MENU", "QUIT"}

// GameOverState holds the data and local state for rendering the game over screens.
type GameOverState struct {
	Final          game.Snapshot
	Recorded       bool
	SelectedButton GameOverOption
	ScreenWidth    int
	ScreenHeight   int
}

func (g *GameOverState) selectPrevious() {
	g.SelectedButton = max(GameOverRestart, g.SelectedButton-1)
}

func (g *GameOverState) selectNext() {
	g.SelectedButton = min(GameOverQuit, g.SelectedButton+1)
}

// LeaderboardState is the last page fetched from the HighScoreService.
type LeaderboardState struct {
	Scores []game.Score
	Total  int
	Err    error
	Loaded bool
}

type leaderboardLoadedMsg struct {
	scores []game.Score
	total  int
	err    error
}

func loadLeaderboard(highScores *game.HighScoreService) tea.Cmd {
	return func() tea.Msg {
		if highScores == nil {
			return leaderboardLoadedMsg{err: errLeaderboardUnavailable}
		}
		scores, err := highScores.GetHighScores(leaderboardSize, 0)
		if err != nil {
			return leaderboardLoadedMsg{err: err}
		}
		total, err := highScores.GetTotalScoreCount()
		return leaderboardLoadedMsg{scores: scores, total: total, err: err}
	}
}

// Styles for Game Over/Leaderboard
var (
	gameOverButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("7")).
				Padding(0, 3).
				Margin(1, 1).
				Bold(true)

	selectedButtonStyle = gameOverButtonStyle.
				Background(lipgloss.Color("4")).
				Foreground(lipgloss.Color("15")) // White/Bright text

	leaderboardHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("236")).
				Padding(0, 1).
				Align(lipgloss.Center)

	leaderboardRowStyle = lipgloss.NewStyle().
				Padding(0, 1)

	leaderboardBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(lipgloss.Color("8"))
)

// RenderGameOverScreen draws the death message, the final stats and the menu.
func (g *GameOverState) RenderGameOverScreen() string {
	messageStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("9")).
		Padding(1, 5).
		Align(lipgloss.Center)

	title := messageStyle.Render("G A M E   O V E R")

	stats := fmt.Sprintf("\nScore: %d\nLength: %d\nFruit eaten: %d\nDynamite hit: %d\n",
		g.Final.Score, len(g.Final.Body), g.Final.FruitsEaten, g.Final.DynamitesHit)
	if g.Recorded {
		stats += lipgloss.NewStyle().Faint(true).Render("Score saved to the leaderboard") + "\n"
	}

	buttons := make([]string, 0, len(gameOverLabels))
	for i, label := range gameOverLabels {
		if GameOverOption(i) == g.SelectedButton {
			buttons = append(buttons, selectedButtonStyle.Render(label))
		} else {
			buttons = append(buttons, gameOverButtonStyle.Render(label))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		stats,
		lipgloss.JoinHorizontal(lipgloss.Center, buttons...),
		helpStyle.Render("←/→ select  enter confirm  r restart"),
	)

	// Center the content on the screen
	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 2).Render(content),
	)
}

// RenderLeaderboardScreen draws the stored high scores as a table.
func RenderLeaderboardScreen(board LeaderboardState, width, height int) string {
	var tableContent strings.Builder

	rankWidth := 4
	nameWidth := 22
	scoreWidth := 8
	speedWidth := 7
	fruitWidth := 7
	dateWidth := 18

	switch {
	case !board.Loaded:
		tableContent.WriteString("Loading...\n")
	case board.Err != nil:
		tableContent.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(board.Err.Error()) + "\n")
	case len(board.Scores) == 0:
		tableContent.WriteString("No scores yet. Be the first!\n")
	default:
		// --- Header ---
		header := lipgloss.JoinHorizontal(lipgloss.Top,
			leaderboardHeaderStyle.Width(rankWidth).Render("#"),
			leaderboardHeaderStyle.Width(nameWidth).Render("Player"),
			leaderboardHeaderStyle.Width(scoreWidth).Render("Score"),
			leaderboardHeaderStyle.Width(speedWidth).Render("Speed"),
			leaderboardHeaderStyle.Width(fruitWidth).Render("Fruit"),
			leaderboardHeaderStyle.Width(dateWidth).Render("Played"),
		)
		tableContent.WriteString(header + "\n")

		// --- Rows ---
		for i, score := range board.Scores {
			row := lipgloss.JoinHorizontal(lipgloss.Top,
				leaderboardRowStyle.Width(rankWidth).Render(strconv.Itoa(i+1)),
				leaderboardRowStyle.Width(nameWidth).Render(score.PlayerName),
				leaderboardRowStyle.Width(scoreWidth).Render(strconv.Itoa(score.Score)),
				leaderboardRowStyle.Width(speedWidth).Render(strconv.Itoa(score.SpeedLevel)),
				leaderboardRowStyle.Width(fruitWidth).Render(strconv.Itoa(score.FruitsEaten)),
				leaderboardRowStyle.Width(dateWidth).Render(score.CreatedAt.Format("2006-01-02 15:04")),
			)
			tableContent.WriteString(leaderboardBorderStyle.Render(row) + "\n")
		}
	}

	// --- Title & Instructions ---
	title := lipgloss.NewStyle().Bold(true).Padding(1, 0).Render("TOP " + strconv.Itoa(leaderboardSize) + " SNAKES")
	footer := ""
	if board.Loaded && board.Err == nil {
		footer = lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("%d games played", board.Total))
	}
	instruction := lipgloss.NewStyle().Faint(true).Margin(1, 0).Render("Press ESC or ENTER to go back.")

	finalContent := lipgloss.JoinVertical(lipgloss.Center,
		title,
		tableContent.String(),
		footer,
		instruction,
	)

	return lipgloss.Place(width, height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 1).Render(finalContent),
	)
}
