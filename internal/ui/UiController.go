package ui

import (
	"context"
	"errors"

	"github.com/Mshel/sshnake/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	GameScreen
)

// Messages for state transitions
type IntroSubmitMsg struct {
	Option     IntroOption
	SpeedLevel int
}

type SetupSubmitMsg struct {
	Name string
}

// RestartGameMsg starts a new game with the same player and speed.
type RestartGameMsg struct{}

// QuitGameMsg switches back to the IntroScreen.
type QuitGameMsg struct{}

// gameLoopDoneMsg is returned by the command running a GameManager loop.
type gameLoopDoneMsg struct {
	err error
}

// StrategyFactory builds a fresh autopilot for one demo game. The returned
// strategy is closed when the game ends if it has a Close method.
type StrategyFactory func() (game.Strategy, error)

type ControllerDeps struct {
	Settings    game.Settings
	HighScores  *game.HighScoreService // nil disables the leaderboard
	Logger      *log.Logger
	NewStrategy StrategyFactory
	// DemoOnly starts straight into an autopilot game.
	DemoOnly bool
}

type ControllerModel struct {
	CurrentScreen Screen
	deps          ControllerDeps

	IntroModel tea.Model
	SetupModel tea.Model
	GameModel  tea.Model

	PlayerName string
	SpeedLevel int
	isDemo     bool

	cancelGame context.CancelFunc

	ScreenWidth  int
	ScreenHeight int
}

func NewControllerModel(deps ControllerDeps, screenWidth int, screenHeight int) *ControllerModel {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}

	return &ControllerModel{
		deps:          deps,
		CurrentScreen: IntroScreen,
		SpeedLevel:    deps.Settings.SpeedLevel,

		IntroModel: NewIntroModel(deps.Settings.SpeedLevel, screenWidth, screenHeight),
		SetupModel: NewInitialSetupModel(screenWidth, screenHeight),

		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

func (m *ControllerModel) Init() tea.Cmd {
	if m.deps.DemoOnly {
		return func() tea.Msg { return IntroSubmitMsg{Option: OptionDemo, SpeedLevel: m.SpeedLevel} }
	}
	return m.IntroModel.Init()
}

func (m *ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case GameScreen:
		if m.GameModel != nil {
			return m.GameModel.View()
		}
		return "Game Loading..."
	default:
		return "Unknown Screen"
	}
}

func (m *ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// --- 1. Global Key Check (Check before the main switch) ---
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "ctrl+c" {
		m.stopGame()
		return m, tea.Quit
	}

	// --- 2. State Transition Message Handling ---
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth, m.ScreenHeight = msg.Width, msg.Height
		m.IntroModel, _ = m.IntroModel.Update(msg)
		m.SetupModel, _ = m.SetupModel.Update(msg)
		if m.GameModel != nil {
			m.GameModel, _ = m.GameModel.Update(msg)
		}
		return m, nil

	case IntroSubmitMsg:
		m.SpeedLevel = msg.SpeedLevel
		switch msg.Option {
		case OptionStart:
			m.CurrentScreen = SetupScreen
			return m, m.SetupModel.Init()
		case OptionDemo:
			m.isDemo = true
			m.PlayerName = "autopilot"
			return m, m.startGame()
		case OptionLeaderboard:
			m.CurrentScreen = GameScreen
			m.GameModel = NewLeaderboardModel(m.deps.HighScores, m.ScreenWidth, m.ScreenHeight)
			return m, m.GameModel.Init()
		case OptionQuit:
			return m, tea.Quit
		}

	case SetupSubmitMsg:
		m.isDemo = false
		m.PlayerName = msg.Name
		return m, m.startGame()

	case RestartGameMsg:
		return m, m.startGame()

	case QuitGameMsg:
		m.stopGame()
		m.isDemo = false
		m.CurrentScreen = IntroScreen
		m.GameModel = nil
		return m, m.IntroModel.Init()

	case gameLoopDoneMsg:
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.deps.Logger.Error("Game loop failed", "player", m.PlayerName, "error", msg.err)
		}
		return m, nil
	}

	// --- 3. Message Delegation (Pass to the active model for all other messages) ---
	switch m.CurrentScreen {
	case IntroScreen:
		m.IntroModel, cmd = m.IntroModel.Update(msg)
	case SetupScreen:
		m.SetupModel, cmd = m.SetupModel.Update(msg)
	case GameScreen:
		if m.GameModel != nil {
			m.GameModel, cmd = m.GameModel.Update(msg)
		}
	}

	return m, cmd
}

// startGame replaces any running game with a fresh GameState.
func (m *ControllerModel) startGame() tea.Cmd {
	m.stopGame()

	config := game.ManagerConfig{
		PlayerName: m.PlayerName,
		SpeedLevel: m.SpeedLevel,
		Settings:   m.deps.Settings,
		Logger:     m.deps.Logger,
	}
	if m.deps.HighScores != nil {
		config.Recorder = m.deps.HighScores
	}

	var strategy game.Strategy
	if m.isDemo {
		var err error
		strategy, err = m.newStrategy()
		if err != nil {
			m.deps.Logger.Error("Could not build autopilot, using greedy strategy", "error", err)
			strategy = game.GreedyStrategy
		}
		config.Strategy = strategy
	}

	gameManager, err := game.NewGameManager(config)
	if err != nil {
		m.deps.Logger.Error("Could not start game", "error", err)
		closeStrategy(strategy)
		return tea.Quit
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelGame = cancel
	m.CurrentScreen = GameScreen
	m.GameModel = NewGameModel(ctx, gameManager, m.deps.HighScores, m.isDemo, m.ScreenWidth, m.ScreenHeight)

	// the strategy is closed on the loop's goroutine, after its last use
	runLoop := func() tea.Msg {
		err := gameManager.StartGameLoop(ctx)
		closeStrategy(strategy)
		return gameLoopDoneMsg{err: err}
	}

	return tea.Batch(runLoop, m.GameModel.Init())
}

func (m *ControllerModel) newStrategy() (game.Strategy, error) {
	if m.deps.NewStrategy == nil {
		return game.GreedyStrategy, nil
	}
	return m.deps.NewStrategy()
}

func (m *ControllerModel) stopGame() {
	if m.cancelGame != nil {
		m.cancelGame()
		m.cancelGame = nil
	}
}

func closeStrategy(strategy game.Strategy) {
	if closer, ok := strategy.(interface{ Close() }); ok {
		closer.Close()
	}
}

// AutopilotFactory loads the Lua script at path for every demo game, or
// uses the greedy strategy when path is empty.
func AutopilotFactory(path string) StrategyFactory {
	return func() (game.Strategy, error) {
		if path == "" {
			return game.GreedyStrategy, nil
		}
		return game.NewLuaStrategyFromFile(path)
	}
}
