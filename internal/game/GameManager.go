package game

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// GameTickMsg carries the state after a move or a spawn.
type GameTickMsg struct {
	Snapshot Snapshot
	Result   StepResult
}

// SnakeDeadMsg is the last message a GameManager publishes.
type SnakeDeadMsg struct {
	Snapshot   Snapshot
	PlayerName string
	SpeedLevel int
}

var ErrGameLoopRunning = errors.New("game loop already running")

type ManagerConfig struct {
	PlayerName string
	SpeedLevel int
	Settings   Settings
	// Strategy, when set, steers the snake and keyboard input is ignored.
	Strategy Strategy
	Recorder ScoreRecorder
	Logger   *log.Logger
	// Seed 0 seeds from the clock.
	Seed int64
}

// GameManager drives one GameState. The state never leaves the goroutine
// running StartGameLoop; the UI reads snapshots from UpdateChannel and
// writes to DirectionChannel.
type GameManager struct {
	DirectionChannel chan Direction
	UpdateChannel    chan tea.Msg

	PlayerName string
	SpeedLevel int

	state         *GameState
	strategy      Strategy
	recorder      ScoreRecorder
	logger        *log.Logger
	tickDuration  time.Duration
	spawnInterval time.Duration
	isRunning     atomic.Bool
}

func NewGameManager(config ManagerConfig) (*GameManager, error) {
	settings := config.Settings
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	speedLevel := config.SpeedLevel
	if speedLevel == 0 {
		speedLevel = settings.SpeedLevel
	}
	tickDuration, err := TickDurationForLevel(speedLevel)
	if err != nil {
		return nil, err
	}

	opts := []GameStateOption{WithBoard(settings.GameBoard())}
	if config.Seed != 0 {
		opts = append(opts, WithSeed(config.Seed))
	}

	logger := config.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &GameManager{
		DirectionChannel: make(chan Direction, directionBufferSize),
		UpdateChannel:    make(chan tea.Msg, updateBufferSize),
		PlayerName:       config.PlayerName,
		SpeedLevel:       speedLevel,
		state:            NewGameState(opts...),
		strategy:         config.Strategy,
		recorder:         config.Recorder,
		logger:           logger.With("player", config.PlayerName),
		tickDuration:     tickDuration,
		spawnInterval:    settings.SpawnInterval,
	}, nil
}

// StartGameLoop blocks until the snake dies or ctx is cancelled. One fruit
// and one dynamite are placed before the first move, then one of each every
// spawn interval.
func (gm *GameManager) StartGameLoop(ctx context.Context) error {
	if !gm.isRunning.CompareAndSwap(false, true) {
		return ErrGameLoopRunning
	}
	defer gm.isRunning.Store(false)

	gm.logger.Info("Game loop started.", "speed_level", gm.SpeedLevel, "tick", gm.tickDuration)

	gm.processSpawnTick()
	gm.publish(GameTickMsg{Snapshot: gm.state.Snapshot(), Result: StepMoved})

	moveTicker := time.NewTicker(gm.tickDuration)
	defer moveTicker.Stop()
	spawnTicker := time.NewTicker(gm.spawnInterval)
	defer spawnTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			gm.logger.Info("Game loop cancelled.", "score", gm.state.Score())
			return ctx.Err()

		case dir := <-gm.DirectionChannel:
			// 1. INPUT: Process immediate player input
			gm.processPlayerInput(dir)

		case <-spawnTicker.C:
			// 2. SPAWN: New hazard and reward
			gm.processSpawnTick()
			gm.publish(GameTickMsg{Snapshot: gm.state.Snapshot(), Result: StepMoved})

		case <-moveTicker.C:
			// 3. GAME TICK: Move the snake and resolve what it ran into
			result := gm.processGameTick()
			if result == StepCrashed {
				gm.finishGame(ctx)
				gm.logger.Info("Game loop stopped.", "score", gm.state.Score())
				return nil
			}
			gm.publish(GameTickMsg{Snapshot: gm.state.Snapshot(), Result: result})
		}
	}
}

func (gm *GameManager) processPlayerInput(dir Direction) {
	if gm.strategy != nil {
		return
	}
	if err := gm.state.SetDirection(dir); err != nil {
		gm.logger.Warn("Dropping direction input", "direction", int(dir), "error", err)
	}
}

func (gm *GameManager) processGameTick() StepResult {
	if gm.strategy != nil {
		next := gm.strategy.GetNextBestDirection(gm.state.Snapshot())
		if err := gm.state.SetDirection(next); err != nil {
			gm.logger.Warn("Strategy returned an invalid direction", "direction", int(next), "error", err)
		}
	}

	result := gm.state.Step()
	switch result {
	case StepAteFruit:
		gm.logger.Debug("Fruit eaten", "score", gm.state.Score(), "length", len(gm.state.SnakeBody()))
	case StepHitDynamite:
		gm.logger.Debug("Dynamite hit", "score", gm.state.Score())
	case StepCrashed:
		gm.logger.Info("Snake crashed", "at", gm.state.SnakeHead(), "score", gm.state.Score())
	}
	return result
}

func (gm *GameManager) processSpawnTick() {
	if _, err := gm.state.SpawnFruit(); err != nil {
		gm.logger.Warn("Could not spawn fruit", "error", err)
	}
	if _, err := gm.state.SpawnDynamite(); err != nil {
		gm.logger.Warn("Could not spawn dynamite", "error", err)
	}
}

// finishGame records the score unless the game was a demo, then hands the
// final snapshot to the UI.
func (gm *GameManager) finishGame(ctx context.Context) {
	snapshot := gm.state.Snapshot()

	if gm.recorder != nil && gm.strategy == nil {
		err := gm.recorder.SavePlayersHighScore(gm.PlayerName, snapshot.Score, gm.SpeedLevel, snapshot.FruitsEaten)
		if err != nil {
			gm.logger.Error("High score persist failed", "error", err)
		}
	}

	select {
	case gm.UpdateChannel <- SnakeDeadMsg{Snapshot: snapshot, PlayerName: gm.PlayerName, SpeedLevel: gm.SpeedLevel}:
	case <-ctx.Done():
	}
}

// publish never blocks the loop; a renderer that falls behind only misses
// intermediate frames.
func (gm *GameManager) publish(msg tea.Msg) {
	select {
	case gm.UpdateChannel <- msg:
	default:
	}
}

// SendDirection queues player input without blocking the caller.
func (gm *GameManager) SendDirection(dir Direction) {
	select {
	case gm.DirectionChannel <- dir:
	default:
	}
}

func (gm *GameManager) IsRunning() bool {
	return gm.isRunning.Load()
}

func (gm *GameManager) Board() Board {
	return gm.state.Board()
}
