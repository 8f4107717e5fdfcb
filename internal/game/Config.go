package game

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// An 80x23 terminal leaves a 79x21 play area once the left column and
	// the score line are taken out.
	DefaultBoardWidth  = 79
	DefaultBoardHeight = 21

	DefaultSpawnInterval = 6 * time.Second
	DefaultSpeedLevel    = 1

	directionBufferSize = 10
	updateBufferSize    = 16
)

// SpeedLevels maps the menu keys 1-5 to the delay between two moves.
var SpeedLevels = map[int]time.Duration{
	1: 90 * time.Millisecond,
	2: 75 * time.Millisecond,
	3: 60 * time.Millisecond,
	4: 45 * time.Millisecond,
	5: 35 * time.Millisecond,
}

var ErrUnknownSpeedLevel = errors.New("unknown speed level")

func TickDurationForLevel(level int) (time.Duration, error) {
	d, ok := SpeedLevels[level]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownSpeedLevel, level)
	}
	return d, nil
}

type Settings struct {
	Board struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"board"`
	SpeedLevel      int           `yaml:"speed_level"`
	SpawnInterval   time.Duration `yaml:"spawn_interval"`
	DatabasePath    string        `yaml:"database_path"`
	AutopilotScript string        `yaml:"autopilot_script"`
	LogLevel        string        `yaml:"log_level"`
	LogFile         string        `yaml:"log_file"`
	Server          struct {
		Host                string `yaml:"host"`
		Port                string `yaml:"port"`
		HostKeyPath         string `yaml:"host_key_path"`
		MaxConnectionsPerIP int    `yaml:"max_connections_per_ip"`
	} `yaml:"server"`
}

func DefaultSettings() Settings {
	var s Settings
	s.Board.Width = DefaultBoardWidth
	s.Board.Height = DefaultBoardHeight
	s.SpeedLevel = DefaultSpeedLevel
	s.SpawnInterval = DefaultSpawnInterval
	s.DatabasePath = "highscores.db"
	s.LogLevel = "info"
	s.LogFile = "sshnake.log"
	s.Server.Host = "0.0.0.0"
	s.Server.Port = "6996"
	s.Server.MaxConnectionsPerIP = 2
	return s
}

// LoadSettings overlays the YAML file at path on DefaultSettings. An empty
// path returns the defaults. SSHNAKE_PRIVATE_KEY_PATH overrides the host key.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return settings, fmt.Errorf("failed to read settings %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return settings, fmt.Errorf("failed to parse settings %s: %w", path, err)
		}
	}

	if keyPath := os.Getenv("SSHNAKE_PRIVATE_KEY_PATH"); keyPath != "" {
		settings.Server.HostKeyPath = keyPath
	}

	if err := settings.Validate(); err != nil {
		return settings, err
	}

	return settings, nil
}

func (s Settings) Validate() error {
	if s.Board.Width <= 1 || s.Board.Height <= 1 {
		return fmt.Errorf("board %dx%d: %w", s.Board.Width, s.Board.Height, ErrInvalidBounds)
	}
	// the snake spawns on row 15 from x=3 to x=6
	if s.Board.Width <= snakeStartX+SnakeInitialSize || s.Board.Height <= snakeStartY {
		return fmt.Errorf("board %dx%d is too small for the starting snake: %w",
			s.Board.Width, s.Board.Height, ErrInvalidBounds)
	}
	if _, err := TickDurationForLevel(s.SpeedLevel); err != nil {
		return err
	}
	if s.SpawnInterval <= 0 {
		return fmt.Errorf("spawn interval must be positive, got %s", s.SpawnInterval)
	}
	return nil
}

func (s Settings) GameBoard() Board {
	return Board{Width: s.Board.Width, Height: s.Board.Height}
}
