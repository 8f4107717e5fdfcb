package game

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sshnake.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSettings_Defaults(t *testing.T) {
	settings, err := LoadSettings("")
	if err != nil {
		t.Fatal(err)
	}

	if settings.GameBoard() != (Board{Width: 79, Height: 21}) {
		t.Errorf("board = %+v", settings.GameBoard())
	}
	if settings.SpeedLevel != 1 || settings.SpawnInterval != 6*time.Second {
		t.Errorf("speed = %d spawn = %s", settings.SpeedLevel, settings.SpawnInterval)
	}
	if settings.Server.Port != "6996" || settings.Server.MaxConnectionsPerIP != 2 {
		t.Errorf("server = %+v", settings.Server)
	}
}

func TestLoadSettings_Overlay(t *testing.T) {
	path := writeSettings(t, `
board:
  width: 40
  height: 20
speed_level: 3
spawn_interval: 2s
database_path: /tmp/scores.db
server:
  port: "2222"
`)

	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}

	if settings.GameBoard() != (Board{Width: 40, Height: 20}) {
		t.Errorf("board = %+v", settings.GameBoard())
	}
	if settings.SpeedLevel != 3 || settings.SpawnInterval != 2*time.Second {
		t.Errorf("speed = %d spawn = %s", settings.SpeedLevel, settings.SpawnInterval)
	}
	if settings.DatabasePath != "/tmp/scores.db" || settings.Server.Port != "2222" {
		t.Errorf("settings = %+v", settings)
	}
	// untouched keys keep their defaults
	if settings.Server.Host != "0.0.0.0" {
		t.Errorf("host = %q", settings.Server.Host)
	}
}

func TestLoadSettings_EnvHostKey(t *testing.T) {
	t.Setenv("SSHNAKE_PRIVATE_KEY_PATH", "/keys/host_ed25519")

	settings, err := LoadSettings("")
	if err != nil {
		t.Fatal(err)
	}
	if settings.Server.HostKeyPath != "/keys/host_ed25519" {
		t.Errorf("host key = %q", settings.Server.HostKeyPath)
	}
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"speed", "speed_level: 9\n", ErrUnknownSpeedLevel},
		{"tiny board", "board:\n  width: 1\n  height: 1\n", ErrInvalidBounds},
		{"snake does not fit", "board:\n  width: 40\n  height: 10\n", ErrInvalidBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSettings(writeSettings(t, tt.body))
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadSettings_MissingFile(t *testing.T) {
	if _, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestTickDurationForLevel(t *testing.T) {
	want := map[int]time.Duration{1: 90, 2: 75, 3: 60, 4: 45, 5: 35}
	for level, ms := range want {
		got, err := TickDurationForLevel(level)
		if err != nil || got != ms*time.Millisecond {
			t.Errorf("level %d = %s, %v; want %dms", level, got, err, ms)
		}
	}
}
