package game

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestLuaStrategy(t *testing.T, script string) *LuaStrategy {
	t.Helper()
	strategy, err := NewLuaStrategy("test", script)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(strategy.Close)
	return strategy
}

func TestLuaStrategy_ReadsState(t *testing.T) {
	strategy := newTestLuaStrategy(t, `
function getNextDirection(state)
	if #state.fruits > 0 and state.fruits[1].y < state.head.y then
		return "up"
	end
	return state.direction
end
`)

	gs := newTestState(t)
	if got := strategy.GetNextBestDirection(gs.Snapshot()); got != Right {
		t.Errorf("no fruit: got %v, want RIGHT", got)
	}

	gs.AddFruit(Position{6, 2})
	if got := strategy.GetNextBestDirection(gs.Snapshot()); got != Up {
		t.Errorf("fruit above: got %v, want UP", got)
	}
}

func TestLuaStrategy_DefaultScriptFollowsWall(t *testing.T) {
	strategy := newTestLuaStrategy(t, DefaultLuaStrategy)
	gs := newTestState(t)

	for i := 0; i < 500; i++ {
		dir := strategy.GetNextBestDirection(gs.Snapshot())
		if err := gs.SetDirection(dir); err != nil {
			t.Fatal(err)
		}
		if gs.Step() == StepCrashed {
			t.Fatalf("default script crashed on step %d\n%s", i, dumpState(gs.Snapshot()))
		}
	}
}

func TestLuaStrategy_FallsBackOnBadResult(t *testing.T) {
	tests := map[string]string{
		"runtime error": `function getNextDirection(state) error("boom") end`,
		"number":        `function getNextDirection(state) return 3 end`,
		"unknown name":  `function getNextDirection(state) return "SIDEWAYS" end`,
	}

	for name, script := range tests {
		t.Run(name, func(t *testing.T) {
			strategy := newTestLuaStrategy(t, script)
			gs := newTestState(t)
			gs.AddFruit(Position{6, 14})

			// the greedy fallback eats the adjacent fruit
			if got := strategy.GetNextBestDirection(gs.Snapshot()); got != Up {
				t.Errorf("got %v, want UP from the fallback", got)
			}
		})
	}
}

func TestNewLuaStrategy_Errors(t *testing.T) {
	if _, err := NewLuaStrategy("syntax", "function ("); err == nil {
		t.Error("expected a parse error")
	}
	if _, err := NewLuaStrategy("empty", "x = 1"); !errors.Is(err, ErrNoStrategyFunc) {
		t.Errorf("err = %v, want ErrNoStrategyFunc", err)
	}
}

func TestNewLuaStrategyFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "down.lua")
	script := `function getNextDirection(state) return "DOWN" end`
	if err := os.WriteFile(path, []byte(script), 0o600); err != nil {
		t.Fatal(err)
	}

	strategy, err := NewLuaStrategyFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer strategy.Close()

	if got := strategy.GetNextBestDirection(newTestState(t).Snapshot()); got != Down {
		t.Errorf("got %v, want DOWN", got)
	}
}
