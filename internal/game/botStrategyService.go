package game

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

const luaStrategyFunc = "getNextDirection"

var ErrNoStrategyFunc = errors.New("lua script does not define " + luaStrategyFunc)

// DefaultLuaStrategy circles clockwise along the inside of the wall.
const DefaultLuaStrategy = `
function getNextDirection(state)
	local head = state.head
	local dir = state.direction
	if dir == "RIGHT" and head.x + 1 >= state.width then return "DOWN" end
	if dir == "DOWN" and head.y + 1 >= state.height then return "LEFT" end
	if dir == "LEFT" and head.x - 1 <= 0 then return "UP" end
	if dir == "UP" and head.y - 1 <= 0 then return "RIGHT" end
	return dir
end
`

// LuaStrategy runs a user script's getNextDirection(state) on every move.
// The state table carries width, height, score, direction, head, body,
// fruits and dynamites; positions are {x=, y=} tables. The function returns
// a direction name ("UP", "DOWN", "LEFT", "RIGHT").
//
// An LState is not goroutine safe, so a LuaStrategy belongs to one
// GameManager.
type LuaStrategy struct {
	StrategyName string
	luaState     *lua.LState
	fallback     Strategy
}

func NewLuaStrategy(name string, definition string) (*LuaStrategy, error) {
	luaState := lua.NewState()
	if err := luaState.DoString(definition); err != nil {
		luaState.Close()
		return nil, fmt.Errorf("could not parse lua strategy %s: %w", name, err)
	}
	return newLuaStrategy(name, luaState)
}

func NewLuaStrategyFromFile(path string) (*LuaStrategy, error) {
	luaState := lua.NewState()
	if err := luaState.DoFile(path); err != nil {
		luaState.Close()
		return nil, fmt.Errorf("could not load lua strategy %s: %w", path, err)
	}
	return newLuaStrategy(path, luaState)
}

func newLuaStrategy(name string, luaState *lua.LState) (*LuaStrategy, error) {
	if luaState.GetGlobal(luaStrategyFunc).Type() != lua.LTFunction {
		luaState.Close()
		return nil, fmt.Errorf("%s: %w", name, ErrNoStrategyFunc)
	}

	return &LuaStrategy{
		StrategyName: name,
		luaState:     luaState,
		fallback:     GreedyStrategy,
	}, nil
}

func (s *LuaStrategy) Close() {
	s.luaState.Close()
}

// GetNextBestDirection falls back to the greedy strategy when the script
// errors or returns something that is not a direction.
func (s *LuaStrategy) GetNextBestDirection(snapshot Snapshot) Direction {
	dir, err := s.getScriptDirection(snapshot)
	if err != nil {
		return s.fallback.GetNextBestDirection(snapshot)
	}
	return dir
}

func (s *LuaStrategy) getScriptDirection(snapshot Snapshot) (Direction, error) {
	err := s.luaState.CallByParam(lua.P{
		Fn:      s.luaState.GetGlobal(luaStrategyFunc),
		NRet:    1,
		Protect: true,
	}, s.convertSnapshotToLuaTable(snapshot))
	if err != nil {
		return snapshot.Direction, fmt.Errorf("could not execute lua strategy %s: %w", s.StrategyName, err)
	}

	luaReturn := s.luaState.Get(-1)
	s.luaState.Pop(1)

	if luaReturn.Type() != lua.LTString {
		return snapshot.Direction, fmt.Errorf("lua strategy %s returned %s, expected string", s.StrategyName, luaReturn.Type().String())
	}

	return ParseDirection(lua.LVAsString(luaReturn))
}

func (s *LuaStrategy) convertSnapshotToLuaTable(snapshot Snapshot) *lua.LTable {
	state := s.luaState.NewTable()
	state.RawSetString("width", lua.LNumber(snapshot.Board.Width))
	state.RawSetString("height", lua.LNumber(snapshot.Board.Height))
	state.RawSetString("score", lua.LNumber(snapshot.Score))
	state.RawSetString("direction", lua.LString(snapshot.Direction.String()))
	state.RawSetString("head", s.convertPositionToLuaTable(snapshot.Head))
	state.RawSetString("body", s.convertPositionsToLuaTable(snapshot.Body))
	state.RawSetString("fruits", s.convertPositionsToLuaTable(snapshot.Fruits))
	state.RawSetString("dynamites", s.convertPositionsToLuaTable(snapshot.Dynamites))
	return state
}

func (s *LuaStrategy) convertPositionToLuaTable(p Position) *lua.LTable {
	tbl := s.luaState.NewTable()
	tbl.RawSetString("x", lua.LNumber(p.X))
	tbl.RawSetString("y", lua.LNumber(p.Y))
	return tbl
}

func (s *LuaStrategy) convertPositionsToLuaTable(positions []Position) *lua.LTable {
	tbl := s.luaState.NewTable()
	for _, p := range positions {
		tbl.Append(s.convertPositionToLuaTable(p))
	}
	return tbl
}
