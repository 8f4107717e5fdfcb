package game

import "testing"

func TestGetGameMap_Layers(t *testing.T) {
	gs := newTestState(t)
	gs.AddFruit(Position{10, 3})
	gs.AddDynamite(Position{11, 3})

	gameMap := GetGameMap(gs.Snapshot())

	if len(gameMap) != DefaultBoardHeight+1 || len(gameMap[0]) != DefaultBoardWidth+1 {
		t.Fatalf("map is %dx%d, want %dx%d", len(gameMap[0]), len(gameMap), DefaultBoardWidth+1, DefaultBoardHeight+1)
	}

	tests := []struct {
		p    Position
		want Cell
	}{
		{Position{0, 0}, CellWall},
		{Position{DefaultBoardWidth, DefaultBoardHeight}, CellWall},
		{Position{1, 1}, CellEmpty},
		{Position{10, 3}, CellFruit},
		{Position{11, 3}, CellDynamite},
		{Position{3, 15}, CellBody},
		{Position{6, 15}, CellHead},
	}
	for _, tt := range tests {
		if got := gameMap[tt.p.Y][tt.p.X]; got != tt.want {
			t.Errorf("cell %v = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestGetGameMap_CrashOverWall(t *testing.T) {
	gs := newTestState(t)
	for gs.Step() != StepCrashed {
	}

	snapshot := gs.Snapshot()
	gameMap := GetGameMap(snapshot)
	if got := gameMap[snapshot.Head.Y][snapshot.Head.X]; got != CellCrash {
		t.Fatalf("crash cell = %v, want CellCrash\n%s", got, dumpState(snapshot))
	}
}
