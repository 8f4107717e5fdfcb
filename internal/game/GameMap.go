package game

// Board is the playable rectangle. The wall runs along x=0, x=Width, y=0
// and y=Height; objects spawn strictly inside it.
type Board struct {
	Width  int
	Height int
}

func (b Board) IsWall(p Position) bool {
	if p.X <= 0 || p.Y <= 0 {
		return true
	}

	if p.X >= b.Width || p.Y >= b.Height {
		return true
	}

	return false
}

// InnerCells is the number of cells an object can spawn on.
func (b Board) InnerCells() int {
	if b.Width <= 1 || b.Height <= 1 {
		return 0
	}
	return (b.Width - 1) * (b.Height - 1)
}

type Cell int

const (
	CellEmpty Cell = iota
	CellWall
	CellFruit
	CellDynamite
	CellBody
	CellHead
	CellCrash
)

// GetGameMap rasterises a snapshot into rows of cells, wall included, so a
// renderer only has to map cells to glyphs. Later layers win: objects, then
// body, then head, then the crash marker of a dead snake.
func GetGameMap(snapshot Snapshot) [][]Cell {
	board := snapshot.Board
	if board.Width < 0 || board.Height < 0 {
		return nil
	}

	gameMap := make([][]Cell, board.Height+1)
	for row := 0; row <= board.Height; row++ {
		gameMap[row] = make([]Cell, board.Width+1)
		for col := 0; col <= board.Width; col++ {
			if board.IsWall(NewPosition(col, row)) {
				gameMap[row][col] = CellWall
			}
		}
	}

	put := func(p Position, c Cell) {
		if p.Y < 0 || p.Y > board.Height || p.X < 0 || p.X > board.Width {
			return
		}
		gameMap[p.Y][p.X] = c
	}

	for _, fruit := range snapshot.Fruits {
		put(fruit, CellFruit)
	}
	for _, dynamite := range snapshot.Dynamites {
		put(dynamite, CellDynamite)
	}
	for _, segment := range snapshot.Body {
		put(segment, CellBody)
	}
	if len(snapshot.Body) > 0 {
		if snapshot.Alive {
			put(snapshot.Head, CellHead)
		} else {
			put(snapshot.Head, CellCrash)
		}
	}

	return gameMap
}
