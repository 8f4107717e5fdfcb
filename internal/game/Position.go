package game

import "fmt"

// Position is a cell on the board. Values are never mutated in place;
// moving produces a new Position.
type Position struct {
	X int
	Y int
}

func NewPosition(x int, y int) Position {
	return Position{X: x, Y: y}
}

func (p Position) Equals(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Step returns the neighbouring cell in direction d.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func containsPosition(positions []Position, p Position) bool {
	for _, candidate := range positions {
		if candidate.Equals(p) {
			return true
		}
	}
	return false
}
