package game

import (
	"errors"
	"math"
	"strings"
)

var ErrInvalidDirection = errors.New("no such direction")

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every valid direction in a stable order.
var Directions = []Direction{Up, Down, Left, Right}

func (d Direction) IsValid() bool {
	return d >= Up && d <= Right
}

// Delta is the unit offset applied to a head moving in d. Y grows downward.
func (d Direction) Delta() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return d
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	}
	return "INVALID"
}

// IsOpposite reports whether turning from a to b would reverse the snake
// into its own neck.
func IsOpposite(a, b Direction) bool {
	return a.IsValid() && b.IsValid() && a.Opposite() == b
}

// ParseDirection accepts the names produced by Direction.String, in any case.
func ParseDirection(name string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "UP":
		return Up, nil
	case "DOWN":
		return Down, nil
	case "LEFT":
		return Left, nil
	case "RIGHT":
		return Right, nil
	}
	return Up, ErrInvalidDirection
}

func GetManhattanDistance(p1, p2 Position) int {
	dx := math.Abs(float64(p1.X - p2.X))
	dy := math.Abs(float64(p1.Y - p2.Y))
	return int(dx + dy)
}
