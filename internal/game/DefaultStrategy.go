package game

import (
	"math"
)

// DefaultStrategy is a greedy autopilot: stay alive, avoid dynamite, head
// for the nearest fruit.
type DefaultStrategy struct{}

// GetNextBestDirection ranks moves by a strict priority hierarchy.
func (s *DefaultStrategy) GetNextBestDirection(snapshot Snapshot) Direction {
	if len(snapshot.Body) < 2 {
		return snapshot.Direction
	}

	head := snapshot.Head
	validMoves := make(map[Direction]Position)

	// --- 1. Filter and Collect All Valid Moves (Wall and Collision Avoidance) ---
	for _, dir := range Directions {
		// Prevent moving backwards
		if IsOpposite(snapshot.Direction, dir) {
			continue
		}

		next := head.Step(dir)

		if snapshot.Board.IsWall(next) {
			continue
		}

		// The tail cell frees up on this move unless a fruit is eaten.
		if containsPosition(snapshot.Body[1:len(snapshot.Body)-1], next) {
			continue
		}

		validMoves[dir] = next
	}

	if len(validMoves) == 0 {
		return snapshot.Direction // Trapped
	}

	// P1: Prefer moves that do not step on dynamite
	safeMoves := make(map[Direction]Position)
	for dir, next := range validMoves {
		if !containsPosition(snapshot.Dynamites, next) {
			safeMoves[dir] = next
		}
	}
	if len(safeMoves) > 0 {
		validMoves = safeMoves
	}

	// P2: Eat if a fruit is adjacent
	for _, dir := range Directions {
		if next, ok := validMoves[dir]; ok && containsPosition(snapshot.Fruits, next) {
			return dir
		}
	}

	// P3: Move toward the nearest fruit, keeping room to manoeuvre
	target, hasTarget := s.findNearestFruit(head, snapshot.Fruits)

	bestDir := snapshot.Direction
	bestCost := math.MaxInt32

	for _, dir := range Directions {
		next, ok := validMoves[dir]
		if !ok {
			continue
		}

		cost := 0
		if hasTarget {
			cost = GetManhattanDistance(next, target) * 4
		}

		// Prefer continuing in the same direction (inertia)
		if dir == snapshot.Direction {
			cost -= 2
		}

		cost -= s.countFreeNeighbours(next, snapshot)

		if cost < bestCost {
			bestCost = cost
			bestDir = dir
		}
	}

	return bestDir
}

func (s *DefaultStrategy) findNearestFruit(from Position, fruits []Position) (Position, bool) {
	minDist := math.MaxInt32
	var nearest Position
	found := false

	for _, fruit := range fruits {
		dist := GetManhattanDistance(from, fruit)
		if dist < minDist {
			minDist = dist
			nearest = fruit
			found = true
		}
	}

	return nearest, found
}

func (s *DefaultStrategy) countFreeNeighbours(p Position, snapshot Snapshot) int {
	free := 0
	for _, dir := range Directions {
		n := p.Step(dir)
		if snapshot.Board.IsWall(n) || containsPosition(snapshot.Body, n) {
			continue
		}
		free++
	}
	return free
}

var GreedyStrategy Strategy = &DefaultStrategy{}
