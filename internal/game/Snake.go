package game

import "slices"

const (
	SnakeInitialSize = 4
	snakeStartX      = 3
	snakeStartY      = 15
)

// Snake keeps its body tail first, head last. Every Snake owns its body
// slice; nothing handed out by accessors aliases it.
type Snake struct {
	body      []Position
	direction Direction
	alive     bool
}

// NewSnake lays the body out horizontally on row 15 starting at x=3, so the
// wall at x=0 is never touched on spawn.
func NewSnake(startingDirection Direction) *Snake {
	body := make([]Position, 0, SnakeInitialSize)
	for i := 0; i < SnakeInitialSize; i++ {
		body = append(body, NewPosition(snakeStartX+i, snakeStartY))
	}

	return &Snake{
		body:      body,
		direction: startingDirection,
		alive:     true,
	}
}

func (s *Snake) Body() []Position {
	return slices.Clone(s.body)
}

func (s *Snake) Len() int {
	return len(s.body)
}

func (s *Snake) Head() Position {
	if len(s.body) == 0 {
		panic("snake: head of empty body")
	}
	return s.body[len(s.body)-1]
}

func (s *Snake) Tail() Position {
	if len(s.body) == 0 {
		panic("snake: tail of empty body")
	}
	return s.body[0]
}

// SetDirection does not filter reversals, GameState.SetDirection does.
func (s *Snake) SetDirection(d Direction) {
	s.direction = d
}

func (s *Snake) Direction() Direction {
	return s.direction
}

func (s *Snake) IsAlive() bool {
	return s.alive
}

func (s *Snake) Kill() {
	s.alive = false
}

// Move drops the tail and appends a new head one cell ahead. Walls and the
// body are not checked here; the head may land on an illegal cell.
func (s *Snake) Move() {
	head := s.Head().Step(s.direction)

	s.body = append(s.body[1:], head)
}

func (s *Snake) IsBody(p Position) bool {
	return containsPosition(s.body, p)
}

// AteFruit removes the first fruit sitting under the head and returns the
// shortened collection.
func (s *Snake) AteFruit(fruits []Position) ([]Position, bool) {
	return s.consumeAtHead(fruits)
}

// SteppedOverDynamite removes the first dynamite under the head. The body
// length is not affected.
func (s *Snake) SteppedOverDynamite(dynamites []Position) ([]Position, bool) {
	return s.consumeAtHead(dynamites)
}

func (s *Snake) consumeAtHead(objects []Position) ([]Position, bool) {
	head := s.Head()
	for i, p := range objects {
		if head.Equals(p) {
			return slices.Delete(objects, i, i+1), true
		}
	}
	return objects, false
}

// IncreaseSize duplicates the tail at index 0. The duplicate is what the
// next Move drops, so the snake ends up one segment longer.
func (s *Snake) IncreaseSize() {
	tail := s.Tail()
	s.body = slices.Insert(s.body, 0, tail)
}
