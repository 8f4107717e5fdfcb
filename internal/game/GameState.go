package game

import (
	"errors"
	"slices"
	"time"

	"golang.org/x/exp/rand"
)

const (
	ScorePenalty = 25

	// maxSpawnAttempts bounds the rejection sampling in GenerateRandomObject
	// before it falls back to scanning every free cell.
	maxSpawnAttempts = 256
)

var (
	ErrBoardFull     = errors.New("no free cell left on the board")
	ErrInvalidBounds = errors.New("board bounds leave no playable cell")
)

type StepResult int

const (
	StepMoved StepResult = iota
	StepAteFruit
	StepHitDynamite
	StepCrashed
)

func (r StepResult) String() string {
	switch r {
	case StepMoved:
		return "moved"
	case StepAteFruit:
		return "ate_fruit"
	case StepHitDynamite:
		return "hit_dynamite"
	case StepCrashed:
		return "crashed"
	}
	return "unknown"
}

// GameState is one game session. It is the only thing that changes the
// score, the fruit list and the dynamite list. It is not safe for
// concurrent use; GameManager keeps it on a single goroutine.
type GameState struct {
	snake        *Snake
	fruits       []Position
	dynamites    []Position
	score        int
	fruitsEaten  int
	dynamitesHit int
	board        Board
	rand         *rand.Rand
}

type GameStateOption func(*GameState)

func WithSeed(seed int64) GameStateOption {
	return func(gs *GameState) {
		gs.rand = rand.New(rand.NewSource(uint64(seed)))
	}
}

func WithBoard(board Board) GameStateOption {
	return func(gs *GameState) {
		gs.board = board
	}
}

// NewGameState starts a snake of length 4 facing right, with no objects and
// a zero score.
func NewGameState(opts ...GameStateOption) *GameState {
	gs := &GameState{
		snake:     NewSnake(Right),
		fruits:    []Position{},
		dynamites: []Position{},
		board:     Board{Width: DefaultBoardWidth, Height: DefaultBoardHeight},
	}

	for _, opt := range opts {
		opt(gs)
	}

	if gs.rand == nil {
		gs.rand = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	return gs
}

func (gs *GameState) Fruits() []Position {
	return slices.Clone(gs.fruits)
}

func (gs *GameState) Dynamites() []Position {
	return slices.Clone(gs.dynamites)
}

func (gs *GameState) Score() int {
	return gs.score
}

func (gs *GameState) FruitsEaten() int {
	return gs.fruitsEaten
}

func (gs *GameState) DynamitesHit() int {
	return gs.dynamitesHit
}

func (gs *GameState) Board() Board {
	return gs.board
}

func (gs *GameState) IsSnakeAlive() bool {
	return gs.snake.IsAlive()
}

func (gs *GameState) KillSnake() {
	gs.snake.Kill()
}

func (gs *GameState) MoveSnake() {
	gs.snake.Move()
}

func (gs *GameState) SnakeBody() []Position {
	return gs.snake.Body()
}

func (gs *GameState) SnakeHead() Position {
	return gs.snake.Head()
}

func (gs *GameState) SnakeTail() Position {
	return gs.snake.Tail()
}

func (gs *GameState) Direction() Direction {
	return gs.snake.Direction()
}

// SnakeAteFruit scores len(body)*2 plus one point per dynamite on the board,
// measured before the snake grows.
func (gs *GameState) SnakeAteFruit() bool {
	fruits, ate := gs.snake.AteFruit(gs.fruits)
	if !ate {
		return false
	}

	gs.fruits = fruits
	gs.score += gs.snake.Len()*2 + len(gs.dynamites)
	gs.fruitsEaten++
	gs.snake.IncreaseSize()

	return true
}

// SnakeSteppedDynamite costs ScorePenalty. The score has no floor.
func (gs *GameState) SnakeSteppedDynamite() bool {
	dynamites, hit := gs.snake.SteppedOverDynamite(gs.dynamites)
	if !hit {
		return false
	}

	gs.dynamites = dynamites
	gs.score -= ScorePenalty
	gs.dynamitesHit++

	return true
}

// SetDirection ignores a turn back onto the snake's own neck.
func (gs *GameState) SetDirection(d Direction) error {
	if !d.IsValid() {
		return ErrInvalidDirection
	}

	if IsOpposite(gs.snake.Direction(), d) {
		return nil
	}

	gs.snake.SetDirection(d)
	return nil
}

func (gs *GameState) isEmptyPosition(p Position) bool {
	return !(gs.snake.IsBody(p) || containsPosition(gs.fruits, p) || containsPosition(gs.dynamites, p))
}

// GenerateRandomObject picks a free cell with x in [1, maxX) and y in
// [1, maxY). It samples at random first and, if that keeps hitting occupied
// cells, draws uniformly from an exhaustive list of free cells instead.
func (gs *GameState) GenerateRandomObject(maxX int, maxY int) (Position, error) {
	if maxX <= 1 || maxY <= 1 {
		return Position{}, ErrInvalidBounds
	}

	for attempt := 0; attempt < maxSpawnAttempts; attempt++ {
		p := NewPosition(gs.rand.Intn(maxX-1)+1, gs.rand.Intn(maxY-1)+1)
		if gs.isEmptyPosition(p) {
			return p, nil
		}
	}

	var free []Position
	for y := 1; y < maxY; y++ {
		for x := 1; x < maxX; x++ {
			p := NewPosition(x, y)
			if gs.isEmptyPosition(p) {
				free = append(free, p)
			}
		}
	}

	if len(free) == 0 {
		return Position{}, ErrBoardFull
	}

	return free[gs.rand.Intn(len(free))], nil
}

func (gs *GameState) AddFruit(p Position) {
	gs.fruits = append(gs.fruits, p)
}

func (gs *GameState) AddDynamite(p Position) {
	gs.dynamites = append(gs.dynamites, p)
}

func (gs *GameState) SpawnFruit() (Position, error) {
	p, err := gs.GenerateRandomObject(gs.board.Width, gs.board.Height)
	if err != nil {
		return Position{}, err
	}
	gs.AddFruit(p)
	return p, nil
}

func (gs *GameState) SpawnDynamite() (Position, error) {
	p, err := gs.GenerateRandomObject(gs.board.Width, gs.board.Height)
	if err != nil {
		return Position{}, err
	}
	gs.AddDynamite(p)
	return p, nil
}

// IsSelfCollision checks p against every segment but the head.
func (gs *GameState) IsSelfCollision(p Position) bool {
	body := gs.snake.body
	return containsPosition(body[:len(body)-1], p)
}

func (gs *GameState) CheckCollision() bool {
	head := gs.snake.Head()
	return gs.board.IsWall(head) || gs.IsSelfCollision(head)
}

// Step advances one movement tick: move, then crash, fruit or dynamite, in
// that order and at most one of them. A fruit eaten is replaced right away;
// a full board just leaves it out.
func (gs *GameState) Step() StepResult {
	if !gs.snake.IsAlive() {
		return StepCrashed
	}

	gs.snake.Move()

	if gs.CheckCollision() {
		gs.snake.Kill()
		return StepCrashed
	}

	if gs.SnakeAteFruit() {
		_, _ = gs.SpawnFruit()
		return StepAteFruit
	}

	if gs.SnakeSteppedDynamite() {
		return StepHitDynamite
	}

	return StepMoved
}

// Snapshot is a read-only copy of a GameState for renderers and bots.
type Snapshot struct {
	Board        Board
	Body         []Position
	Head         Position
	Direction    Direction
	Fruits       []Position
	Dynamites    []Position
	Score        int
	FruitsEaten  int
	DynamitesHit int
	Alive        bool
}

func (gs *GameState) Snapshot() Snapshot {
	return Snapshot{
		Board:        gs.board,
		Body:         gs.snake.Body(),
		Head:         gs.snake.Head(),
		Direction:    gs.snake.Direction(),
		Fruits:       gs.Fruits(),
		Dynamites:    gs.Dynamites(),
		Score:        gs.score,
		FruitsEaten:  gs.fruitsEaten,
		DynamitesHit: gs.dynamitesHit,
		Alive:        gs.snake.IsAlive(),
	}
}
