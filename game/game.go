package game

import (
	"errors"
	"fmt"
	"time"

	"slither/game/entity"
	"slither/game/manager"
	"slither/game/types"
	"slither/logger"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

var (
	ErrOutsideField = errors.New("position outside field")
	ErrCellOccupied = errors.New("cell already occupied")
)

// Outcome classifies the result of one Move.
type Outcome int

const (
	Moved Outcome = iota + 1
	Ate
	Collided
	AlreadyOver
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Ate:
		return "ate"
	case Collided:
		return "collided"
	case AlreadyOver:
		return "already_over"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// State is the game lifecycle. GameOver is terminal.
type State int

const (
	Active State = iota
	GameOver
)

func (s State) String() string {
	if s == GameOver {
		return "game_over"
	}
	return "active"
}

// Game owns the field and every entity on it. It is not safe for
// concurrent use: one caller drives it turn by turn.
type Game struct {
	id         string
	field      types.Field
	arena      *entity.Arena
	snake      *entity.Snake
	collisions *manager.CollisionManager
	food       *manager.FoodManager
	log        *logger.Logger

	state       State
	cause       manager.CollisionType
	onCollision func()

	moves     int
	score     int
	startedAt time.Time
	endedAt   time.Time
}

type settings struct {
	rng           *rand.Rand
	selfCollision bool
	strategy      manager.SpawnStrategy
	onCollision   func()
	fruitAt       *types.Point
	log           *logger.Logger
}

// Option configures a Game at construction.
type Option func(*settings)

// WithSeed makes fruit placement reproducible.
func WithSeed(seed uint64) Option {
	return func(s *settings) { s.rng = rand.New(rand.NewSource(seed)) }
}

func WithRand(r *rand.Rand) Option {
	return func(s *settings) { s.rng = r }
}

// WithSelfCollision ends the game when the head enters the snake's own
// body. Off by default: only the field boundary ends a game.
func WithSelfCollision(enabled bool) Option {
	return func(s *settings) { s.selfCollision = enabled }
}

func WithSpawnStrategy(strategy manager.SpawnStrategy) Option {
	return func(s *settings) { s.strategy = strategy }
}

func WithCollisionHandler(fn func()) Option {
	return func(s *settings) { s.onCollision = fn }
}

// WithFruitAt places the first fruit at p instead of a random free cell.
func WithFruitAt(p types.Point) Option {
	return func(s *settings) { s.fruitAt = &p }
}

func WithLogger(log *logger.Logger) Option {
	return func(s *settings) { s.log = log }
}

// New creates a game with the snake on the field center and one fruit.
func New(width, height int, opts ...Option) (*Game, error) {
	field, err := types.NewField(width, height)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	cfg := settings{strategy: manager.FreeCellSampling}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if cfg.log == nil {
		cfg.log = logger.Discard()
	}

	g := &Game{
		id:          uuid.New().String(),
		field:       field,
		arena:       entity.NewArena(),
		collisions:  manager.NewCollisionManager(field, cfg.selfCollision),
		food:        manager.NewFoodManager(field, cfg.rng, cfg.strategy),
		log:         cfg.log,
		state:       Active,
		onCollision: cfg.onCollision,
		startedAt:   time.Now(),
	}
	g.snake = g.arena.AddSnake(field.Center())

	if cfg.fruitAt != nil {
		if err := g.placeFruit(*cfg.fruitAt); err != nil {
			return nil, fmt.Errorf("new game: %w", err)
		}
	} else {
		g.spawnFruit()
	}

	g.log.Event("GAME_STARTED", g.id, fmt.Sprintf("field=%dx%d head=%v", width, height, g.snake.Head()))
	return g, nil
}

// SetCollisionHandler replaces the callback fired on the first collision.
func (g *Game) SetCollisionHandler(fn func()) {
	g.onCollision = fn
}

// Move advances the snake one cell. Structurally invalid directions fail
// before any state is touched; everything that happens in play is an
// Outcome.
func (g *Game) Move(dir types.Direction) (Outcome, error) {
	if !dir.Valid() {
		return 0, fmt.Errorf("move: %w: %d", types.ErrInvalidDirection, int(dir))
	}
	if g.state == GameOver {
		return AlreadyOver, nil
	}

	candidate := g.snake.Project(dir)

	var eaten []*entity.Fruit
	if g.field.IsInside(candidate) {
		for _, e := range g.arena.At(candidate) {
			if f, ok := e.(*entity.Fruit); ok {
				eaten = append(eaten, f)
			}
		}
	}
	grow := len(eaten) > 0

	if cause := g.collisions.CheckCollision(candidate, g.snake, grow); cause != manager.NoCollision {
		g.endGame(cause, candidate)
		return Collided, nil
	}

	for _, f := range eaten {
		g.arena.Remove(f.ID())
	}
	g.snake.CommitMove(candidate, grow)
	g.moves++

	if !grow {
		return Moved, nil
	}

	g.score += len(eaten)
	g.spawnFruit(candidate)
	return Ate, nil
}

func (g *Game) endGame(cause manager.CollisionType, at types.Point) {
	g.state = GameOver
	g.cause = cause
	g.endedAt = time.Now()
	g.log.Event("COLLISION", g.id, fmt.Sprintf("cause=%s head=%v score=%d", cause, at, g.score))
	if g.onCollision != nil {
		g.onCollision()
	}
}

// spawnFruit adds a fruit on a free cell. A full field is not an error:
// the game simply continues without fruit.
func (g *Game) spawnFruit(exclude ...types.Point) {
	fruit, ok := g.food.Spawn(g.arena, exclude...)
	if !ok {
		g.log.Event("SPAWN_SKIPPED", g.id, "no free cell left for fruit")
		return
	}
	g.log.Debug(fmt.Sprintf("fruit %d spawned at %v", fruit.ID(), fruit.Position()))
}

func (g *Game) placeFruit(p types.Point) error {
	if !g.field.IsInside(p) {
		return fmt.Errorf("place fruit at %v: %w", p, ErrOutsideField)
	}
	if len(g.arena.At(p)) > 0 {
		return fmt.Errorf("place fruit at %v: %w", p, ErrCellOccupied)
	}
	g.arena.AddFruit(p)
	return nil
}

// WhatOccupies lists every entity covering p in insertion order.
func (g *Game) WhatOccupies(p types.Point) []entity.Entity {
	return g.arena.At(p)
}

// OccupantKind is the tag of the first occupant of p, or Empty.
func (g *Game) OccupantKind(p types.Point) entity.Kind {
	occupants := g.arena.At(p)
	if len(occupants) == 0 {
		return entity.Empty
	}
	return occupants[0].Kind()
}

func (g *Game) ID() string                   { return g.id }
func (g *Game) Field() types.Field           { return g.field }
func (g *Game) Width() int                   { return g.field.Width() }
func (g *Game) Height() int                  { return g.field.Height() }
func (g *Game) State() State                 { return g.state }
func (g *Game) Over() bool                   { return g.state == GameOver }
func (g *Game) Cause() manager.CollisionType { return g.cause }
func (g *Game) Score() int                   { return g.score }
func (g *Game) Moves() int                   { return g.moves }
func (g *Game) StartedAt() time.Time         { return g.startedAt }
func (g *Game) SelfCollisionEnabled() bool   { return g.collisions.SelfCollisionEnabled() }
func (g *Game) SnakeHead() types.Point       { return g.snake.Head() }
func (g *Game) SnakeLen() int                { return g.snake.Len() }
func (g *Game) SnakeBody() []types.Point     { return g.snake.Body() }
func (g *Game) Entities() []entity.Entity    { return g.arena.Entities() }

// FruitPositions lists the current fruit cells in insertion order.
func (g *Game) FruitPositions() []types.Point {
	fruits := g.arena.Fruits()
	out := make([]types.Point, 0, len(fruits))
	for _, f := range fruits {
		out = append(out, f.Position())
	}
	return out
}

// Record summarizes the game for the score history. An unfinished game is
// recorded with cause "none" and the current time as its end.
func (g *Game) Record() manager.GameRecord {
	ended := g.endedAt
	if ended.IsZero() {
		ended = time.Now()
	}
	return manager.GameRecord{
		ID:        g.id,
		Width:     g.Width(),
		Height:    g.Height(),
		Score:     g.score,
		Length:    g.snake.Len(),
		Moves:     g.moves,
		Cause:     g.cause.String(),
		StartedAt: g.startedAt,
		EndedAt:   ended,
	}
}
