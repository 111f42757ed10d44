package game

import (
	"errors"
	"reflect"
	"testing"

	"slither/game/entity"
	"slither/game/manager"
	"slither/game/types"
)

func pt(x, y int) types.Point { return types.Point{X: x, Y: y} }

func newGame(t *testing.T, w, h int, opts ...Option) *Game {
	t.Helper()
	g, err := New(w, h, append([]Option{WithSeed(1)}, opts...)...)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", w, h, err)
	}
	return g
}

func TestNewRejectsInvalidField(t *testing.T) {
	for _, size := range [][2]int{{0, 5}, {5, 0}, {-1, -1}} {
		if _, err := New(size[0], size[1]); !errors.Is(err, types.ErrInvalidField) {
			t.Errorf("New(%d, %d) error = %v, want ErrInvalidField", size[0], size[1], err)
		}
	}
}

func TestNewPlacesSnakeAtCenterAndOneFruit(t *testing.T) {
	g := newGame(t, 11, 13)

	if g.SnakeHead() != pt(5, 6) || g.SnakeLen() != 1 {
		t.Fatalf("snake = %v, want single cell at (5,6)", g.SnakeBody())
	}
	fruits := g.FruitPositions()
	if len(fruits) != 1 {
		t.Fatalf("expected one fruit, got %v", fruits)
	}
	if fruits[0] == g.SnakeHead() {
		t.Error("fruit spawned on the snake")
	}
	if g.State() != Active || g.Over() {
		t.Error("new game must be active")
	}
	if g.ID() == "" {
		t.Error("game id must be set")
	}
}

func TestWithFruitAtValidation(t *testing.T) {
	if _, err := New(3, 3, WithFruitAt(pt(5, 5))); !errors.Is(err, ErrOutsideField) {
		t.Errorf("expected ErrOutsideField, got %v", err)
	}
	if _, err := New(3, 3, WithFruitAt(pt(1, 1))); !errors.Is(err, ErrCellOccupied) {
		t.Errorf("expected ErrCellOccupied, got %v", err)
	}
}

func TestScenarioMoveEast(t *testing.T) {
	g := newGame(t, 5, 5, WithFruitAt(pt(0, 0)))

	out, err := g.Move(types.East)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if out != Moved {
		t.Fatalf("outcome = %v, want moved", out)
	}
	if g.SnakeHead() != pt(3, 2) || g.SnakeLen() != 1 {
		t.Errorf("snake = %v, want [(3,2)]", g.SnakeBody())
	}
}

func TestScenarioEatFruit(t *testing.T) {
	g := newGame(t, 3, 3, WithFruitAt(pt(2, 1)))
	if g.SnakeHead() != pt(1, 1) {
		t.Fatalf("snake must start at (1,1), got %v", g.SnakeHead())
	}

	out, err := g.Move(types.East)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if out != Ate {
		t.Fatalf("outcome = %v, want ate", out)
	}
	if g.SnakeHead() != pt(2, 1) || g.SnakeLen() != 2 {
		t.Errorf("snake = %v, want length 2 with head (2,1)", g.SnakeBody())
	}

	fruits := g.FruitPositions()
	if len(fruits) != 1 {
		t.Fatalf("fruit count = %d, want 1", len(fruits))
	}
	if fruits[0] == pt(2, 1) || fruits[0] == pt(1, 1) {
		t.Errorf("new fruit %v spawned on the snake", fruits[0])
	}
	if g.Score() != 1 {
		t.Errorf("score = %d, want 1", g.Score())
	}
}

func TestScenarioCollisionThenAlreadyOver(t *testing.T) {
	calls := 0
	g := newGame(t, 2, 1, WithCollisionHandler(func() { calls++ }))
	if g.SnakeHead() != pt(0, 0) {
		t.Fatalf("snake must start at (0,0), got %v", g.SnakeHead())
	}
	before := g.Snapshot()

	out, err := g.Move(types.West)
	if err != nil || out != Collided {
		t.Fatalf("Move(West) = %v, %v; want collided", out, err)
	}
	if g.State() != GameOver || g.Cause() != manager.WallCollision {
		t.Fatalf("state = %v cause = %v", g.State(), g.Cause())
	}

	out, err = g.Move(types.East)
	if err != nil || out != AlreadyOver {
		t.Fatalf("Move(East) after game over = %v, %v; want already_over", out, err)
	}
	if calls != 1 {
		t.Errorf("collision handler fired %d times, want 1", calls)
	}

	after := g.Snapshot()
	if !reflect.DeepEqual(before.Snake, after.Snake) || !reflect.DeepEqual(before.Fruits, after.Fruits) {
		t.Errorf("state changed after collision: %+v -> %+v", before, after)
	}
}

func TestScenarioFullFieldSkipsSpawn(t *testing.T) {
	// On a 2x1 field the only free cell holds the first fruit.
	g := newGame(t, 2, 1)
	if got := g.FruitPositions(); len(got) != 1 || got[0] != pt(1, 0) {
		t.Fatalf("expected the fruit on (1,0), got %v", got)
	}

	out, err := g.Move(types.East)
	if err != nil || out != Ate {
		t.Fatalf("Move(East) = %v, %v; want ate", out, err)
	}
	if g.SnakeLen() != 2 {
		t.Fatalf("snake length = %d, want field size 2", g.SnakeLen())
	}
	if n := len(g.FruitPositions()); n != 0 {
		t.Errorf("fruit count = %d, want 0 on a full field", n)
	}
	if g.State() != Active {
		t.Errorf("full field must not end the game")
	}
}

func TestOneByOneFieldAlwaysCollides(t *testing.T) {
	for _, d := range types.Directions {
		g := newGame(t, 1, 1)
		if n := len(g.FruitPositions()); n != 0 {
			t.Fatalf("1x1 field has no room for fruit, got %d", n)
		}
		out, err := g.Move(d)
		if err != nil || out != Collided {
			t.Errorf("Move(%v) on 1x1 = %v, %v; want collided", d, out, err)
		}
	}
}

func TestInvalidDirectionFailsFast(t *testing.T) {
	g := newGame(t, 5, 5)
	before := g.Snapshot()

	for _, d := range []types.Direction{0, 5, -1} {
		if _, err := g.Move(d); !errors.Is(err, types.ErrInvalidDirection) {
			t.Errorf("Move(%d) error = %v, want ErrInvalidDirection", d, err)
		}
	}
	if after := g.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("invalid moves changed state: %+v -> %+v", before, after)
	}

	g.Move(types.North)
	g.Move(types.North)
	g.Move(types.North) // off the top edge
	if !g.Over() {
		t.Fatal("expected game over")
	}
	if _, err := g.Move(0); !errors.Is(err, types.ErrInvalidDirection) {
		t.Errorf("invalid direction after game over must still fail, got %v", err)
	}
}

func TestWhatOccupiesIsStableAndPure(t *testing.T) {
	g := newGame(t, 3, 3, WithFruitAt(pt(0, 0)))

	for _, p := range g.Field().AllPositions() {
		first := g.WhatOccupies(p)
		second := g.WhatOccupies(p)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("WhatOccupies(%v) changed between calls", p)
		}
	}

	if k := g.OccupantKind(pt(1, 1)); k != entity.SnakeSegment {
		t.Errorf("center kind = %v, want snake", k)
	}
	if k := g.OccupantKind(pt(0, 0)); k != entity.FruitCell {
		t.Errorf("(0,0) kind = %v, want fruit", k)
	}
	if k := g.OccupantKind(pt(2, 2)); k != entity.Empty {
		t.Errorf("(2,2) kind = %v, want empty", k)
	}
	if k := g.OccupantKind(pt(9, 9)); k != entity.Empty {
		t.Errorf("outside kind = %v, want empty", k)
	}
}

func TestSetCollisionHandlerOverwrites(t *testing.T) {
	var first, second int
	g := newGame(t, 1, 1, WithCollisionHandler(func() { first++ }))
	g.SetCollisionHandler(func() { second++ })

	g.Move(types.North)
	g.Move(types.North)

	if first != 0 || second != 1 {
		t.Errorf("handlers fired first=%d second=%d, want 0 and 1", first, second)
	}
}

func TestSelfCollisionDisabledByDefault(t *testing.T) {
	g := growHook(t)
	// North from (2,2) re-enters the middle segment (2,1).
	out, err := g.Move(types.North)
	if err != nil {
		t.Fatal(err)
	}
	if out != Moved {
		t.Fatalf("outcome = %v; self collision must be off by default", out)
	}
}

func TestSelfCollisionExtension(t *testing.T) {
	g := growHook(t, WithSelfCollision(true))
	if !g.SelfCollisionEnabled() {
		t.Fatal("expected self collision to be enabled")
	}

	out, err := g.Move(types.North)
	if err != nil {
		t.Fatal(err)
	}
	if out != Collided || g.Cause() != manager.SelfCollision {
		t.Fatalf("Move(North) = %v cause %v; want collided by self", out, g.Cause())
	}
}

func TestSelfCollisionAllowsVacatingTail(t *testing.T) {
	g := growHook(t, WithSelfCollision(true))
	// Close the square: (1,1) (2,1) (2,2) (1,2), head next to the tail.
	g.dropFruits()
	g.arena.AddFruit(pt(1, 2))
	if out, _ := g.Move(types.West); out != Ate {
		t.Fatalf("Move(West) = %v, want ate", out)
	}
	g.dropFruits()
	if out, _ := g.Move(types.North); out != Moved {
		t.Fatalf("Move(North) into the vacating tail = %v, want moved", out)
	}
	if g.SnakeHead() != pt(1, 1) || g.SnakeLen() != 4 {
		t.Errorf("unexpected body %v", g.SnakeBody())
	}
}

// growHook builds the body (1,1) (2,1) (2,2) on a 3x3 field, head last.
func growHook(t *testing.T, opts ...Option) *Game {
	t.Helper()
	g := newGame(t, 3, 3, append(opts, WithFruitAt(pt(2, 1)))...)
	if out, _ := g.Move(types.East); out != Ate {
		t.Fatalf("expected to eat at (2,1), got %v", out)
	}
	g.dropFruits()
	g.arena.AddFruit(pt(2, 2))
	if out, _ := g.Move(types.South); out != Ate {
		t.Fatalf("expected to eat at (2,2), got %v", out)
	}
	want := []types.Point{pt(1, 1), pt(2, 1), pt(2, 2)}
	if !reflect.DeepEqual(g.SnakeBody(), want) {
		t.Fatalf("body = %v, want %v", g.SnakeBody(), want)
	}
	return g
}

func (g *Game) dropFruits() {
	for _, f := range g.arena.Fruits() {
		g.arena.Remove(f.ID())
	}
}

func TestRejectionStrategyNeverSpawnsInsideSnake(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		g, err := New(3, 1, WithSeed(seed), WithSpawnStrategy(manager.RejectionSampling))
		if err != nil {
			t.Fatal(err)
		}
		for !g.Over() {
			fruits := g.FruitPositions()
			for _, f := range fruits {
				for _, b := range g.SnakeBody() {
					if f == b {
						t.Fatalf("seed %d: fruit %v inside snake %v", seed, f, g.SnakeBody())
					}
				}
			}
			if len(fruits) == 0 {
				break
			}
			dir := types.East
			if fruits[0].X < g.SnakeHead().X {
				dir = types.West
			}
			if _, err := g.Move(dir); err != nil {
				t.Fatal(err)
			}
		}
	}
}

func TestRecordAndSnapshot(t *testing.T) {
	g := newGame(t, 3, 3, WithFruitAt(pt(2, 1)))
	g.Move(types.East)
	g.Move(types.East)

	rec := g.Record()
	if rec.ID != g.ID() || rec.Score != 1 || rec.Length != 2 || rec.Moves != 1 || rec.Cause != "wall" {
		t.Errorf("unexpected record %+v", rec)
	}
	if rec.EndedAt.Before(rec.StartedAt) {
		t.Error("record ends before it starts")
	}

	snap := g.Snapshot()
	if snap.State != "game_over" || snap.Cause != "wall" || len(snap.Snake) != 2 || snap.Width != 3 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}

func TestOutcomeStrings(t *testing.T) {
	want := map[Outcome]string{Moved: "moved", Ate: "ate", Collided: "collided", AlreadyOver: "already_over"}
	for o, s := range want {
		if o.String() != s {
			t.Errorf("%d.String() = %q, want %q", int(o), o.String(), s)
		}
	}
}
