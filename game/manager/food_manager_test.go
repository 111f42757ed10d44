package manager

import (
	"testing"

	"slither/game/entity"
	"slither/game/types"

	"golang.org/x/exp/rand"
)

func TestFreeCellsExcludesOccupiedAndExcluded(t *testing.T) {
	field, _ := types.NewField(3, 1)
	arena := entity.NewArena()
	arena.AddSnake(types.Point{X: 0, Y: 0})
	fm := NewFoodManager(field, rand.New(rand.NewSource(1)), FreeCellSampling)

	free := fm.FreeCells(arena, types.Point{X: 2, Y: 0})
	if len(free) != 1 || free[0] != (types.Point{X: 1, Y: 0}) {
		t.Fatalf("unexpected free cells %v", free)
	}
}

func TestSpawnNeverLandsOnSnake(t *testing.T) {
	for _, strategy := range []SpawnStrategy{FreeCellSampling, RejectionSampling} {
		for seed := uint64(0); seed < 200; seed++ {
			field, _ := types.NewField(4, 3)
			arena := entity.NewArena()
			snake := arena.AddSnake(types.Point{X: 0, Y: 0})
			// Fill all but one cell of the field.
			path := []types.Point{
				{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0},
				{X: 3, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 1},
				{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2},
			}
			for _, p := range path {
				snake.CommitMove(p, true)
			}

			fm := NewFoodManager(field, rand.New(rand.NewSource(seed)), strategy)
			fruit, ok := fm.Spawn(arena)
			if !ok {
				t.Fatalf("%v seed %d: expected a spawn on the last free cell", strategy, seed)
			}
			if fruit.Position() != (types.Point{X: 3, Y: 2}) {
				t.Fatalf("%v seed %d: fruit at %v, want (3,2)", strategy, seed, fruit.Position())
			}
		}
	}
}

func TestSpawnOnFullFieldIsSkipped(t *testing.T) {
	for _, strategy := range []SpawnStrategy{FreeCellSampling, RejectionSampling} {
		field, _ := types.NewField(2, 1)
		arena := entity.NewArena()
		snake := arena.AddSnake(types.Point{X: 0, Y: 0})
		snake.CommitMove(types.Point{X: 1, Y: 0}, true)

		fm := NewFoodManager(field, rand.New(rand.NewSource(7)), strategy)
		if fruit, ok := fm.Spawn(arena); ok {
			t.Errorf("%v: expected no spawn on full field, got %v", strategy, fruit.Position())
		}
		if len(arena.Fruits()) != 0 {
			t.Errorf("%v: arena gained a fruit", strategy)
		}
	}
}

func TestGenerateFoodIsUniformOverFreeCells(t *testing.T) {
	field, _ := types.NewField(3, 3)
	arena := entity.NewArena()
	arena.AddSnake(field.Center())
	fm := NewFoodManager(field, rand.New(rand.NewSource(99)), FreeCellSampling)

	seen := make(map[types.Point]int)
	for i := 0; i < 4000; i++ {
		p, ok := fm.GenerateFood(arena)
		if !ok {
			t.Fatal("expected free cell")
		}
		if p == field.Center() {
			t.Fatal("food generated on the snake")
		}
		seen[p]++
	}
	if len(seen) != 8 {
		t.Fatalf("expected all 8 free cells to be drawn, got %d", len(seen))
	}
	for p, n := range seen {
		if n < 300 {
			t.Errorf("cell %v drawn only %d times", p, n)
		}
	}
}
