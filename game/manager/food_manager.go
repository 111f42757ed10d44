package manager

import (
	"slither/game/entity"
	"slither/game/types"

	"golang.org/x/exp/rand"
)

// SpawnStrategy selects how a free cell for a new fruit is drawn.
type SpawnStrategy int

const (
	// FreeCellSampling draws uniformly from the list of free cells.
	FreeCellSampling SpawnStrategy = iota
	// RejectionSampling retries Field.RandomPosition a bounded number of
	// times and falls back to FreeCellSampling, so a nearly full field
	// still terminates.
	RejectionSampling
)

func (s SpawnStrategy) String() string {
	if s == RejectionSampling {
		return "rejection"
	}
	return "free-cell"
}

const maxRejectionAttempts = 32

type FoodManager struct {
	field    types.Field
	rng      *rand.Rand
	strategy SpawnStrategy
}

func NewFoodManager(field types.Field, rng *rand.Rand, strategy SpawnStrategy) *FoodManager {
	return &FoodManager{
		field:    field,
		rng:      rng,
		strategy: strategy,
	}
}

// FreeCells lists cells not covered by any entity and not in exclude,
// in row-major order.
func (fm *FoodManager) FreeCells(arena *entity.Arena, exclude ...types.Point) []types.Point {
	blocked := arena.Occupied()
	for _, p := range exclude {
		blocked[p] = struct{}{}
	}

	free := make([]types.Point, 0, max(fm.field.Size()-len(blocked), 0))
	for _, p := range fm.field.AllPositions() {
		if _, taken := blocked[p]; !taken {
			free = append(free, p)
		}
	}
	return free
}

// GenerateFood picks a free cell. ok is false when the field is full.
func (fm *FoodManager) GenerateFood(arena *entity.Arena, exclude ...types.Point) (types.Point, bool) {
	if fm.strategy == RejectionSampling {
		if p, ok := fm.rejectionSample(arena, exclude); ok {
			return p, true
		}
	}

	free := fm.FreeCells(arena, exclude...)
	if len(free) == 0 {
		return types.Point{}, false
	}
	return free[fm.rng.Intn(len(free))], true
}

// Spawn adds a fruit on a free cell, or returns false when there is none.
func (fm *FoodManager) Spawn(arena *entity.Arena, exclude ...types.Point) (*entity.Fruit, bool) {
	p, ok := fm.GenerateFood(arena, exclude...)
	if !ok {
		return nil, false
	}
	return arena.AddFruit(p), true
}

func (fm *FoodManager) rejectionSample(arena *entity.Arena, exclude []types.Point) (types.Point, bool) {
	for i := 0; i < maxRejectionAttempts; i++ {
		p := fm.field.RandomPosition(fm.rng)
		if len(arena.At(p)) > 0 || contains(exclude, p) {
			continue
		}
		return p, true
	}
	return types.Point{}, false
}

func contains(points []types.Point, p types.Point) bool {
	for _, q := range points {
		if q == p {
			return true
		}
	}
	return false
}
