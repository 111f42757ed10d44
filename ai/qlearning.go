// Package ai drives a game with a tabular Q-learning agent.
package ai

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"slither/game"
	"slither/game/types"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

// Rewards per move.
const (
	RewardAte      = 1.0
	RewardCollided = -1.0
	RewardCloser   = 0.5
	RewardFarther  = -0.3
)

// QTable maps a state key to one value per direction in types.Directions order.
type QTable map[string][4]float64

type Agent struct {
	ID           string
	QTable       QTable
	LearningRate float64
	Discount     float64
	Epsilon      float64
	MinEpsilon   float64
	EpsilonDecay float64
	TotalReward  float64
	GamesPlayed  int

	rng *rand.Rand
}

// NewAgent returns an agent with an empty table. A nil rng is seeded from
// the clock.
func NewAgent(rng *rand.Rand) *Agent {
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return &Agent{
		ID:           uuid.New().String(),
		QTable:       make(QTable),
		LearningRate: 0.1,
		Discount:     0.9,
		Epsilon:      0.9,
		MinEpsilon:   0.05,
		EpsilonDecay: 0.995,
		rng:          rng,
	}
}

// Choose picks a direction epsilon-greedily.
func (a *Agent) Choose(s State) types.Direction {
	if a.rng.Float64() < a.Epsilon {
		return types.Directions[a.rng.Intn(len(types.Directions))]
	}
	return a.Best(s)
}

// Best is the greedy choice among safe directions. When every direction is
// dangerous it falls back to the highest value overall.
func (a *Agent) Best(s State) types.Direction {
	values := a.QTable[s.key()]
	best, bestValue := -1, math.Inf(-1)
	for i, v := range values {
		if s.Danger[i] {
			continue
		}
		if v > bestValue {
			best, bestValue = i, v
		}
	}
	if best < 0 {
		best = argmax(values)
	}
	return types.Directions[best]
}

func argmax(values [4]float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

// DecayEpsilon shrinks exploration after an episode, never below MinEpsilon.
func (a *Agent) DecayEpsilon() {
	a.Epsilon = max(a.Epsilon*a.EpsilonDecay, a.MinEpsilon)
}

// Reward scores one transition.
func Reward(outcome game.Outcome, before, after State) float64 {
	switch outcome {
	case game.Ate:
		return RewardAte
	case game.Collided:
		return RewardCollided
	}
	if before.Distance < 0 || after.Distance < 0 {
		return 0
	}
	switch {
	case after.Distance < before.Distance:
		return RewardCloser
	case after.Distance > before.Distance:
		return RewardFarther
	}
	return 0
}

// Update applies the Q-learning rule. A terminal transition has no future
// value.
func (a *Agent) Update(s State, dir types.Direction, reward float64, next State, terminal bool) {
	idx := directionIndex(dir)
	if idx < 0 {
		return
	}

	maxNext := 0.0
	if !terminal {
		nextValues := a.QTable[next.key()]
		maxNext = nextValues[argmax(nextValues)]
	}

	values := a.QTable[s.key()]
	values[idx] += a.LearningRate * (reward + a.Discount*maxNext - values[idx])
	a.QTable[s.key()] = values
	a.TotalReward += reward
}

func directionIndex(dir types.Direction) int {
	for i, d := range types.Directions {
		if d == dir {
			return i
		}
	}
	return -1
}

// Step observes g, moves once and learns from the result when learn is set.
func (a *Agent) Step(g *game.Game, learn bool) (game.Outcome, error) {
	before := Observe(g)
	var dir types.Direction
	if learn {
		dir = a.Choose(before)
	} else {
		dir = a.Best(before)
	}

	outcome, err := g.Move(dir)
	if err != nil {
		return 0, err
	}
	if learn {
		after := Observe(g)
		a.Update(before, dir, Reward(outcome, before, after), after, outcome == game.Collided)
	}
	return outcome, nil
}

// SaveQTable writes the table as indented JSON.
func (a *Agent) SaveQTable(filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("create q-table directory: %w", err)
	}
	data, err := json.MarshalIndent(a.QTable, "", "  ")
	if err != nil {
		return fmt.Errorf("encode q-table: %w", err)
	}
	return os.WriteFile(filename, data, 0644)
}

// LoadQTable replaces the table with the one stored in filename.
func (a *Agent) LoadQTable(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	table := make(QTable)
	if err := json.Unmarshal(data, &table); err != nil {
		return fmt.Errorf("decode q-table %s: %w", filename, err)
	}
	a.QTable = table
	return nil
}
