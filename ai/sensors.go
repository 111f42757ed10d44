package ai

import (
	"slither/game"
	"slither/game/types"
)

// State is what the agent sees before choosing a move.
type State struct {
	FoodDir  [2]int  // sign of fruit minus head, per axis
	Distance int     // manhattan distance to the nearest fruit, -1 if none
	Danger   [4]bool // indexed like types.Directions
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

func manhattanDistance(p1, p2 types.Point) int {
	return abs(p2.X-p1.X) + abs(p2.Y-p1.Y)
}

// nearestFruit returns the closest fruit to the head, first one wins ties.
func nearestFruit(g *game.Game) (types.Point, int, bool) {
	head := g.SnakeHead()
	best, bestDist, found := types.Point{}, 0, false
	for _, f := range g.FruitPositions() {
		d := manhattanDistance(head, f)
		if !found || d < bestDist {
			best, bestDist, found = f, d, true
		}
	}
	return best, bestDist, found
}

// Observe reads the engine through its public queries only.
func Observe(g *game.Game) State {
	head := g.SnakeHead()
	s := State{Distance: -1}

	if fruit, dist, ok := nearestFruit(g); ok {
		s.FoodDir = [2]int{sign(fruit.X - head.X), sign(fruit.Y - head.Y)}
		s.Distance = dist
	}

	body := g.SnakeBody()
	for i, dir := range types.Directions {
		next := head.Add(dir.Offset())
		if !g.Field().IsInside(next) {
			s.Danger[i] = true
			continue
		}
		if g.SelfCollisionEnabled() {
			// The tail moves away this turn, so only body[1:] blocks.
			for _, p := range body[1:] {
				if p == next {
					s.Danger[i] = true
					break
				}
			}
		}
	}
	return s
}

func (s State) key() string {
	b := make([]byte, 0, 8)
	b = append(b, byte('1'+s.FoodDir[0]), byte('1'+s.FoodDir[1]), ':')
	for _, d := range s.Danger {
		if d {
			b = append(b, '1')
		} else {
			b = append(b, '0')
		}
	}
	return string(b)
}
