package game

import "slither/game/types"

// Snapshot is an immutable copy of what a viewer needs to draw one frame.
// It is safe to hand to other goroutines.
type Snapshot struct {
	GameID string        `json:"game_id"`
	Width  int           `json:"width"`
	Height int           `json:"height"`
	Snake  []types.Point `json:"snake"`
	Fruits []types.Point `json:"fruits"`
	State  string        `json:"state"`
	Cause  string        `json:"cause,omitempty"`
	Score  int           `json:"score"`
	Moves  int           `json:"moves"`
}

func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		GameID: g.id,
		Width:  g.Width(),
		Height: g.Height(),
		Snake:  g.snake.Body(),
		Fruits: g.FruitPositions(),
		State:  g.state.String(),
		Score:  g.score,
		Moves:  g.moves,
	}
	if g.state == GameOver {
		snap.Cause = g.cause.String()
	}
	return snap
}
