package ai

import (
	"context"
	"fmt"

	"slither/game"
	"slither/logger"
)

// Summary reports a training run.
type Summary struct {
	Episodes     int
	BestScore    int
	AverageScore float64
}

// Train plays episodes headless games, each capped at maxSteps moves. It
// stops early when ctx is done and returns what was played so far.
func Train(ctx context.Context, agent *Agent, episodes, maxSteps int, newGame func() (*game.Game, error), log *logger.Logger) (Summary, error) {
	var sum Summary
	totalScore := 0

	for episode := 0; episode < episodes; episode++ {
		if err := ctx.Err(); err != nil {
			break
		}

		g, err := newGame()
		if err != nil {
			return sum, fmt.Errorf("episode %d: %w", episode, err)
		}
		for step := 0; step < maxSteps && !g.Over(); step++ {
			if _, err := agent.Step(g, true); err != nil {
				return sum, fmt.Errorf("episode %d: %w", episode, err)
			}
		}

		agent.GamesPlayed++
		agent.DecayEpsilon()
		sum.Episodes++
		totalScore += g.Score()
		if g.Score() > sum.BestScore {
			sum.BestScore = g.Score()
		}

		if (episode+1)%100 == 0 {
			log.Info(fmt.Sprintf("episode %d: best=%d avg=%.2f epsilon=%.3f states=%d",
				episode+1, sum.BestScore, float64(totalScore)/float64(sum.Episodes), agent.Epsilon, len(agent.QTable)))
		}
	}

	if sum.Episodes > 0 {
		sum.AverageScore = float64(totalScore) / float64(sum.Episodes)
	}
	return sum, nil
}
