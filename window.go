package main

import (
	"context"
	"time"

	"slither/ai"
	"slither/game"
	"slither/session"
	"slither/ui/window"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const autopilotInterval = 120 * time.Millisecond

func runWindow(ctx context.Context, newGame func() (*game.Game, error), sess *session.Session, agent *ai.Agent) error {
	rl.InitWindow(960, 720, "slither")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	g, err := newGame()
	if err != nil {
		return err
	}
	sess.Start(g)

	renderer := window.NewRenderer()
	lastUpdate := time.Now()
	recorded := false

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		if window.QuitPressed() {
			break
		}

		switch {
		case g.Over():
			if !recorded {
				sess.Finish(ctx, g)
				recorded = true
			}
			if window.RestartPressed() {
				if g, err = newGame(); err != nil {
					return err
				}
				recorded = false
				sess.Start(g)
			}
		case agent != nil:
			if time.Since(lastUpdate) >= autopilotInterval {
				outcome, err := agent.Step(g, false)
				if err != nil {
					return err
				}
				sess.Observe(g, outcome)
				lastUpdate = time.Now()
			}
		default:
			if dir, ok := window.PressedDirection(); ok {
				outcome, err := g.Move(dir)
				if err != nil {
					return err
				}
				sess.Observe(g, outcome)
			}
		}

		renderer.Draw(g, window.Panel{
			HighScore: sess.HighScore(),
			Scores:    sess.Scores(),
			Autopilot: agent != nil,
		})
	}

	if !recorded && g.Moves() > 0 {
		sess.Finish(ctx, g)
	}
	return nil
}
