// Package cli runs a game as a line-based command loop.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"slither/ai"
	"slither/game"
	"slither/game/types"
	"slither/session"
	"slither/ui"
)

const Prompt = "🐍: "

const unknownCommand = `
Unknown command “%s”.
Available commands:
x  Exit the game
n  Slither northward ↑
s  Slither southward ↓
w  Slither westward ←
e  Slither eastward →

`

// App reads one command per line and applies it to the game.
type App struct {
	game      *game.Game
	session   *session.Session
	in        *bufio.Scanner
	out       io.Writer
	renderer  *ui.TextRenderer
	autopilot *ai.Agent
	maxSteps  int

	commands map[string]func() error
	done     bool
}

type Option func(*App)

// WithAutopilot lets agent play instead of reading input. The game is
// abandoned after maxSteps moves.
func WithAutopilot(agent *ai.Agent, maxSteps int) Option {
	return func(a *App) {
		a.autopilot = agent
		a.maxSteps = maxSteps
	}
}

func New(g *game.Game, s *session.Session, in io.Reader, out io.Writer, opts ...Option) *App {
	a := &App{
		game:     g,
		session:  s,
		in:       bufio.NewScanner(in),
		out:      out,
		renderer: ui.NewTextRenderer(out),
	}
	a.commands = map[string]func() error{
		"x": a.cmdExit,
		"n": a.move(types.North),
		"s": a.move(types.South),
		"w": a.move(types.West),
		"e": a.move(types.East),
	}
	for _, opt := range opts {
		opt(a)
	}
	g.SetCollisionHandler(a.onCollision)
	return a
}

// Run loops until the game ends, the user exits or input runs out. The
// game is recorded in the session either way.
func (a *App) Run(ctx context.Context) error {
	a.session.Start(a.game)
	err := a.loop(ctx)
	if ferr := a.session.Finish(ctx, a.game); ferr != nil && err == nil {
		fmt.Fprintf(a.out, "Score not saved: %v\n", ferr)
	}
	return err
}

func (a *App) loop(ctx context.Context) error {
	for steps := 0; !a.done; steps++ {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if err := a.renderer.Render(a.game); err != nil {
			return err
		}

		if a.autopilot != nil {
			if steps >= a.maxSteps {
				fmt.Fprintf(a.out, "Autopilot stopped after %d moves. Score: %d\n", steps, a.game.Score())
				return nil
			}
			outcome, err := a.autopilot.Step(a.game, false)
			if err != nil {
				return err
			}
			a.session.Observe(a.game, outcome)
			continue
		}

		fmt.Fprint(a.out, Prompt)
		if !a.in.Scan() {
			fmt.Fprintln(a.out)
			return a.in.Err()
		}
		if err := a.runCmd(strings.TrimSpace(a.in.Text())); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) runCmd(cmd string) error {
	fn, ok := a.commands[cmd]
	if !ok {
		fmt.Fprintf(a.out, unknownCommand, cmd)
		return nil
	}
	return fn()
}

func (a *App) cmdExit() error {
	a.done = true
	return nil
}

func (a *App) move(dir types.Direction) func() error {
	return func() error {
		outcome, err := a.game.Move(dir)
		if err != nil {
			return err
		}
		a.session.Observe(a.game, outcome)
		return nil
	}
}

func (a *App) onCollision() {
	a.done = true
	a.renderer.Render(a.game)
	fmt.Fprintf(a.out, "Game over! The snake hit the %s. Score: %d, length: %d\n",
		a.game.Cause(), a.game.Score(), a.game.SnakeLen())
}
