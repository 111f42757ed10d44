package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"slither/ai"
	"slither/game"
	"slither/game/types"
	"slither/session"

	"golang.org/x/exp/rand"
)

func newGame(t *testing.T, w, h int, opts ...game.Option) *game.Game {
	t.Helper()
	g, err := game.New(w, h, append([]game.Option{game.WithSeed(1)}, opts...)...)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func run(t *testing.T, g *game.Game, input string, opts ...Option) (string, *session.Session) {
	t.Helper()
	s := session.New(nil)
	var out bytes.Buffer
	app := New(g, s, strings.NewReader(input), &out, opts...)
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	return out.String(), s
}

func TestExitCommand(t *testing.T) {
	g := newGame(t, 3, 3, game.WithFruitAt(types.Point{X: 0, Y: 0}))
	out, s := run(t, g, "x\nn\n")

	if g.Moves() != 0 {
		t.Errorf("commands after x must not run, moves = %d", g.Moves())
	}
	if !strings.HasPrefix(out, "o . . \n. X . \n. . . \n\n"+Prompt) {
		t.Errorf("unexpected output %q", out)
	}
	if len(s.Scores()) != 1 {
		t.Errorf("abandoned game should still be recorded")
	}
}

func TestMovesAndEOF(t *testing.T) {
	g := newGame(t, 5, 5, game.WithFruitAt(types.Point{X: 0, Y: 0}))
	run(t, g, "e\nn\nw\n")

	if g.Moves() != 3 {
		t.Fatalf("moves = %d, want 3", g.Moves())
	}
	if head := g.SnakeHead(); head != (types.Point{X: 2, Y: 1}) {
		t.Errorf("head = %v, want (2,1)", head)
	}
	if g.Over() {
		t.Error("game should still be active")
	}
}

func TestUnknownCommand(t *testing.T) {
	g := newGame(t, 3, 3)
	out, _ := run(t, g, "jump\n")

	if !strings.Contains(out, "Unknown command “jump”.") {
		t.Errorf("missing unknown command message in %q", out)
	}
	if !strings.Contains(out, "x  Exit the game") || !strings.Contains(out, "e  Slither eastward →") {
		t.Errorf("missing command list in %q", out)
	}
	if g.Moves() != 0 {
		t.Errorf("unknown command must not move the snake")
	}
}

func TestGameOverStopsLoop(t *testing.T) {
	g := newGame(t, 2, 1)
	out, s := run(t, g, "w\ne\ne\n")

	if !g.Over() {
		t.Fatal("expected game over")
	}
	if g.Moves() != 0 {
		t.Errorf("commands after game over must not run, moves = %d", g.Moves())
	}
	if !strings.Contains(out, "Game over! The snake hit the wall. Score: 0, length: 1") {
		t.Errorf("missing game over message in %q", out)
	}
	if h := s.Scores(); len(h) != 1 || h[0] != 0 {
		t.Errorf("history = %v", h)
	}
}

func TestAutopilotPlaysUntilLimit(t *testing.T) {
	g := newGame(t, 6, 6)
	agent := ai.NewAgent(rand.New(rand.NewSource(1)))
	out, _ := run(t, g, "", WithAutopilot(agent, 5))

	if g.Moves() == 0 {
		t.Fatal("autopilot did not move")
	}
	if !g.Over() && !strings.Contains(out, "Autopilot stopped after 5 moves") {
		t.Errorf("expected the step limit message, got %q", out)
	}
	if strings.Contains(out, Prompt) {
		t.Error("autopilot must not prompt for input")
	}
}
