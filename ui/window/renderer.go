// Package window draws a game in a raylib window and reads arrow keys.
package window

import (
	"fmt"

	"slither/game"
	"slither/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	maxScores     = 50 // points shown in the score graph
	borderPadding = 10
)

// Panel is the session information drawn next to the field.
type Panel struct {
	HighScore int
	Scores    []int
	Autopilot bool
}

type Renderer struct {
	cellSize     int32
	screenWidth  int32
	screenHeight int32
	gameWidth    int32
	statsPanel   int32
	graphWidth   int32
	graphHeight  int32
	offsetX      int32
	offsetY      int32
	gridWidth    int32
	gridHeight   int32
}

func NewRenderer() *Renderer {
	r := &Renderer{}
	r.UpdateDimensions()
	return r
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())

	r.statsPanel = r.screenWidth / 4
	r.gameWidth = r.screenWidth - r.statsPanel

	r.graphWidth = r.statsPanel - 20
	r.graphHeight = r.screenHeight / 5
}

func (r *Renderer) Draw(g *game.Game, panel Panel) {
	r.UpdateDimensions()
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	fontSize := min(r.screenHeight/30, r.statsPanel/12)
	lineHeight := fontSize + fontSize/2

	r.layout(g.Width(), g.Height())

	rl.DrawRectangle(r.offsetX-1, r.offsetY-1, r.gridWidth+2, r.gridHeight+2, rl.DarkGray)
	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.Height(); y++ {
			r.cellLines(types.Point{X: x, Y: y}, rl.Gray)
		}
	}

	for _, f := range g.FruitPositions() {
		r.cell(f, rl.Red)
	}

	body := g.SnakeBody()
	for i, p := range body {
		color := rl.Green
		switch {
		case i == len(body)-1:
			color = rl.Lime
		case i == 0 && len(body) > 1:
			color = rl.DarkGreen
		}
		r.cell(p, color)
	}

	r.drawStatsPanel(g, panel, fontSize, lineHeight)

	if g.Over() {
		text := fmt.Sprintf("Game over (%s). Press R to restart", g.Cause())
		width := rl.MeasureText(text, fontSize)
		rl.DrawText(text, r.offsetX+(r.gridWidth-width)/2, r.offsetY+r.gridHeight/2, fontSize, rl.Yellow)
	}
	rl.EndDrawing()
}

// layout fits the field into the game area and centers it vertically.
func (r *Renderer) layout(width, height int) {
	availableWidth := r.gameWidth - borderPadding*2
	availableHeight := r.screenHeight - borderPadding*2

	r.cellSize = max(min(availableWidth/int32(width), availableHeight/int32(height)), 1)
	r.gridWidth = r.cellSize * int32(width)
	r.gridHeight = r.cellSize * int32(height)
	r.offsetX = borderPadding
	r.offsetY = (r.screenHeight - r.gridHeight) / 2
}

func (r *Renderer) cell(p types.Point, color rl.Color) {
	rl.DrawRectangle(r.offsetX+int32(p.X)*r.cellSize, r.offsetY+int32(p.Y)*r.cellSize, r.cellSize, r.cellSize, color)
}

func (r *Renderer) cellLines(p types.Point, color rl.Color) {
	rl.DrawRectangleLines(r.offsetX+int32(p.X)*r.cellSize, r.offsetY+int32(p.Y)*r.cellSize, r.cellSize, r.cellSize, color)
}

func (r *Renderer) drawStatsPanel(g *game.Game, panel Panel, fontSize, lineHeight int32) {
	statsX := r.gameWidth + 5
	statsY := int32(10)

	rl.DrawRectangle(statsX-5, 0, r.statsPanel+5, r.screenHeight, rl.DarkGray)

	mode := "manual"
	if panel.Autopilot {
		mode = "autopilot"
	}
	lines := []string{
		fmt.Sprintf("Score: %d", g.Score()),
		fmt.Sprintf("Length: %d", g.SnakeLen()),
		fmt.Sprintf("Moves: %d", g.Moves()),
		fmt.Sprintf("High: %d", max(panel.HighScore, g.Score())),
		fmt.Sprintf("Mode: %s", mode),
	}
	for _, line := range lines {
		rl.DrawText(line, statsX, statsY, fontSize, rl.White)
		statsY += lineHeight
	}

	r.drawScoreGraph(statsX, fontSize, panel.Scores)
}

func (r *Renderer) drawScoreGraph(graphX, fontSize int32, scores []int) {
	graphY := r.screenHeight - r.graphHeight - fontSize*2

	rl.DrawRectangleLines(graphX, graphY, r.graphWidth, r.graphHeight, rl.White)
	rl.DrawText("Scores", graphX, graphY-fontSize-5, fontSize, rl.White)

	if len(scores) > maxScores {
		scores = scores[len(scores)-maxScores:]
	}
	if len(scores) < 2 {
		return
	}

	maxScore := 1
	for _, s := range scores {
		maxScore = max(maxScore, s)
	}
	point := func(i int) (int32, int32) {
		x := graphX + int32(float32(r.graphWidth)*float32(i)/float32(maxScores))
		y := graphY + r.graphHeight - int32(float32(r.graphHeight)*float32(scores[i])/float32(maxScore))
		return x, y
	}
	for i := 1; i < len(scores); i++ {
		x1, y1 := point(i - 1)
		x2, y2 := point(i)
		rl.DrawLine(x1, y1, x2, y2, rl.SkyBlue)
	}
}
