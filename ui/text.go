// Package ui renders a game for people.
package ui

import (
	"bufio"
	"io"

	"slither/game/entity"
	"slither/game/types"
)

// Board is the read-only view a renderer needs. *game.Game satisfies it.
type Board interface {
	Width() int
	Height() int
	OccupantKind(p types.Point) entity.Kind
}

// Symbol is the character printed for an occupant kind.
func Symbol(k entity.Kind) byte {
	switch k {
	case entity.SnakeSegment:
		return 'X'
	case entity.FruitCell:
		return 'o'
	default:
		return '.'
	}
}

// TextRenderer prints the board as a grid of symbols, each followed by a
// space, with a blank line after the last row.
type TextRenderer struct {
	out io.Writer
}

func NewTextRenderer(out io.Writer) *TextRenderer {
	return &TextRenderer{out: out}
}

func (r *TextRenderer) Render(b Board) error {
	w := bufio.NewWriter(r.out)
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			w.WriteByte(Symbol(b.OccupantKind(types.Point{X: x, Y: y})))
			w.WriteByte(' ')
		}
		w.WriteByte('\n')
	}
	w.WriteByte('\n')
	return w.Flush()
}
