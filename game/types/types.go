package types

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/rand"
)

var (
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidField     = errors.New("field dimensions must be positive")
)

// Point is a cell coordinate. It has no bounds of its own; only a Field can
// tell whether it is valid.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is one of the four cardinal moves. The zero value is invalid.
type Direction int

const (
	North Direction = iota + 1
	South
	West
	East
)

// Directions lists every valid direction in a fixed order.
var Directions = [4]Direction{North, South, West, East}

func (d Direction) Valid() bool {
	return d >= North && d <= East
}

// Offset returns the unit vector of d. Y grows southward.
func (d Direction) Offset() Point {
	switch d {
	case North:
		return Point{X: 0, Y: -1}
	case South:
		return Point{X: 0, Y: 1}
	case West:
		return Point{X: -1, Y: 0}
	case East:
		return Point{X: 1, Y: 0}
	default:
		return Point{}
	}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case West:
		return "west"
	case East:
		return "east"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts the one-letter commands (n, s, w, e) and the full
// names, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "north":
		return North, nil
	case "s", "south":
		return South, nil
	case "w", "west":
		return West, nil
	case "e", "east":
		return East, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// Field is the fixed-size rectangle bounding all gameplay.
type Field struct {
	width  int
	height int
}

func NewField(width, height int) (Field, error) {
	if width <= 0 || height <= 0 {
		return Field{}, fmt.Errorf("%w: got %dx%d", ErrInvalidField, width, height)
	}
	return Field{width: width, height: height}, nil
}

func (f Field) Width() int  { return f.width }
func (f Field) Height() int { return f.height }
func (f Field) Size() int   { return f.width * f.height }

func (f Field) IsInside(p Point) bool {
	return p.X >= 0 && p.X < f.width && p.Y >= 0 && p.Y < f.height
}

// Center rounds down, so on even sizes it is the lower-index middle cell.
func (f Field) Center() Point {
	return Point{X: (f.width - 1) / 2, Y: (f.height - 1) / 2}
}

// AllPositions returns every cell in row-major order.
func (f Field) AllPositions() []Point {
	cells := make([]Point, 0, f.Size())
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			cells = append(cells, Point{X: x, Y: y})
		}
	}
	return cells
}

// RandomPosition picks any in-bounds cell, occupied or not.
func (f Field) RandomPosition(r *rand.Rand) Point {
	return Point{
		X: r.Intn(f.width),
		Y: r.Intn(f.height),
	}
}
