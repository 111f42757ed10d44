package entity

import "slither/game/types"

// ID identifies an entity inside one Arena. IDs are never reused.
type ID uint64

// Kind is the closed set of occupant tags renderers switch on.
type Kind int

const (
	Empty Kind = iota
	SnakeSegment
	FruitCell
)

func (k Kind) String() string {
	switch k {
	case SnakeSegment:
		return "snake"
	case FruitCell:
		return "fruit"
	default:
		return "empty"
	}
}

// Entity is anything that occupies cells of the field.
type Entity interface {
	ID() ID
	Kind() Kind
	Occupies(p types.Point) bool
	Cells() []types.Point
}
