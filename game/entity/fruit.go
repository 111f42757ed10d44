package entity

import "slither/game/types"

// Fruit is a single-cell pickup.
type Fruit struct {
	id  ID
	pos types.Point
}

func (f *Fruit) ID() ID     { return f.id }
func (f *Fruit) Kind() Kind { return FruitCell }

func (f *Fruit) Position() types.Point {
	return f.pos
}

func (f *Fruit) Cells() []types.Point {
	return []types.Point{f.pos}
}

func (f *Fruit) Occupies(p types.Point) bool {
	return f.pos == p
}
