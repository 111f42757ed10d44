package entity

import (
	"slither/game/types"

	"golang.org/x/exp/slices"
)

// Arena owns every entity of a game. Iteration follows insertion order so
// occupancy queries are stable across runs.
type Arena struct {
	nextID   ID
	entities []Entity
}

func NewArena() *Arena {
	return &Arena{nextID: 1}
}

func (a *Arena) AddSnake(start types.Point) *Snake {
	s := newSnake(a.allocate(), start)
	a.entities = append(a.entities, s)
	return s
}

func (a *Arena) AddFruit(pos types.Point) *Fruit {
	f := &Fruit{id: a.allocate(), pos: pos}
	a.entities = append(a.entities, f)
	return f
}

// Remove drops the entity with the given id. It reports whether one existed.
func (a *Arena) Remove(id ID) bool {
	i := slices.IndexFunc(a.entities, func(e Entity) bool { return e.ID() == id })
	if i < 0 {
		return false
	}
	a.entities = slices.Delete(a.entities, i, i+1)
	return true
}

func (a *Arena) Get(id ID) (Entity, bool) {
	i := slices.IndexFunc(a.entities, func(e Entity) bool { return e.ID() == id })
	if i < 0 {
		return nil, false
	}
	return a.entities[i], true
}

// At returns every entity covering p, in insertion order.
func (a *Arena) At(p types.Point) []Entity {
	var found []Entity
	for _, e := range a.entities {
		if e.Occupies(p) {
			found = append(found, e)
		}
	}
	return found
}

// Entities returns a copy of the arena contents in insertion order.
func (a *Arena) Entities() []Entity {
	return slices.Clone(a.entities)
}

func (a *Arena) Fruits() []*Fruit {
	var fruits []*Fruit
	for _, e := range a.entities {
		if f, ok := e.(*Fruit); ok {
			fruits = append(fruits, f)
		}
	}
	return fruits
}

// Occupied is the set of cells covered by any entity.
func (a *Arena) Occupied() map[types.Point]struct{} {
	cells := make(map[types.Point]struct{})
	for _, e := range a.entities {
		for _, c := range e.Cells() {
			cells[c] = struct{}{}
		}
	}
	return cells
}

func (a *Arena) Len() int {
	return len(a.entities)
}

func (a *Arena) allocate() ID {
	id := a.nextID
	a.nextID++
	return id
}
