package entity

import (
	"slither/game/types"
)

// Snake is an ordered body; the tail is Body[0] and the head the last cell.
type Snake struct {
	id   ID
	body []types.Point
}

func newSnake(id ID, start types.Point) *Snake {
	return &Snake{
		id:   id,
		body: []types.Point{start},
	}
}

func (s *Snake) ID() ID     { return s.id }
func (s *Snake) Kind() Kind { return SnakeSegment }

func (s *Snake) Head() types.Point {
	return s.body[len(s.body)-1]
}

func (s *Snake) Tail() types.Point {
	return s.body[0]
}

func (s *Snake) Len() int {
	return len(s.body)
}

// Body returns a copy, tail first.
func (s *Snake) Body() []types.Point {
	body := make([]types.Point, len(s.body))
	copy(body, s.body)
	return body
}

func (s *Snake) Cells() []types.Point {
	return s.Body()
}

func (s *Snake) Occupies(p types.Point) bool {
	for _, part := range s.body {
		if part == p {
			return true
		}
	}
	return false
}

// Project returns the cell the head would move to. It does not move.
func (s *Snake) Project(dir types.Direction) types.Point {
	return s.Head().Add(dir.Offset())
}

// CommitMove appends newHead and drops the tail unless grow is set.
// Callers validate newHead first.
func (s *Snake) CommitMove(newHead types.Point, grow bool) {
	s.body = append(s.body, newHead)
	if !grow {
		s.body = s.body[1:]
	}
}

// WouldBite reports whether moving the head to p lands on a segment that is
// still occupied after the move. The tail cell is vacated unless growing.
func (s *Snake) WouldBite(p types.Point, grow bool) bool {
	start := 1
	if grow {
		start = 0
	}
	for _, part := range s.body[start:] {
		if part == p {
			return true
		}
	}
	return false
}
