package manager

import (
	"slither/game/entity"
	"slither/game/types"
)

// CollisionType tells why a move ended the game.
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
)

func (c CollisionType) String() string {
	switch c {
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	default:
		return "none"
	}
}

type CollisionManager struct {
	field         types.Field
	selfCollision bool
}

// NewCollisionManager checks field boundaries, and the snake's own body
// when selfCollision is set.
func NewCollisionManager(field types.Field, selfCollision bool) *CollisionManager {
	return &CollisionManager{
		field:         field,
		selfCollision: selfCollision,
	}
}

func (cm *CollisionManager) SelfCollisionEnabled() bool {
	return cm.selfCollision
}

// CheckCollision classifies moving snake's head to pos. grow must say
// whether the move eats, since a growing snake keeps its tail cell.
func (cm *CollisionManager) CheckCollision(pos types.Point, snake *entity.Snake, grow bool) CollisionType {
	if cm.isWallCollision(pos) {
		return WallCollision
	}
	if cm.selfCollision && snake != nil && snake.WouldBite(pos, grow) {
		return SelfCollision
	}
	return NoCollision
}

func (cm *CollisionManager) isWallCollision(pos types.Point) bool {
	return !cm.field.IsInside(pos)
}
