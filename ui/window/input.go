package window

import (
	"slither/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var keyDirections = []struct {
	keys []int32
	dir  types.Direction
}{
	{[]int32{rl.KeyUp, rl.KeyW, rl.KeyK}, types.North},
	{[]int32{rl.KeyDown, rl.KeyS, rl.KeyJ}, types.South},
	{[]int32{rl.KeyLeft, rl.KeyA, rl.KeyH}, types.West},
	{[]int32{rl.KeyRight, rl.KeyD, rl.KeyL}, types.East},
}

// PressedDirection reports the direction key pressed this frame, if any.
func PressedDirection() (types.Direction, bool) {
	for _, kd := range keyDirections {
		for _, k := range kd.keys {
			if rl.IsKeyPressed(k) {
				return kd.dir, true
			}
		}
	}
	return 0, false
}

func RestartPressed() bool { return rl.IsKeyPressed(rl.KeyR) }

func QuitPressed() bool { return rl.IsKeyPressed(rl.KeyQ) }
