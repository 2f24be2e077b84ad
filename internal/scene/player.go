package scene

import (
	"time"

	"github.com/RealHoonjang/Dodgeball-AR/internal/game"
	"github.com/RealHoonjang/Dodgeball-AR/internal/input"
	"github.com/RealHoonjang/Dodgeball-AR/internal/physics"
)

// Controller moves the player entity from keyboard input, standing in for the tracked
// marker that positions the avatar in the camera feed.
type Controller struct {
	Speed float64      // Scene units per second
	Limit physics.Vec3 // The player stays within ±Limit on X and Y
}

// DefaultController keeps the player half a unit inside the out-of-bounds limits.
func DefaultController() Controller {
	return Controller{
		Speed: 2.5,
		Limit: physics.Vec3{X: game.BoundX - 0.5, Y: game.BoundY - 0.5},
	}
}

// Apply moves h by one frame of held direction keys. Diagonals are normalized.
func (c Controller) Apply(s *Scene, h game.Handle, in input.Input, dt time.Duration) {
	var dir physics.Vec3
	if in.Left {
		dir.X--
	}
	if in.Right {
		dir.X++
	}
	if in.Up {
		dir.Y++
	}
	if in.Down {
		dir.Y--
	}
	dir = dir.Normalize()
	if dir == (physics.Vec3{}) {
		return
	}
	s.Translate(h, dir.Scale(c.Speed*dt.Seconds()), c.Limit)
}
