package game

import "github.com/RealHoonjang/Dodgeball-AR/internal/physics"

// Handle is an opaque reference to an entity owned by the Renderer.
type Handle uint64

// Geometry describes an entity's shape.
type Geometry struct {
	Primitive string
	Width     float64
	Height    float64
}

// Material describes an entity's appearance.
type Material struct {
	Src         string
	Transparent bool
	Opacity     float64
}

// Renderer is the scene the engine draws into.
// The engine reads the player's position from it but never keeps bookkeeping there.
type Renderer interface {
	CreateEntity(geometry Geometry, material Material) Handle
	SetPosition(h Handle, pos physics.Vec3)
	RemoveEntity(h Handle)
	// Position returns false when the renderer does not know the handle.
	Position(h Handle) (physics.Vec3, bool)
	CameraPosition() physics.Vec3
}

// UI receives every piece of text the engine displays.
type UI interface {
	SetScoreText(text string)
	SetStageText(text string)
	SetTimerText(text string)
	ShowCountdown(digit int)
	HideCountdown()
	ShowMessage(text string)
	HideMessage()
}

// Result is the final outcome handed to the Navigator on game over.
type Result struct {
	Score int
	Stage int
	Name  string
}

// Navigator stores the player name and takes over once the game ends.
type Navigator interface {
	StoredName() (string, bool)
	NavigateToResults(r Result)
}
