package scene

import (
	"github.com/RealHoonjang/Dodgeball-AR/internal/draw"
	"github.com/RealHoonjang/Dodgeball-AR/internal/physics"
)

// nearPlane is the closest depth in front of the camera that still gets drawn.
const nearPlane = 0.1

// Projection maps scene space onto the logical canvas with a pinhole camera.
type Projection struct {
	Width, Height  float64 // Logical canvas size
	FocalX, FocalY float64 // Logical units per scene unit at depth 1
}

// DefaultProjection frames the play field at depth 3 (±5 by ±4) in a 120×80 view.
func DefaultProjection(width, height float64) Projection {
	return Projection{
		Width:  width,
		Height: height,
		FocalX: width / 2 * 3 / 5,
		FocalY: height / 2 * 3 / 4,
	}
}

// Project returns where p lands on the canvas as seen from camera, and the number of
// logical units one scene unit covers at that depth. ok is false behind the near plane.
func (pr Projection) Project(p, camera physics.Vec3) (pt draw.Point, scale float64, ok bool) {
	d := p.Sub(camera)
	depth := -d.Z
	if depth < nearPlane {
		return draw.Point{}, 0, false
	}
	pt = draw.Point{
		X: pr.Width/2 + pr.FocalX*d.X/depth,
		Y: pr.Height/2 - pr.FocalY*d.Y/depth,
	}
	return pt, pr.FocalX / depth, true
}
