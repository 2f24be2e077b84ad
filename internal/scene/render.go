package scene

import (
	"math"

	"github.com/RealHoonjang/Dodgeball-AR/internal/draw"
	"github.com/RealHoonjang/Dodgeball-AR/internal/game"
	"github.com/RealHoonjang/Dodgeball-AR/internal/physics"
)

// PlayerSrc is the material source that marks the player's avatar.
const PlayerSrc = "player"

// Real entity sizes are a few pixels at most, so glyphs are drawn no smaller than these.
const (
	minRockRadius     = 1.5
	minTriangleRadius = 2.0
)

// Draw renders every visible entity onto the canvas in creation order.
func (s *Scene) Draw(c *draw.Canvas) {
	for _, h := range s.order {
		e := s.entities[h]
		if !e.Visible {
			continue
		}
		pt, scale, ok := s.proj.Project(e.Position, s.camera)
		if !ok {
			continue
		}
		c.SetInk(inkFor(e.Material))
		switch e.Geometry.Primitive {
		case PrimitivePlane:
			s.drawRock(c, e, pt, scale)
		case PrimitiveTriangle:
			drawTriangle(c, pt, math.Max(minTriangleRadius, e.Geometry.Width/2*scale))
		default:
			c.SetFloat(pt.X, pt.Y)
		}
	}
}

// inkFor picks the pen for a material: the player stands out, faint rocks are dimmed.
func inkFor(m game.Material) draw.Ink {
	switch {
	case m.Src == PlayerSrc:
		return draw.InkCyan
	case m.Transparent && m.Opacity < 0.5:
		return draw.InkGray
	default:
		return draw.InkWhite
	}
}

// drawRock draws an irregular outline turned by the yaw that faces it to the camera.
func (s *Scene) drawRock(c *draw.Canvas, e *Entity, at draw.Point, scale float64) {
	yaw, _ := physics.LookAt(e.Position, s.camera)
	radius := math.Max(minRockRadius, e.Geometry.Width/2*scale)

	n := len(e.outline)
	points := c.BorrowPoints(n)
	for i, f := range e.outline {
		a := e.spin + yaw + float64(i)*2*math.Pi/float64(n)
		points[i] = draw.Point{
			X: at.X + math.Cos(a)*radius*f,
			Y: at.Y + math.Sin(a)*radius*f,
		}
	}
	c.DrawPolygon(points, false)
}

// drawTriangle draws a filled triangle centred on at with its nose pointing up.
func drawTriangle(c *draw.Canvas, at draw.Point, size float64) {
	const (
		nose = -math.Pi / 2
		wing = 2.5 // ~143 degrees either side of the nose
	)
	points := c.BorrowPoints(3)
	points[0] = draw.Point{X: at.X + math.Cos(nose)*size, Y: at.Y + math.Sin(nose)*size}
	points[1] = draw.Point{X: at.X + math.Cos(nose+wing)*size*0.8, Y: at.Y + math.Sin(nose+wing)*size*0.8}
	points[2] = draw.Point{X: at.X + math.Cos(nose-wing)*size*0.8, Y: at.Y + math.Sin(nose-wing)*size*0.8}
	c.DrawPolygon(points, true)
}
