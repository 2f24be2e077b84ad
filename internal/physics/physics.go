// Package physics provides vector math, distance and orientation utilities.
package physics

import "math"

// Vec3 is a point or direction in scene space.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns v scaled to unit length.
// A zero-length (or non-finite) vector normalizes to the zero vector instead of NaN.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceXY returns the distance between a and b projected onto the XY plane (Z ignored).
func DistanceXY(a, b Vec3) float64 {
	return Distance(a.X, a.Y, b.X, b.Y)
}

// LookAt returns the yaw (rotation around Y) and pitch (rotation around X), in radians,
// that turn an object at from so that its front faces to.
// Coincident points yield zero angles.
func LookAt(from, to Vec3) (yaw, pitch float64) {
	d := to.Sub(from)
	if d.Len() == 0 {
		return 0, 0
	}
	yaw = math.Atan2(d.X, d.Z)
	pitch = math.Atan2(-d.Y, math.Hypot(d.X, d.Z))
	return yaw, pitch
}
