// Package scene is the terminal-rendered 3D scene the game engine draws into.
//
// Entities live in scene space: the camera sits at the origin looking down -Z, X grows to
// the right and Y grows upwards. A Scene is owned by a single session goroutine and is
// not safe for concurrent use.
package scene

import (
	"math"
	"math/rand"

	"github.com/RealHoonjang/Dodgeball-AR/internal/game"
	"github.com/RealHoonjang/Dodgeball-AR/internal/physics"
)

// Primitive names understood by Draw.
const (
	PrimitivePlane    = "plane"    // Irregular rock outline, turned towards the camera
	PrimitiveTriangle = "triangle" // Filled triangle pointing up
)

// Entity is a drawable object in the scene.
type Entity struct {
	Handle   game.Handle
	Geometry game.Geometry
	Material game.Material
	Position physics.Vec3
	Visible  bool

	outline []float64 // Vertex radius factors for PrimitivePlane
	spin    float64   // Fixed outline rotation, radians
}

// Scene is an entity registry with a perspective camera.
type Scene struct {
	entities map[game.Handle]*Entity
	order    []game.Handle // Creation order, used as draw order
	next     game.Handle
	camera   physics.Vec3
	proj     Projection
	rng      *rand.Rand
}

// Compile-time check that Scene implements game.Renderer.
var _ game.Renderer = (*Scene)(nil)

// New creates an empty scene. rng shapes asteroid outlines and may be nil.
func New(proj Projection, rng *rand.Rand) *Scene {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Scene{
		entities: make(map[game.Handle]*Entity),
		proj:     proj,
		rng:      rng,
	}
}

// CreateEntity adds a visible entity at the origin and returns its handle.
func (s *Scene) CreateEntity(geometry game.Geometry, material game.Material) game.Handle {
	s.next++
	e := &Entity{
		Handle:   s.next,
		Geometry: geometry,
		Material: material,
		Visible:  true,
	}
	if geometry.Primitive == PrimitivePlane {
		e.outline = randomOutline(s.rng)
		e.spin = s.rng.Float64() * 2 * math.Pi
	}
	s.entities[e.Handle] = e
	s.order = append(s.order, e.Handle)
	return e.Handle
}

// SetPosition moves an entity. Unknown handles are ignored.
func (s *Scene) SetPosition(h game.Handle, pos physics.Vec3) {
	if e, ok := s.entities[h]; ok {
		e.Position = pos
	}
}

// RemoveEntity destroys an entity. Unknown handles are ignored.
func (s *Scene) RemoveEntity(h game.Handle) {
	if _, ok := s.entities[h]; !ok {
		return
	}
	delete(s.entities, h)
	for i, oh := range s.order {
		if oh == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Position returns an entity's position.
func (s *Scene) Position(h game.Handle) (physics.Vec3, bool) {
	e, ok := s.entities[h]
	if !ok {
		return physics.Vec3{}, false
	}
	return e.Position, true
}

// CameraPosition returns the camera position, always the origin.
func (s *Scene) CameraPosition() physics.Vec3 {
	return s.camera
}

// SetVisible shows or hides an entity.
func (s *Scene) SetVisible(h game.Handle, visible bool) {
	if e, ok := s.entities[h]; ok {
		e.Visible = visible
	}
}

// Entity returns a copy of an entity.
func (s *Scene) Entity(h game.Handle) (Entity, bool) {
	e, ok := s.entities[h]
	if !ok {
		return Entity{}, false
	}
	return *e, true
}

// Len returns the number of entities.
func (s *Scene) Len() int {
	return len(s.entities)
}

// Projection returns the camera projection.
func (s *Scene) Projection() Projection {
	return s.proj
}

// Translate moves an entity by delta, clamping X and Y to ±limit.
func (s *Scene) Translate(h game.Handle, delta physics.Vec3, limit physics.Vec3) {
	e, ok := s.entities[h]
	if !ok {
		return
	}
	p := e.Position.Add(delta)
	p.X = clamp(p.X, -limit.X, limit.X)
	p.Y = clamp(p.Y, -limit.Y, limit.Y)
	e.Position = p
}

// randomOutline generates 7-10 vertices whose radius varies by ±30% for an irregular shape.
func randomOutline(rng *rand.Rand) []float64 {
	n := 7 + rng.Intn(4)
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.7 + rng.Float64()*0.6
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
