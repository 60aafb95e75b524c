package model

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Relationship classifies an ordered pair of shapes (A, B).
type Relationship int

const (
	Separate    Relationship = iota // No contact at all
	Overlapping                     // Boundaries touch or cross
	AContainsB                      // B lies entirely inside A
	BContainsA                      // A lies entirely inside B
)

func (r Relationship) String() string {
	switch r {
	case Separate:
		return "Separate"
	case Overlapping:
		return "Overlapping"
	case AContainsB:
		return "AContainsB"
	case BContainsA:
		return "BContainsA"
	default:
		return "Unknown"
	}
}

// Swap returns the relationship seen from the reversed pair (B, A).
func (r Relationship) Swap() Relationship {
	switch r {
	case AContainsB:
		return BContainsA
	case BContainsA:
		return AContainsB
	default:
		return r
	}
}

// ShapeDef is a named base polygon from the shape catalog, in local coordinates.
type ShapeDef struct {
	Name    string  `json:"name"`
	Outline Outline `json:"outline"`
}

// Shape is a placed or candidate polygon on the canvas.
//
// Shapes are handled by pointer: the scene facade excludes a candidate from
// its own query by identity. Only the placement loop moves a candidate, and
// only before it is added to a scene.
type Shape struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Color    string  `json:"color"`
	Position Point2D `json:"position"`
	Base     Outline `json:"base"`
	StretchX float64 `json:"stretch_x"` // Horizontal stretch
	StretchY float64 `json:"stretch_y"` // Vertical stretch

	derived atomic.Pointer[derivedGeometry]
}

// derivedGeometry holds the world-space data computed from a shape.
type derivedGeometry struct {
	world  Outline
	box    BoundingBox
	circle BoundingCircle
}

// NewShape creates a shape from a catalog definition at the origin.
func NewShape(def ShapeDef, color string, stretchX, stretchY float64) *Shape {
	return &Shape{
		ID:       uuid.New().String()[:8],
		Label:    def.Name,
		Color:    color,
		Base:     def.Outline,
		StretchX: stretchX,
		StretchY: stretchY,
	}
}

// MoveTo sets the shape's center and drops any cached world geometry.
func (s *Shape) MoveTo(x, y float64) {
	s.Position = Point2D{X: x, Y: y}
	s.derived.Store(nil)
}

// WorldOutline returns the base outline stretched and translated to the shape's position.
// A shape without vertices is treated as a single point at its position.
func (s *Shape) WorldOutline() Outline {
	return s.geometry().world
}

// Bounds returns the axis-aligned bounding box of the world outline.
func (s *Shape) Bounds() BoundingBox {
	return s.geometry().box
}

// Circle returns the bounding circle of the world outline.
func (s *Shape) Circle() BoundingCircle {
	return s.geometry().circle
}

func (s *Shape) geometry() *derivedGeometry {
	if g := s.derived.Load(); g != nil {
		return g
	}
	g := computeGeometry(s)
	// A concurrent reader may have published first; both values are identical.
	s.derived.CompareAndSwap(nil, g)
	return g
}

func computeGeometry(s *Shape) *derivedGeometry {
	world := s.Base.Scale(s.StretchX, s.StretchY).Translate(s.Position.X, s.Position.Y)
	if len(world) == 0 {
		world = Outline{s.Position}
	}
	box := world.Bounds()
	return &derivedGeometry{world: world, box: box, circle: box.Circle()}
}

// Scene is the ordered, append-only collection of placed shapes.
type Scene struct {
	shapes []*Shape
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// Add appends a shape to the scene.
func (sc *Scene) Add(s *Shape) {
	sc.shapes = append(sc.shapes, s)
}

// Shapes returns the placed shapes in insertion order. Callers must not modify the slice.
func (sc *Scene) Shapes() []*Shape {
	return sc.shapes
}

// Len returns the number of placed shapes.
func (sc *Scene) Len() int {
	return len(sc.shapes)
}
