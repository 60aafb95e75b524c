package collision

import (
	"math"
	"math/rand"

	"github.com/piwi3910/ShapeFill/internal/model"
)

// squareDef has half-width 1, so a stretch of h gives a square of half-width h.
var squareDef = model.ShapeDef{
	Name:    "square",
	Outline: model.Outline{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}},
}

func square(cx, cy, half float64) *model.Shape {
	s := model.NewShape(squareDef, "green", half, half)
	s.MoveTo(cx, cy)
	return s
}

// unitSquare is a square of side 1 centered at (cx, cy).
func unitSquare(cx, cy float64) *model.Shape {
	return square(cx, cy, 0.5)
}

func regularDef(name string, sides int) model.ShapeDef {
	o := make(model.Outline, sides)
	for i := range o {
		angle := 2 * math.Pi * float64(i) / float64(sides)
		o[i] = model.Point2D{X: math.Cos(angle), Y: math.Sin(angle)}
	}
	return model.ShapeDef{Name: name, Outline: o}
}

var convexDefs = []model.ShapeDef{
	squareDef,
	regularDef("triangle", 3),
	regularDef("pentagon", 5),
	regularDef("hexagon", 6),
	{Name: "wedge", Outline: model.Outline{{X: -1, Y: -0.5}, {X: 2, Y: 0}, {X: -1, Y: 0.5}}},
}

// randomShape returns a stretched convex shape somewhere in a 40x40 area.
func randomShape(rng *rand.Rand) *model.Shape {
	def := convexDefs[rng.Intn(len(convexDefs))]
	s := model.NewShape(def, "blue", 0.5+rng.Float64()*4, 0.5+rng.Float64()*4)
	s.MoveTo(rng.Float64()*40-20, rng.Float64()*40-20)
	return s
}

// exactRelationship runs only the narrow phase: containment both ways, then SAT.
func exactRelationship(a, b *model.Shape) model.Relationship {
	wa, wb := a.WorldOutline(), b.WorldOutline()
	aHoldsB := OutlineContains(wa, wb)
	bHoldsA := OutlineContains(wb, wa)
	switch {
	case aHoldsB && !bHoldsA:
		return model.AContainsB
	case bHoldsA && !aHoldsB:
		return model.BContainsA
	}
	if OutlinesSeparated(wa, wb) {
		return model.Separate
	}
	return model.Overlapping
}
