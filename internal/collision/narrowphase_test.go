package collision

import (
	"testing"

	"github.com/piwi3910/ShapeFill/internal/model"
	"github.com/stretchr/testify/assert"
)

var triangle = model.Outline{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}}

// uShape is open at the top between x=3 and x=7 above y=3.
var uShape = model.Outline{
	{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 7, Y: 10},
	{X: 7, Y: 3}, {X: 3, Y: 3}, {X: 3, Y: 10}, {X: 0, Y: 10},
}

func TestPointInOutline_Triangle(t *testing.T) {
	assert.True(t, PointInOutline(model.Point2D{X: 1, Y: 1}, triangle))
	assert.False(t, PointInOutline(model.Point2D{X: 3, Y: 3}, triangle))
	assert.False(t, PointInOutline(model.Point2D{X: -1, Y: 1}, triangle))
	assert.False(t, PointInOutline(model.Point2D{X: 1, Y: 5}, triangle))
}

func TestPointInOutline_ConcaveNotch(t *testing.T) {
	assert.True(t, PointInOutline(model.Point2D{X: 1, Y: 8}, uShape), "left arm")
	assert.True(t, PointInOutline(model.Point2D{X: 9, Y: 8}, uShape), "right arm")
	assert.False(t, PointInOutline(model.Point2D{X: 5, Y: 8}, uShape), "inside the notch")
	assert.True(t, PointInOutline(model.Point2D{X: 5, Y: 1}, uShape), "base")
}

func TestPointInOutline_HorizontalEdgeAtQueryHeight(t *testing.T) {
	// The bottom edge lies on y=0; it never straddles and must not divide by zero.
	assert.False(t, PointInOutline(model.Point2D{X: 2, Y: 0}, model.Outline{{X: 0, Y: 0}, {X: 4, Y: 0}}))
	assert.NotPanics(t, func() { PointInOutline(model.Point2D{X: 2, Y: 0}, triangle) })
}

func TestPointInOutline_DegenerateOutlines(t *testing.T) {
	p := model.Point2D{X: 0, Y: 0}
	assert.False(t, PointInOutline(p, nil))
	assert.False(t, PointInOutline(p, model.Outline{{X: 0, Y: 0}}))
	assert.False(t, PointInOutline(p, model.Outline{{X: -1, Y: -1}, {X: 1, Y: 1}}))
}

func TestOutlineContains(t *testing.T) {
	outer := model.Outline{{X: -10, Y: -10}, {X: 10, Y: -10}, {X: 10, Y: 10}, {X: -10, Y: 10}}
	inner := model.Outline{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}

	assert.True(t, OutlineContains(outer, inner))
	assert.False(t, OutlineContains(inner, outer))
	assert.False(t, OutlineContains(outer, inner.Translate(9.5, 0)), "partly outside")
	assert.False(t, OutlineContains(outer, nil), "empty inner is never contained")
}

func TestOutlineContains_ConcaveApproximation(t *testing.T) {
	// Every vertex of the bar sits in one of the U's arms, yet the bar spans
	// the notch. Only vertices are tested, so this reports containment.
	bar := model.Outline{{X: 1, Y: 8}, {X: 9, Y: 8}, {X: 9, Y: 9}, {X: 1, Y: 9}}
	assert.True(t, OutlineContains(uShape, bar))
}

func TestOutlinesSeparated_Disjoint(t *testing.T) {
	assert.True(t, OutlinesSeparated(triangle, triangle.Translate(10, 0)))
	// Bounding boxes overlap but the diagonal edge separates them.
	assert.True(t, OutlinesSeparated(triangle, triangle.Scale(-1, -1).Translate(4.5, 4.5)))
}

func TestOutlinesSeparated_Overlapping(t *testing.T) {
	assert.False(t, OutlinesSeparated(triangle, triangle.Translate(1, 1)))
}

func TestOutlinesSeparated_TouchingIsNotSeparated(t *testing.T) {
	assert.False(t, OutlinesSeparated(triangle, triangle.Translate(4, 0)), "shared vertex")
	// Hypotenuses coincide along x+y=4.
	assert.False(t, OutlinesSeparated(triangle, triangle.Scale(-1, -1).Translate(4, 4)))
}

func TestOutlinesSeparated_ZeroLengthEdgeIsInert(t *testing.T) {
	withDup := model.Outline{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}}
	assert.False(t, OutlinesSeparated(withDup, triangle.Translate(1, 1)))
	assert.True(t, OutlinesSeparated(withDup, triangle.Translate(10, 10)))
}

func TestOutlinesSeparated_PointAgainstPolygon(t *testing.T) {
	assert.False(t, OutlinesSeparated(model.Outline{{X: 1, Y: 1}}, triangle))
	assert.True(t, OutlinesSeparated(model.Outline{{X: 5, Y: 5}}, triangle))
}
