package collision

import (
	"math"

	"github.com/piwi3910/ShapeFill/internal/model"
)

// OutlinesSeparated reports whether some edge normal of either outline is a
// separating axis. Exact for convex outlines; for near-convex shapes it may
// report overlap where there is none, never the reverse.
func OutlinesSeparated(a, b model.Outline) bool {
	for _, poly := range [2]model.Outline{a, b} {
		for i := range poly {
			edge := poly[(i+1)%len(poly)].Sub(poly[i])
			// A zero-length edge gives a zero axis, which projects everything
			// to 0 and never separates.
			axis := edge.Perp().Normalize()

			min1, max1 := project(a, axis)
			min2, max2 := project(b, axis)
			if max1 < min2 || max2 < min1 {
				return true
			}
		}
	}
	return false
}

// project returns the interval covered by the outline's vertices along axis.
func project(o model.Outline, axis model.Point2D) (float64, float64) {
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, p := range o {
		d := p.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

// PointInOutline tests p against the outline by casting a ray towards +x and
// counting edge crossings.
func PointInOutline(p model.Point2D, o model.Outline) bool {
	inside := false
	n := len(o)
	for i := 0; i < n; i++ {
		a, b := o[i], o[(i+1)%n]
		// The straddle test guarantees a.Y != b.Y before dividing.
		if (a.Y > p.Y) == (b.Y > p.Y) {
			continue
		}
		crossX := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
		if p.X <= crossX {
			inside = !inside
		}
	}
	return inside
}

// OutlineContains reports whether every vertex of inner lies inside outer.
// Edges of inner that leave and re-enter outer between vertices are not
// detected, so a concave outer can be misjudged.
func OutlineContains(outer, inner model.Outline) bool {
	if len(inner) == 0 {
		return false
	}
	for _, p := range inner {
		if !PointInOutline(p, outer) {
			return false
		}
	}
	return true
}
