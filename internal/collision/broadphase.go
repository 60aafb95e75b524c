// Package collision classifies how two placed shapes relate to each other
// and answers whether a candidate shape may join a scene.
//
// Checks are tiered from cheapest to most exact: a Manhattan distance
// prefilter, bounding circles, bounding boxes, then ray-cast containment and
// the Separating Axis Theorem on the world outlines. Any tier that reports
// Separate ends the check for that pair. Touching always counts as contact.
package collision

import (
	"math"

	"github.com/piwi3910/ShapeFill/internal/model"
)

// manhattanSlack converts a Euclidean reach into a Manhattan one.
// Manhattan distance is at most sqrt(2) times Euclidean distance.
const manhattanSlack = 1.5

// centersClose reports whether two circles are near enough, in Manhattan
// distance, to possibly touch. A false result means the pair is certainly separate.
func centersClose(a, b model.BoundingCircle) bool {
	manhattan := math.Abs(a.Center.X-b.Center.X) + math.Abs(a.Center.Y-b.Center.Y)
	return manhattan <= manhattanSlack*(a.Radius+b.Radius)
}

// CircleRelationship classifies two circles. Touching circles overlap;
// a circle whose boundary meets the other's from inside is contained.
func CircleRelationship(a, b model.BoundingCircle) model.Relationship {
	d2 := model.SquaredDistance(a.Center, b.Center)

	reach := a.Radius + b.Radius
	if d2 > reach*reach {
		return model.Separate
	}

	gap := a.Radius - b.Radius
	if d2 <= gap*gap {
		if b.Radius <= a.Radius {
			return model.AContainsB
		}
		return model.BContainsA
	}

	return model.Overlapping
}

// BoxRelationship classifies two axis-aligned boxes. Boxes sharing an edge
// overlap; equal edges still count as containment.
func BoxRelationship(a, b model.BoundingBox) model.Relationship {
	if horizontallySeparate(a, b) || verticallySeparate(a, b) {
		return model.Separate
	}
	if boxWithin(b, a) {
		return model.AContainsB
	}
	if boxWithin(a, b) {
		return model.BContainsA
	}
	return model.Overlapping
}

func horizontallySeparate(a, b model.BoundingBox) bool {
	return a.Right < b.Left || b.Right < a.Left
}

func verticallySeparate(a, b model.BoundingBox) bool {
	return a.Top < b.Bottom || b.Top < a.Bottom
}

// boxWithin reports whether every edge of inner lies within or on outer.
func boxWithin(inner, outer model.BoundingBox) bool {
	return inner.Left >= outer.Left && inner.Right <= outer.Right &&
		inner.Bottom >= outer.Bottom && inner.Top <= outer.Top
}
