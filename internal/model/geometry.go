package model

import (
	"math"
	"strconv"
	"strings"
)

// Point2D represents a 2D coordinate in canvas units.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p + q.
func (p Point2D) Add(q Point2D) Point2D {
	return Point2D{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dot returns the dot product of p and q.
func (p Point2D) Dot(q Point2D) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Perp returns p rotated a quarter turn counter-clockwise.
func (p Point2D) Perp() Point2D {
	return Point2D{X: -p.Y, Y: p.X}
}

// Normalize returns the unit vector in the direction of p.
// The zero vector normalizes to itself.
func (p Point2D) Normalize() Point2D {
	mag := math.Hypot(p.X, p.Y)
	if mag == 0 {
		return Point2D{}
	}
	return Point2D{X: p.X / mag, Y: p.Y / mag}
}

// SquaredDistance returns the squared Euclidean distance between two points.
func SquaredDistance(p, q Point2D) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Outline represents a closed polygon as a sequence of 2D points.
// The outline is implicitly closed: the last point connects back to the first.
type Outline []Point2D

// Bounds returns the axis-aligned bounding box of the outline.
// An empty outline yields a zero box at the origin.
func (o Outline) Bounds() BoundingBox {
	if len(o) == 0 {
		return BoundingBox{}
	}
	b := BoundingBox{Left: o[0].X, Right: o[0].X, Bottom: o[0].Y, Top: o[0].Y}
	for _, p := range o[1:] {
		if p.X < b.Left {
			b.Left = p.X
		}
		if p.X > b.Right {
			b.Right = p.X
		}
		if p.Y < b.Bottom {
			b.Bottom = p.Y
		}
		if p.Y > b.Top {
			b.Top = p.Y
		}
	}
	return b
}

// Translate shifts all points by dx, dy.
func (o Outline) Translate(dx, dy float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return result
}

// Scale multiplies every x by sx and every y by sy.
func (o Outline) Scale(sx, sy float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X * sx, Y: p.Y * sy}
	}
	return result
}

// Area computes the absolute area using the shoelace formula.
func (o Outline) Area() float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += o[i].X*o[j].Y - o[j].X*o[i].Y
	}
	return math.Abs(area) / 2
}

// Centered returns a copy translated so its bounding box center sits at the origin.
func (o Outline) Centered() Outline {
	if len(o) == 0 {
		return o
	}
	c := o.Bounds().Center()
	return o.Translate(-c.X, -c.Y)
}

// String formats the outline as a vertex list, ((x1, y1), (x2, y2), ...),
// the same form shape catalogs use.
func (o Outline) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, p := range o {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		b.WriteString(strconv.FormatFloat(p.X, 'g', -1, 64))
		b.WriteString(", ")
		b.WriteString(strconv.FormatFloat(p.Y, 'g', -1, 64))
		b.WriteByte(')')
	}
	b.WriteByte(')')
	return b.String()
}

// BoundingBox is an axis-aligned box with Left <= Right and Bottom <= Top.
type BoundingBox struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Top    float64 `json:"top"`
}

// Width returns Right - Left.
func (b BoundingBox) Width() float64 { return b.Right - b.Left }

// Height returns Top - Bottom.
func (b BoundingBox) Height() float64 { return b.Top - b.Bottom }

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Point2D {
	return Point2D{X: (b.Left + b.Right) / 2, Y: (b.Bottom + b.Top) / 2}
}

// Circle returns the circle centered on the box with a radius of half its diagonal.
// It encloses every point of the box.
func (b BoundingBox) Circle() BoundingCircle {
	return BoundingCircle{
		Center: b.Center(),
		Radius: math.Hypot(b.Width(), b.Height()) / 2,
	}
}

// BoundingCircle is a conservative circular extent used for fast rejection.
type BoundingCircle struct {
	Center Point2D `json:"center"`
	Radius float64 `json:"radius"`
}
