package importer

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/piwi3910/ShapeFill/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// segment is one LINE, or one piece of a sampled ARC, waiting to be chained.
type segment struct {
	start model.Point2D
	end   model.Point2D
}

// ImportDXF imports shape definitions from a DXF file. Each closed shape
// (LWPOLYLINE, CIRCLE, or chain of connected LINEs/ARCs) becomes a definition
// centered on its bounding-box center, so placement positions refer to the
// middle of the shape.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines []model.Outline
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			if !e.Closed {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Skipped open LWPOLYLINE with %d vertices", len(e.Vertices)))
				continue
			}
			outline := lwPolylineToOutline(e)
			if len(outline) >= 3 {
				outlines = append(outlines, outline)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			outlines = append(outlines, circleToOutline(e, 64))

		case *entity.Arc:
			pts := arcToPoints(e, 32)
			if len(pts) >= 2 {
				segments = append(segments, pointsToSegments(pts)...)
			}

		case *entity.Line:
			segments = append(segments, segment{start: vertexPoint(e.Start), end: vertexPoint(e.End)})
		}
	}

	chained, open := chainSegments(segments, 0.01)
	outlines = append(outlines, chained...)
	if open > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Skipped %d open LINE/ARC path(s)", open))
	}

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for i, outline := range outlines {
		box := outline.Bounds()
		if box.Width() < 0.01 || box.Height() < 0.01 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f)", box.Width(), box.Height()))
			continue
		}
		result.Shapes = append(result.Shapes, model.ShapeDef{
			Name:    fmt.Sprintf("%s-%d", base, i+1),
			Outline: outline.Centered(),
		})
	}

	if len(result.Shapes) == 0 {
		result.Errors = append(result.Errors, "No usable shapes found in DXF file")
	}
	return result
}

// vertexPoint reads the X and Y of a DXF coordinate.
func vertexPoint(v []float64) model.Point2D {
	return model.Point2D{X: v[0], Y: v[1]}
}

// lwPolylineToOutline converts a closed LWPOLYLINE to an Outline. A vertex
// with a non-zero bulge is followed by the arc it describes.
func lwPolylineToOutline(lw *entity.LwPolyline) model.Outline {
	var outline model.Outline
	n := len(lw.Vertices)
	for i, v := range lw.Vertices {
		current := vertexPoint(v)
		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}
		if math.Abs(bulge) < 1e-9 {
			outline = append(outline, current)
			continue
		}
		next := vertexPoint(lw.Vertices[(i+1)%n])
		arc := bulgeArcPoints(current, next, bulge, 32)
		// next is appended by its own iteration.
		outline = append(outline, arc[:len(arc)-1]...)
	}
	return outline
}

// bulgeArcPoints samples the arc from p1 to p2 described by a DXF bulge,
// the tangent of a quarter of the signed included angle. Positive bulges
// run counter-clockwise.
func bulgeArcPoints(p1, p2 model.Point2D, bulge float64, numSegments int) []model.Point2D {
	chord := p2.Sub(p1)
	length := math.Sqrt(chord.Dot(chord))
	if length < 1e-9 {
		return []model.Point2D{p1, p2}
	}

	sweep := 4 * math.Atan(bulge)
	radius := length / (2 * math.Sin(math.Abs(sweep)/2))

	// The center sits on the chord's bisector, left of p1->p2 for
	// counter-clockwise arcs. Past a half turn the offset flips sign.
	offset := math.Copysign(radius*math.Cos(sweep/2), bulge)
	normal := chord.Normalize().Perp()
	mid := model.Point2D{X: (p1.X + p2.X) / 2, Y: (p1.Y + p2.Y) / 2}
	center := mid.Add(model.Point2D{X: normal.X * offset, Y: normal.Y * offset})

	from := p1.Sub(center)
	return arcPoints(center, radius, math.Atan2(from.Y, from.X), sweep, numSegments)
}

// arcPoints returns numSegments+1 points on a circle, starting at angle
// start and turning by sweep radians.
func arcPoints(center model.Point2D, radius, start, sweep float64, numSegments int) []model.Point2D {
	pts := make([]model.Point2D, numSegments+1)
	for i := range pts {
		angle := start + sweep*float64(i)/float64(numSegments)
		pts[i] = center.Add(model.Point2D{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)})
	}
	return pts
}

// circleToOutline approximates a circle as a regular polygon.
func circleToOutline(c *entity.Circle, numSegments int) model.Outline {
	pts := arcPoints(vertexPoint(c.Center), c.Radius, 0, 2*math.Pi, numSegments)
	return model.Outline(pts[:numSegments])
}

// arcToPoints samples a DXF ARC, which always runs counter-clockwise from
// its start angle to its end angle in degrees.
func arcToPoints(a *entity.Arc, numSegments int) []model.Point2D {
	start := a.Angle[0] * math.Pi / 180
	sweep := a.Angle[1]*math.Pi/180 - start
	if sweep <= 0 {
		sweep += 2 * math.Pi
	}
	return arcPoints(vertexPoint(a.Circle.Center), a.Circle.Radius, start, sweep, numSegments)
}

// pointsToSegments converts a point sequence to a slice of connected segments.
func pointsToSegments(pts []model.Point2D) []segment {
	segs := make([]segment, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		segs = append(segs, segment{start: pts[i], end: pts[i+1]})
	}
	return segs
}

// continueFrom returns the far end of s when either end meets p.
func (s segment) continueFrom(p model.Point2D, tolerance float64) (model.Point2D, bool) {
	switch {
	case pointsClose(p, s.start, tolerance):
		return s.end, true
	case pointsClose(p, s.end, tolerance):
		return s.start, true
	}
	return model.Point2D{}, false
}

// chainSegments joins segments end to end and returns the chains that close
// on themselves, largest area first, plus the number of chains left open.
// tolerance is the maximum gap between endpoints that still connect.
func chainSegments(segs []segment, tolerance float64) ([]model.Outline, int) {
	used := make([]bool, len(segs))
	var outlines []model.Outline
	open := 0

	for first := range segs {
		if used[first] {
			continue
		}
		used[first] = true
		chain := []model.Point2D{segs[first].start, segs[first].end}

		for extended := true; extended; {
			extended = false
			tail := chain[len(chain)-1]
			for i, seg := range segs {
				if used[i] {
					continue
				}
				if next, ok := seg.continueFrom(tail, tolerance); ok {
					chain = append(chain, next)
					used[i] = true
					extended = true
					break
				}
			}
		}

		// A closed chain repeats its first point; it needs three distinct ones.
		if len(chain) < 4 || !pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			open++
			continue
		}
		outlines = append(outlines, model.Outline(chain[:len(chain)-1]))
	}

	sort.SliceStable(outlines, func(i, j int) bool {
		return outlines[i].Area() > outlines[j].Area()
	})
	return outlines, open
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b model.Point2D, tolerance float64) bool {
	return model.SquaredDistance(a, b) <= tolerance*tolerance
}
