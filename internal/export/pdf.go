// Package export writes filled scenes to PDF and Excel files.
package export

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/ShapeFill/internal/model"
)

// shapeColor represents an RGB color for a placed shape.
type shapeColor struct {
	R, G, B int
}

// namedColors maps the palette names used in configs to RGB values.
var namedColors = map[string]shapeColor{
	"green":  {R: 0, G: 128, B: 0},
	"blue":   {R: 0, G: 0, B: 255},
	"yellow": {R: 255, G: 255, B: 0},
	"orange": {R: 255, G: 165, B: 0},
	"purple": {R: 160, G: 32, B: 240},
	"pink":   {R: 255, G: 192, B: 203},
	"brown":  {R: 165, G: 42, B: 42},
	"red":    {R: 255, G: 0, B: 0},
	"cyan":   {R: 0, G: 255, B: 255},
	"white":  {R: 255, G: 255, B: 255},
	"gray":   {R: 190, G: 190, B: 190},
}

// fallbackColor is used for palette names without an RGB entry.
var fallbackColor = shapeColor{R: 128, G: 128, B: 128}

func colorFor(name string) shapeColor {
	if c, ok := namedColors[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return fallbackColor
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	qrSize       = 45.0
)

// ExportPDF renders the scene on a canvas page followed by a summary page
// carrying a QR code of the run summary.
func ExportPDF(path string, scene *model.Scene, summary RunSummary) error {
	if scene == nil || scene.Len() == 0 {
		return fmt.Errorf("no shapes to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderCanvasPage(pdf, scene, summary)

	pdf.AddPage()
	if err := renderSummaryPage(pdf, scene, summary); err != nil {
		return err
	}

	return pdf.OutputFileAndClose(path)
}

// canvasExtent returns the canvas size to draw. Summaries without a canvas
// size fall back to the smallest origin-centered area holding every shape.
func canvasExtent(scene *model.Scene, summary RunSummary) (float64, float64) {
	if summary.CanvasWidth > 0 && summary.CanvasHeight > 0 {
		return summary.CanvasWidth, summary.CanvasHeight
	}
	var halfW, halfH float64
	for _, s := range scene.Shapes() {
		b := s.Bounds()
		halfW = math.Max(halfW, math.Max(math.Abs(b.Left), math.Abs(b.Right)))
		halfH = math.Max(halfH, math.Max(math.Abs(b.Bottom), math.Abs(b.Top)))
	}
	return math.Max(2*halfW, 1), math.Max(2*halfH, 1)
}

// renderCanvasPage draws every shape's world outline on a black canvas whose
// origin sits at the page-area center with y pointing up.
func renderCanvasPage(pdf *fpdf.Fpdf, scene *model.Scene, summary RunSummary) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, summary.Title(), "", 0, "L", false, 0, "")

	width, height := canvasExtent(scene, summary)
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := math.Min(drawWidth/width, drawHeight/height)

	canvasW := width * scale
	canvasH := height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	toPage := func(p model.Point2D) fpdf.PointType {
		return fpdf.PointType{
			X: offsetX + (p.X+width/2)*scale,
			Y: offsetY + (height/2-p.Y)*scale,
		}
	}

	pdf.SetFillColor(0, 0, 0)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	pdf.SetLineWidth(0.2)
	for _, s := range scene.Shapes() {
		col := colorFor(s.Color)
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(col.R, col.G, col.B)

		world := s.WorldOutline()
		if len(world) < 3 {
			p := toPage(s.Position)
			pdf.Circle(p.X, p.Y, 0.5, "F")
			continue
		}
		pts := make([]fpdf.PointType, len(world))
		for i, v := range world {
			pts[i] = toPage(v)
		}
		pdf.Polygon(pts, "FD")
	}

	drawShapeLegend(pdf, scene, offsetY+canvasH+5)
}

// labelCount is one row of the per-label breakdown.
type labelCount struct {
	Label string
	Count int
	Area  float64
}

// countLabels groups placed shapes by catalog label, sorted by label.
func countLabels(scene *model.Scene) []labelCount {
	byLabel := make(map[string]*labelCount)
	for _, info := range CollectShapeInfos(scene) {
		lc, ok := byLabel[info.Label]
		if !ok {
			lc = &labelCount{Label: info.Label}
			byLabel[info.Label] = lc
		}
		lc.Count++
		lc.Area += info.Area
	}

	counts := make([]labelCount, 0, len(byLabel))
	for _, lc := range byLabel {
		counts = append(counts, *lc)
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Label < counts[j].Label })
	return counts
}

// drawShapeLegend renders a compact per-label tally under the canvas.
func drawShapeLegend(pdf *fpdf.Fpdf, scene *model.Scene, startY float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Shapes placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for _, lc := range countLabels(scene) {
		label := fmt.Sprintf("%s x %d", lc.Label, lc.Count)
		labelW := pdf.GetStringWidth(label) + 2

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetXY(xPos, startY)
		pdf.CellFormat(labelW, 4, label, "", 0, "L", false, 0, "")
		xPos += labelW + 4
	}
}

// renderSummaryPage draws run statistics, the per-label breakdown and the
// summary QR code.
func renderSummaryPage(pdf *fpdf.Fpdf, scene *model.Scene, summary RunSummary) error {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Fill Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Run", "", 0, "L", false, 0, "")
	y += 9

	width, height := canvasExtent(scene, summary)
	summaryItems := []struct {
		label string
		value string
	}{
		{"Run ID", summary.RunID},
		{"Started", summary.Started.Format("2006-01-02 15:04:05")},
		{"Finished", summary.Finished.Format("2006-01-02 15:04:05")},
		{"Elapsed", fmt.Sprintf("%.2f s", summary.Elapsed)},
		{"Shapes Placed", fmt.Sprintf("%d", summary.Count)},
		{"Seed", fmt.Sprintf("%d", summary.Seed)},
		{"Stretch", fmt.Sprintf("%d", summary.Stretch)},
		{"Canvas", fmt.Sprintf("%.0f x %.0f", width, height)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	if err := renderQR(pdf, "qr_summary", summary, pageWidth-marginRight-qrSize, marginTop+18, qrSize); err != nil {
		return fmt.Errorf("failed to render summary QR code: %w", err)
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Shape Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{60, 30, 50}
	headers := []string{"Shape", "Count", "Covered Area"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, lc := range countLabels(scene) {
		if y > pageHeight-marginBottom-10 {
			break
		}
		xPos = marginLeft
		rowData := []string{
			lc.Label,
			fmt.Sprintf("%d", lc.Count),
			fmt.Sprintf("%.0f", lc.Area),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by ShapeFill", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	return nil
}
