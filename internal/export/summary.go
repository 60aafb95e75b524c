package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/ShapeFill/internal/engine"
	"github.com/piwi3910/ShapeFill/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// RunSummary describes a finished fill run. It is the payload of the QR
// code on the PDF summary page.
type RunSummary struct {
	RunID        string    `json:"run_id"`
	Started      time.Time `json:"started"`
	Finished     time.Time `json:"finished"`
	Elapsed      float64   `json:"elapsed_s"`
	Count        int       `json:"count"`
	Seed         int64     `json:"seed"`
	Stretch      int       `json:"stretch"`
	CanvasWidth  float64   `json:"canvas_width"`
	CanvasHeight float64   `json:"canvas_height"`
}

// NewRunSummary builds the summary of a run from its config and stats.
// Elapsed is rounded to hundredths of a second.
func NewRunSummary(cfg model.AppConfig, stats engine.Stats) RunSummary {
	return RunSummary{
		RunID:        cfg.RunID,
		Started:      stats.Started,
		Finished:     stats.Finished,
		Elapsed:      math.Round(stats.Elapsed().Seconds()*100) / 100,
		Count:        stats.Placed,
		Seed:         cfg.Seed,
		Stretch:      cfg.Stretch,
		CanvasWidth:  cfg.CanvasWidth,
		CanvasHeight: cfg.CanvasHeight,
	}
}

// Title formats the summary as "<run> <start> - <end> - <elapsed> - <count>".
func (s RunSummary) Title() string {
	return fmt.Sprintf("%s %s - %s - %s - %d",
		s.RunID,
		s.Started.Format(time.TimeOnly),
		s.Finished.Format(time.TimeOnly),
		strconv.FormatFloat(s.Elapsed, 'f', -1, 64),
		s.Count)
}

// ResultLine is the machine-readable "<run>,<count>" line printed after a run.
func (s RunSummary) ResultLine() string {
	return fmt.Sprintf("%s,%d", s.RunID, s.Count)
}

// ShapeInfo is the flattened, export-friendly view of a placed shape.
type ShapeInfo struct {
	ID       string            `json:"id"`
	Label    string            `json:"label"`
	Color    string            `json:"color"`
	X        float64           `json:"x"`
	Y        float64           `json:"y"`
	StretchX float64           `json:"stretch_x"`
	StretchY float64           `json:"stretch_y"`
	Bounds   model.BoundingBox `json:"bounds"`
	Area     float64           `json:"area"`
	Vertices string            `json:"vertices"`
}

// CollectShapeInfos extracts export rows from a scene in placement order.
func CollectShapeInfos(scene *model.Scene) []ShapeInfo {
	var infos []ShapeInfo
	for _, s := range scene.Shapes() {
		world := s.WorldOutline()
		infos = append(infos, ShapeInfo{
			ID:       s.ID,
			Label:    s.Label,
			Color:    s.Color,
			X:        s.Position.X,
			Y:        s.Position.Y,
			StretchX: s.StretchX,
			StretchY: s.StretchY,
			Bounds:   s.Bounds(),
			Area:     world.Area(),
			Vertices: world.String(),
		})
	}
	return infos
}

// renderQR draws a QR code of payload's JSON encoding with its top-left
// corner at x, y.
func renderQR(pdf *fpdf.Fpdf, name string, payload any, x, y, size float64) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal QR payload: %w", err)
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	pdf.ImageOptions(name, x, y, size, size, false, opts, 0, "")
	return pdf.Error()
}
