package model

import "fmt"

// Allowed ranges for user-facing settings.
const (
	MinStretch  = 1
	MaxStretch  = 10
	MinSeed     = 1
	MaxSeed     = 99
	MinDuration = 5  // seconds
	MaxDuration = 30 // seconds
)

// DefaultColors is the palette shapes are coloured from.
var DefaultColors = []string{"green", "blue", "yellow", "orange", "purple", "pink", "brown"}

// AppConfig holds the settings for a fill run.
// Field names map to SHAPEFILL_* variables with words split on case,
// e.g. MaxShapes is SHAPEFILL_MAX_SHAPES.
type AppConfig struct {
	RunID       string `json:"run_id" split_words:"true"`
	CatalogPath string `json:"catalog_path" split_words:"true"`
	Stretch     int    `json:"stretch" split_words:"true"`
	Seed        int64  `json:"seed" split_words:"true"`
	// Duration of a fill run in seconds.
	Duration int `json:"duration" split_words:"true"`
	// MaxAttempts caps positions tried per shape; 0 keeps trying until time runs out.
	MaxAttempts int `json:"max_attempts" split_words:"true"`
	// MaxShapes stops the run after this many placements; 0 means no limit.
	MaxShapes int `json:"max_shapes" split_words:"true"`
	// Workers above 1 split each scene query across goroutines.
	Workers int `json:"workers" split_words:"true"`

	CanvasWidth  float64 `json:"canvas_width" split_words:"true"`
	CanvasHeight float64 `json:"canvas_height" split_words:"true"`
	XYSpan       float64 `json:"xy_span" split_words:"true"` // fraction of the canvas used for centers
	XYStep       float64 `json:"xy_step" split_words:"true"` // grid step between candidate centers

	Colors []string `json:"colors" split_words:"true"`
}

// DefaultAppConfig returns an AppConfig populated with the stock run settings.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		RunID:        "shapefill",
		CatalogPath:  "shapes.txt",
		Stretch:      1,
		Seed:         1,
		Duration:     5,
		MaxAttempts:  0,
		MaxShapes:    0,
		Workers:      1,
		CanvasWidth:  1344,
		CanvasHeight: 756,
		XYSpan:       0.8,
		XYStep:       10,
		Colors:       append([]string(nil), DefaultColors...),
	}
}

// Validate checks every setting against its allowed range.
func (c AppConfig) Validate() error {
	if c.Stretch < MinStretch || c.Stretch > MaxStretch {
		return fmt.Errorf("stretch %d out of range %d - %d", c.Stretch, MinStretch, MaxStretch)
	}
	if c.Seed < MinSeed || c.Seed > MaxSeed {
		return fmt.Errorf("seed %d out of range %d - %d", c.Seed, MinSeed, MaxSeed)
	}
	if c.Duration < MinDuration || c.Duration > MaxDuration {
		return fmt.Errorf("duration %d out of range %d - %d", c.Duration, MinDuration, MaxDuration)
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("max attempts must be >= 0, got %d", c.MaxAttempts)
	}
	if c.MaxShapes < 0 {
		return fmt.Errorf("max shapes must be >= 0, got %d", c.MaxShapes)
	}
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		return fmt.Errorf("canvas size must be > 0, got %.0f x %.0f", c.CanvasWidth, c.CanvasHeight)
	}
	if c.XYSpan <= 0 || c.XYSpan > 1 {
		return fmt.Errorf("xy span %.2f out of range (0, 1]", c.XYSpan)
	}
	if c.XYStep <= 0 {
		return fmt.Errorf("xy step must be > 0, got %.2f", c.XYStep)
	}
	if len(c.Colors) == 0 {
		return fmt.Errorf("at least one color is required")
	}
	return nil
}
