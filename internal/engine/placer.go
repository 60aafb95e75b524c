// Package engine fills a canvas with randomly placed, non-touching shapes.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/piwi3910/ShapeFill/internal/collision"
	"github.com/piwi3910/ShapeFill/internal/model"
)

// Placer runs the random placement search over a candidate grid.
type Placer struct {
	Config  model.AppConfig
	Catalog []model.ShapeDef

	logger *slog.Logger
	rng    *rand.Rand
	xs, ys []float64
}

// Stats summarises a fill run.
type Stats struct {
	Placed    int // shapes added to the scene
	Abandoned int // shapes that ran out of attempts
	Attempts  int // candidate positions tried
	Rejected  int // positions refused by the scene query
	Tiers     collision.TierCounts
	Started   time.Time
	Finished  time.Time
}

// Elapsed returns the wall-clock duration of the run.
func (s Stats) Elapsed() time.Duration {
	return s.Finished.Sub(s.Started)
}

// New validates the configuration and prepares a placer seeded from it.
// A nil logger falls back to slog.Default().
func New(cfg model.AppConfig, catalog []model.ShapeDef, logger *slog.Logger) (*Placer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if len(catalog) == 0 {
		return nil, errors.New("shape catalog is empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	xs := CandidateGrid(cfg.CanvasWidth, cfg.XYSpan, cfg.XYStep)
	ys := CandidateGrid(cfg.CanvasHeight, cfg.XYSpan, cfg.XYStep)
	if len(xs) == 0 || len(ys) == 0 {
		return nil, fmt.Errorf("canvas %.0f x %.0f leaves no candidate positions", cfg.CanvasWidth, cfg.CanvasHeight)
	}
	return &Placer{
		Config:  cfg,
		Catalog: catalog,
		logger:  logger,
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		xs:      xs,
		ys:      ys,
	}, nil
}

// CandidateGrid returns the coordinates on one axis where shape centers may
// land: from -extent/2*span up to (not including) +extent/2*span in steps.
func CandidateGrid(extent, span, step float64) []float64 {
	half := float64(int(extent / 2 * span))
	if step <= 0 {
		return nil
	}
	var coords []float64
	for v := -half; v < half; v += step {
		coords = append(coords, v)
	}
	return coords
}

// Run fills a new scene for the configured duration.
func (p *Placer) Run(ctx context.Context) (*model.Scene, Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(p.Config.Duration)*time.Second)
	defer cancel()
	return p.Fill(ctx)
}

// Fill keeps creating random shapes and searching for a free spot for each
// until ctx is done or MaxShapes is reached. Running out of time is the
// normal way for a fill to end and is not an error; a cancelled ctx returns
// the partial scene together with ctx's error.
func (p *Placer) Fill(ctx context.Context) (*model.Scene, Stats, error) {
	scene := model.NewScene()
	stats := Stats{Started: time.Now()}

	p.logger.Info("fill started",
		"run", p.Config.RunID,
		"seed", p.Config.Seed,
		"stretch", p.Config.Stretch,
		"catalog", len(p.Catalog),
		"grid", len(p.xs)*len(p.ys),
	)

	var err error
	for ctx.Err() == nil {
		if p.Config.MaxShapes > 0 && stats.Placed >= p.Config.MaxShapes {
			break
		}

		def := p.Catalog[p.rng.Intn(len(p.Catalog))]
		color := p.Config.Colors[p.rng.Intn(len(p.Config.Colors))]
		stretch := float64(p.Config.Stretch)
		shape := model.NewShape(def, color, stretch, stretch)

		var placed bool
		placed, err = p.Place(ctx, scene, shape, &stats)
		if err != nil {
			break
		}
		if placed {
			scene.Add(shape)
			stats.Placed++
			p.logger.Debug("shape placed",
				"id", shape.ID, "label", shape.Label, "color", shape.Color,
				"x", shape.Position.X, "y", shape.Position.Y, "count", scene.Len())
		} else if ctx.Err() == nil {
			stats.Abandoned++
			p.logger.Debug("shape abandoned", "label", shape.Label, "attempts", p.Config.MaxAttempts)
		}
	}
	stats.Finished = time.Now()

	if err == nil {
		err = ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}

	attrs := []any{
		"run", p.Config.RunID,
		"placed", stats.Placed,
		"abandoned", stats.Abandoned,
		"attempts", stats.Attempts,
		"rejected", stats.Rejected,
		"elapsed", stats.Elapsed().Round(time.Millisecond),
	}
	// Parallel queries do not count tiers.
	if p.Config.Workers <= 1 {
		attrs = append(attrs, tierGroup(stats.Tiers))
	}
	p.logger.Info("fill finished", attrs...)
	return scene, stats, err
}

// Place moves shape to random grid positions until the scene accepts it,
// the attempt budget is spent, or ctx is done. The shape is not added to
// the scene. Deadline expiry reports false without an error.
func (p *Placer) Place(ctx context.Context, scene *model.Scene, shape *model.Shape, stats *Stats) (bool, error) {
	for attempt := 0; p.Config.MaxAttempts == 0 || attempt < p.Config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return false, nil
			}
			return false, err
		}

		x := p.xs[p.rng.Intn(len(p.xs))]
		y := p.ys[p.rng.Intn(len(p.ys))]
		shape.MoveTo(x, y)
		stats.Attempts++

		ok, err := p.mayPlace(ctx, scene, shape, stats)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return false, nil
			}
			return false, err
		}
		if ok {
			return true, nil
		}
		stats.Rejected++
	}
	return false, nil
}

func (p *Placer) mayPlace(ctx context.Context, scene *model.Scene, shape *model.Shape, stats *Stats) (bool, error) {
	if p.Config.Workers > 1 {
		return collision.MayPlaceParallel(ctx, shape, scene, p.Config.Workers)
	}
	return collision.MayPlaceCounted(shape, scene, &stats.Tiers), nil
}

// tierGroup renders per-tier decision counts as a log group.
func tierGroup(counts collision.TierCounts) slog.Attr {
	attrs := make([]any, 0, len(collision.Tiers()))
	for _, t := range collision.Tiers() {
		attrs = append(attrs, slog.Int(t.String(), counts.Get(t)))
	}
	return slog.Group("tiers", attrs...)
}
