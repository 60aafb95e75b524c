package collision

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/ShapeFill/internal/model"
)

// ShapeSet is the read side of a scene: placed shapes in insertion order.
type ShapeSet interface {
	Shapes() []*model.Shape
}

// MayPlace reports whether candidate is Separate from every shape in scene.
// It stops at the first contact. The candidate itself is skipped if present.
func MayPlace(candidate *model.Shape, scene ShapeSet) bool {
	return MayPlaceCounted(candidate, scene, nil)
}

// MayPlaceCounted behaves like MayPlace and records the deciding tier of
// every pair it classifies into counts, when counts is non-nil.
func MayPlaceCounted(candidate *model.Shape, scene ShapeSet, counts *TierCounts) bool {
	for _, existing := range scene.Shapes() {
		if existing == candidate {
			continue
		}
		rel, tier := ClassifyTier(candidate, existing)
		if counts != nil {
			counts.Add(tier)
		}
		if rel != model.Separate {
			return false
		}
	}
	return true
}

// errContact stops the remaining workers once one pair is found touching.
var errContact = errors.New("candidate touches a placed shape")

// MayPlaceParallel splits the scene across up to workers goroutines and
// returns the same answer as MayPlace. The first contact cancels the others.
// An error is returned only when ctx ends before an answer is known.
func MayPlaceParallel(ctx context.Context, candidate *model.Shape, scene ShapeSet, workers int) (bool, error) {
	shapes := scene.Shapes()
	if workers < 2 || len(shapes) < 2 {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		return MayPlace(candidate, scene), nil
	}
	if workers > len(shapes) {
		workers = len(shapes)
	}

	// Warm the candidate's cached geometry before sharing it.
	candidate.WorldOutline()

	g, gctx := errgroup.WithContext(ctx)
	chunk := (len(shapes) + workers - 1) / workers
	for start := 0; start < len(shapes); start += chunk {
		part := shapes[start:min(start+chunk, len(shapes))]
		g.Go(func() error {
			for _, existing := range part {
				if err := gctx.Err(); err != nil {
					return err
				}
				if existing == candidate {
					continue
				}
				if Classify(candidate, existing) != model.Separate {
					return errContact
				}
			}
			return nil
		})
	}

	err := g.Wait()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errContact):
		return false, nil
	default:
		return false, err
	}
}
