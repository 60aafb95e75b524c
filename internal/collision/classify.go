package collision

import "github.com/piwi3910/ShapeFill/internal/model"

// Tier identifies which check settled a classification.
type Tier int

const (
	TierManhattan Tier = iota
	TierCircle
	TierBox
	TierContainment
	TierSAT
	numTiers
)

func (t Tier) String() string {
	switch t {
	case TierManhattan:
		return "manhattan"
	case TierCircle:
		return "circle"
	case TierBox:
		return "box"
	case TierContainment:
		return "containment"
	case TierSAT:
		return "sat"
	default:
		return "unknown"
	}
}

// Tiers lists every tier in evaluation order.
func Tiers() []Tier {
	return []Tier{TierManhattan, TierCircle, TierBox, TierContainment, TierSAT}
}

// Classify returns the relationship between shapes a and b.
func Classify(a, b *model.Shape) model.Relationship {
	rel, _ := ClassifyTier(a, b)
	return rel
}

// ClassifyTier classifies a and b and reports the tier that decided.
// Each tier runs only when every cheaper tier failed to prove separation.
func ClassifyTier(a, b *model.Shape) (model.Relationship, Tier) {
	ca, cb := a.Circle(), b.Circle()
	if !centersClose(ca, cb) {
		return model.Separate, TierManhattan
	}
	if CircleRelationship(ca, cb) == model.Separate {
		return model.Separate, TierCircle
	}

	ba, bb := a.Bounds(), b.Bounds()
	if BoxRelationship(ba, bb) == model.Separate {
		return model.Separate, TierBox
	}

	wa, wb := a.WorldOutline(), b.WorldOutline()

	// Equal boxes allow containment either way; if both directions hold the
	// outlines coincide and the pair is reported as overlapping.
	aHoldsB := boxWithin(bb, ba) && OutlineContains(wa, wb)
	bHoldsA := boxWithin(ba, bb) && OutlineContains(wb, wa)
	switch {
	case aHoldsB && !bHoldsA:
		return model.AContainsB, TierContainment
	case bHoldsA && !aHoldsB:
		return model.BContainsA, TierContainment
	}

	if OutlinesSeparated(wa, wb) {
		return model.Separate, TierSAT
	}
	return model.Overlapping, TierSAT
}

// TierCounts tallies decisions per tier.
type TierCounts [numTiers]int

// Add records one decision by t.
func (c *TierCounts) Add(t Tier) {
	if t >= 0 && t < numTiers {
		c[t]++
	}
}

// Get returns the number of decisions made by t.
func (c *TierCounts) Get(t Tier) int {
	if t < 0 || t >= numTiers {
		return 0
	}
	return c[t]
}

// Total returns the number of recorded decisions.
func (c *TierCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}
