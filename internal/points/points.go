// Package points implements the two pure pieces of the rewards core:
// the point calculator that turns a plastic batch into earned points
// and the rank classifier that maps a cumulative total onto a tier.
// Neither function touches any state; callers are responsible for
// validating that weight and quantity are positive.
package points

import (
	"math"

	"github.com/plastiside/plastiside/internal/model"
)

// Rank tier labels ordered from lowest to highest.
const (
	RankBronze   = "Bronze"
	RankSilver   = "Silver"
	RankGold     = "Gold"
	RankPlatinum = "Platinum"
)

// Tier thresholds, inclusive lower bounds evaluated highest-first.
const (
	platinumMin = 5000
	goldMin     = 3000
	silverMin   = 1000
)

// multipliers maps each accepted plastic type to its fixed point
// multiplier.  Unknown types use defaultMultiplier.
var multipliers = map[string]int64{
	model.PlasticPET:   10,
	model.PlasticHDPE:  15,
	model.PlasticPVC:   8,
	model.PlasticLDPE:  12,
	model.PlasticPP:    14,
	model.PlasticPS:    9,
	model.PlasticOther: 5,
}

const defaultMultiplier = 5

// ComputePoints returns the points earned for a batch of plastic:
// floor(weight * quantity * multiplier / 10).  The result is
// deterministic and non-negative for positive inputs.
func ComputePoints(plasticType string, weight float64, quantity int) int64 {
	mult, ok := multipliers[plasticType]
	if !ok {
		mult = defaultMultiplier
	}
	return int64(math.Floor(weight * float64(quantity) * float64(mult) / 10))
}

// ComputeRank maps a cumulative point total onto its tier label.
// Total over all non-negative integers: Platinum >= 5000,
// Gold >= 3000, Silver >= 1000, else Bronze.
func ComputeRank(total int64) string {
	switch {
	case total >= platinumMin:
		return RankPlatinum
	case total >= goldMin:
		return RankGold
	case total >= silverMin:
		return RankSilver
	default:
		return RankBronze
	}
}
