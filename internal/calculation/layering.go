package calculation

import (
	"github.com/underwriting/capacity-calculator/internal/domain"
	"github.com/underwriting/capacity-calculator/pkg/decimal"
)

// ComputeLayering places a total insured value across the three treaty groups.
//
// Groups fill in order, each absorbing up to its capacity before the
// remainder spills into the next. Shares are derived as a rounding cascade:
// each step is rounded to three decimals before it feeds the next one, so
// the Group 3 share is not the same as rounding 1 - g1 - g2 computed from
// raw ratios.
//
// A non-positive TIV yields the zero result. A TIV above the combined
// capacity yields OverLine with no group amounts.
func ComputeLayering(input domain.LayeringInput) domain.LayeringResult {
	tiv := input.TotalInsuredValue
	if !tiv.IsPositive() || !input.TreatyType.Valid() || !input.HazardLevel.Valid() {
		return domain.LayeringResult{}
	}

	multiplier := input.TreatyType.Group2Multiplier()
	capacity := LookupCapacity(input.TreatyType, input.HazardLevel)
	g1Cap := capacity.Group1Capacity
	g2Cap := capacity.Group2Capacity(multiplier)
	g3Cap := capacity.Group3Capacity

	result := domain.LayeringResult{
		Group1:      domain.GroupLayer{Capacity: g1Cap},
		Group2:      domain.GroupLayer{Capacity: g2Cap},
		Group3:      domain.Group3Layer{GroupLayer: domain.GroupLayer{Capacity: g3Cap}},
		MaxCapacity: capacity.MaxCapacity(multiplier),
	}
	if tiv.GreaterThan(result.MaxCapacity) {
		result.OverLine = true
		return result
	}

	// Waterfall fill.
	g1Amount := decimal.Min(tiv, g1Cap)
	g2Amount := decimal.Min(tiv.Remainder(g1Amount), g2Cap)
	g3Amount := decimal.Min(tiv.Remainder(g1Amount.Add(g2Amount)), g3Cap)

	// Rounding cascade.
	one := decimal.One()
	g1Pct := g1Amount.Ratio(tiv).Round()
	g2Max := g1Pct.Times(multiplier).Round()
	g2Pct := decimal.MinFraction(one.Sub(g1Pct), g2Max).Round()
	g3Pct := decimal.MaxFraction(decimal.ZeroFraction(), one.Sub(g1Pct).Sub(g2Pct)).Round()

	result.Group1.Amount, result.Group1.Percent = g1Amount, g1Pct
	result.Group2.Amount, result.Group2.Percent = g2Amount, g2Pct
	result.Group3.Amount, result.Group3.Percent = g3Amount, g3Pct
	result.Group3.ExceedsThreshold = exceedsGroup3Threshold(input.TreatyType, g3Pct)
	return result
}

// exceedsGroup3Threshold is advisory only; it never alters placed amounts.
func exceedsGroup3Threshold(treaty domain.TreatyType, g3Pct decimal.Fraction) bool {
	return g3Pct.GreaterThan(treaty.Group3Threshold())
}

// Layer is a convenience wrapper over ComputeLayering for scalar arguments.
func Layer(tiv decimal.Money, hazard domain.HazardLevel, treaty domain.TreatyType) domain.LayeringResult {
	return ComputeLayering(domain.LayeringInput{TotalInsuredValue: tiv, HazardLevel: hazard, TreatyType: treaty})
}
