package domain

import (
	"github.com/underwriting/capacity-calculator/pkg/decimal"
)

// CapacityEntry is one row of a treaty's capacity table. Group 2 capacity is
// never stored; it is derived from Group 1 via the treaty multiplier.
type CapacityEntry struct {
	HazardLevel    HazardLevel   `yaml:"hazard_level" json:"hazard_level"`
	Group1Capacity decimal.Money `yaml:"group1_capacity" json:"group1_capacity"`
	Group3Capacity decimal.Money `yaml:"group3_capacity" json:"group3_capacity"`
}

// Group2Capacity derives the Group 2 ceiling for the given multiplier.
func (c CapacityEntry) Group2Capacity(multiplier int64) decimal.Money {
	return c.Group1Capacity.Times(multiplier)
}

// MaxCapacity is the combined ceiling of all three groups.
func (c CapacityEntry) MaxCapacity(multiplier int64) decimal.Money {
	return c.Group1Capacity.Add(c.Group2Capacity(multiplier)).Add(c.Group3Capacity)
}

// LayeringInput is a single calculation request.
type LayeringInput struct {
	TotalInsuredValue decimal.Money `yaml:"total_insured_value" json:"total_insured_value"`
	HazardLevel       HazardLevel   `yaml:"hazard_level" json:"hazard_level"`
	TreatyType        TreatyType    `yaml:"treaty_type" json:"treaty_type"`
}

// GroupLayer is the slice of TIV placed in one group.
type GroupLayer struct {
	Amount   decimal.Money    `json:"amount"`
	Percent  decimal.Fraction `json:"percent"`
	Capacity decimal.Money    `json:"capacity"`
}

// Group3Layer adds the advisory threshold flag to the last layer.
type Group3Layer struct {
	GroupLayer
	ExceedsThreshold bool `json:"exceeds_threshold"`
}

// LayeringResult is the outcome of placing a TIV across the three groups.
// When OverLine is set the group amounts and percentages are not computed
// and must be read as indeterminate.
type LayeringResult struct {
	Group1      GroupLayer    `json:"group1"`
	Group2      GroupLayer    `json:"group2"`
	Group3      Group3Layer   `json:"group3"`
	MaxCapacity decimal.Money `json:"max_capacity"`
	OverLine    bool          `json:"over_line"`
}

// Placed reports whether the result carries computed group amounts.
func (r LayeringResult) Placed() bool {
	return !r.OverLine && r.MaxCapacity.IsPositive()
}

// TotalAmount sums the three group amounts.
func (r LayeringResult) TotalAmount() decimal.Money {
	return r.Group1.Amount.Add(r.Group2.Amount).Add(r.Group3.Amount)
}

// TotalPercent sums the three group shares.
func (r LayeringResult) TotalPercent() decimal.Fraction {
	return r.Group1.Percent.Add(r.Group2.Percent).Add(r.Group3.Percent)
}

// Layers returns the three layers in fill order, for table rendering.
func (r LayeringResult) Layers() []GroupLayer {
	return []GroupLayer{r.Group1, r.Group2, r.Group3.GroupLayer}
}
