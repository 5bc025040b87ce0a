package calculation

import (
	"github.com/underwriting/capacity-calculator/internal/domain"
	"github.com/underwriting/capacity-calculator/pkg/decimal"
)

func entry(h domain.HazardLevel, g1, g3 int64) domain.CapacityEntry {
	return domain.CapacityEntry{
		HazardLevel:    h,
		Group1Capacity: decimal.NewMoney(g1),
		Group3Capacity: decimal.NewMoney(g3),
	}
}

// Capacity tables, indexed by hazard level.
var (
	standardCapacity = [...]domain.CapacityEntry{
		domain.LowHazard:          entry(domain.LowHazard, 3_000_000, 5_000_000),
		domain.BelowAverageHazard: entry(domain.BelowAverageHazard, 2_400_000, 5_000_000),
		domain.AverageHazard:      entry(domain.AverageHazard, 1_800_000, 5_000_000),
		domain.AboveAverageHazard: entry(domain.AboveAverageHazard, 1_200_000, 4_800_000),
		domain.HighHazard:         entry(domain.HighHazard, 600_000, 2_400_000),
	}

	surplusCapacity = [...]domain.CapacityEntry{
		domain.LowHazard:          entry(domain.LowHazard, 2_000_000, 5_000_000),
		domain.BelowAverageHazard: entry(domain.BelowAverageHazard, 1_600_000, 5_000_000),
		domain.AverageHazard:      entry(domain.AverageHazard, 1_200_000, 5_000_000),
		domain.AboveAverageHazard: entry(domain.AboveAverageHazard, 800_000, 5_000_000),
		domain.HighHazard:         entry(domain.HighHazard, 400_000, 2_800_000),
	}
)

// LookupCapacity returns the Group 1 and Group 3 ceilings for a treaty and
// hazard level. Every declared combination has an entry; values outside
// the declared enumerations yield a zero entry.
func LookupCapacity(treaty domain.TreatyType, hazard domain.HazardLevel) domain.CapacityEntry {
	if !hazard.Valid() {
		return domain.CapacityEntry{HazardLevel: hazard}
	}
	switch treaty {
	case domain.Standard:
		return standardCapacity[hazard]
	case domain.Surplus:
		return surplusCapacity[hazard]
	default:
		return domain.CapacityEntry{HazardLevel: hazard}
	}
}

// CapacityTable returns the reference table for a treaty in low to high hazard order.
func CapacityTable(treaty domain.TreatyType) []domain.CapacityEntry {
	rows := make([]domain.CapacityEntry, 0, len(domain.HazardLevels))
	for _, h := range domain.HazardLevels {
		rows = append(rows, LookupCapacity(treaty, h))
	}
	return rows
}
