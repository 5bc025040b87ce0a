package output

import (
	"bytes"
	"fmt"
	"strings"

	calc "github.com/underwriting/capacity-calculator/internal/calculation"
	"github.com/underwriting/capacity-calculator/internal/domain"
	"github.com/underwriting/capacity-calculator/pkg/decimal"
)

// CapacityRow is one hazard level of a reference table with derived columns filled in.
type CapacityRow struct {
	HazardLevel    domain.HazardLevel `json:"hazard_level"`
	Hazard         string             `json:"hazard"`
	Group1Capacity decimal.Money      `json:"group1_capacity"`
	Group2Capacity decimal.Money      `json:"group2_capacity"`
	Group3Capacity decimal.Money      `json:"group3_capacity"`
	MaxCapacity    decimal.Money      `json:"max_capacity"`
}

// CapacityTableView is the reference table for one treaty type.
type CapacityTableView struct {
	Treaty           domain.TreatyType `json:"treaty_type"`
	Group2Multiplier int64             `json:"group2_multiplier"`
	Group3Threshold  decimal.Fraction  `json:"group3_threshold"`
	Rows             []CapacityRow     `json:"rows"`
}

// BuildCapacityTable assembles the reference view for treaty.
func BuildCapacityTable(treaty domain.TreatyType) CapacityTableView {
	m := treaty.Group2Multiplier()
	view := CapacityTableView{Treaty: treaty, Group2Multiplier: m, Group3Threshold: treaty.Group3Threshold()}
	for _, e := range calc.CapacityTable(treaty) {
		view.Rows = append(view.Rows, CapacityRow{
			HazardLevel:    e.HazardLevel,
			Hazard:         e.HazardLevel.Label(),
			Group1Capacity: e.Group1Capacity,
			Group2Capacity: e.Group2Capacity(m),
			Group3Capacity: e.Group3Capacity,
			MaxCapacity:    e.MaxCapacity(m),
		})
	}
	return view
}

// BuildCapacityTables returns the reference views for every treaty type.
func BuildCapacityTables() []CapacityTableView {
	views := make([]CapacityTableView, 0, len(domain.TreatyTypes))
	for _, t := range domain.TreatyTypes {
		views = append(views, BuildCapacityTable(t))
	}
	return views
}

const capacityRow = "%-22s %12s %12s %12s %12s\n"

// FormatCapacityTable renders a reference table as fixed-width text.
func FormatCapacityTable(view CapacityTableView) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s TREATY CAPACITY (Group 2 = %dx Group 1, Group 3 limit %s)\n",
		strings.ToUpper(view.Treaty.String()), view.Group2Multiplier, FormatPercentage(view.Group3Threshold))
	fmt.Fprintf(&buf, capacityRow, "Hazard", "Group 1", "Group 2", "Group 3", "Max")
	fmt.Fprintf(&buf, capacityRow, strings.Repeat("-", 22), strings.Repeat("-", 12), strings.Repeat("-", 12), strings.Repeat("-", 12), strings.Repeat("-", 12))
	for _, r := range view.Rows {
		fmt.Fprintf(&buf, capacityRow, r.Hazard,
			FormatCurrency(r.Group1Capacity), FormatCurrency(r.Group2Capacity),
			FormatCurrency(r.Group3Capacity), FormatCurrency(r.MaxCapacity))
	}
	return buf.Bytes()
}
