package output

import (
	"fmt"

	"github.com/underwriting/capacity-calculator/internal/domain"
)

// TreatyRules lists the layering rules rendered in detailed outputs.
func TreatyRules() []string {
	rules := make([]string, 0, len(domain.TreatyTypes)+2)
	for _, t := range domain.TreatyTypes {
		rules = append(rules, fmt.Sprintf("%s treaty: Group 2 capacity is %dx Group 1; Group 3 above %s of TIV is flagged",
			t, t.Group2Multiplier(), FormatPercentage(t.Group3Threshold())))
	}
	return append(rules,
		"Groups fill in order: Group 1, then Group 2, then Group 3",
		"Shares are rounded to 0.1% at each step before feeding the next",
	)
}
