package output

import (
	"sort"

	"github.com/underwriting/capacity-calculator/internal/domain"
	"github.com/underwriting/capacity-calculator/pkg/decimal"
)

// Headroom is the capacity left after placing a submission.
type Headroom struct {
	SubmissionName string
	Remaining      decimal.Money
	Utilization    decimal.Fraction
}

// BatchAnalysis highlights the submissions an underwriter should look at first.
type BatchAnalysis struct {
	ClosestToLine *Headroom // placed submission with the least remaining capacity
	OverLine      []string
	AboveG3Limit  []string
	NoInput       []string
}

// AnalyzeBatch ranks placed submissions by remaining capacity and collects
// the names behind each warning. Extracted from the console report for testability.
func AnalyzeBatch(results *domain.BatchResult) BatchAnalysis {
	var analysis BatchAnalysis
	var ranks []Headroom
	for _, r := range results.Results {
		switch {
		case r.Result.OverLine:
			analysis.OverLine = append(analysis.OverLine, r.Submission.Name)
			continue
		case !r.Result.Placed():
			analysis.NoInput = append(analysis.NoInput, r.Submission.Name)
			continue
		}
		if r.Result.Group3.ExceedsThreshold {
			analysis.AboveG3Limit = append(analysis.AboveG3Limit, r.Submission.Name)
		}
		tiv := r.Input.TotalInsuredValue
		ranks = append(ranks, Headroom{
			SubmissionName: r.Submission.Name,
			Remaining:      r.Result.MaxCapacity.Sub(tiv),
			Utilization:    tiv.Ratio(r.Result.MaxCapacity).Round(),
		})
	}
	if len(ranks) == 0 {
		return analysis
	}
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].Remaining.LessThan(ranks[j].Remaining) })
	analysis.ClosestToLine = &ranks[0]
	return analysis
}
