package output

import (
	"bytes"
	"fmt"

	"github.com/underwriting/capacity-calculator/internal/domain"
)

// ConsoleFormatter provides a one-line-per-submission summary.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(results *domain.BatchResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "LAYERING SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, r := range results.Results {
		res := r.Result
		switch {
		case res.OverLine:
			fmt.Fprintf(&buf, "%s: OVER LINE (TIV %s > max %s)\n", r.Submission.Name, FormatCurrency(r.Input.TotalInsuredValue), FormatCurrency(res.MaxCapacity))
		case !res.Placed():
			fmt.Fprintf(&buf, "%s: no TIV\n", r.Submission.Name)
		default:
			flag := ""
			if res.Group3.ExceedsThreshold {
				flag = " [G3 LIMIT]"
			}
			fmt.Fprintf(&buf, "%s: G1=%s (%s) G2=%s (%s) G3=%s (%s)%s\n", r.Submission.Name,
				FormatCurrency(res.Group1.Amount), FormatPercentage(res.Group1.Percent),
				FormatCurrency(res.Group2.Amount), FormatPercentage(res.Group2.Percent),
				FormatCurrency(res.Group3.Amount), FormatPercentage(res.Group3.Percent), flag)
		}
	}
	a := AnalyzeBatch(results)
	if a.ClosestToLine != nil {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Closest to line: %s (%s remaining)\n", a.ClosestToLine.SubmissionName, FormatCurrency(a.ClosestToLine.Remaining))
	}
	return buf.Bytes(), nil
}
