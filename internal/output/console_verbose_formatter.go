package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/underwriting/capacity-calculator/internal/domain"
)

// ConsoleVerboseFormatter renders a full layering table for every submission.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Extension() string { return "txt" }

const tableRow = "%-8s %11s %14s %14s\n"

func (c ConsoleVerboseFormatter) Format(results *domain.BatchResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintln(&buf, "REINSURANCE LAYERING REPORT")
	if results.Title != "" {
		fmt.Fprintln(&buf, results.Title)
	}
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "TREATY RULES:")
	for _, r := range TreatyRules() {
		fmt.Fprintf(&buf, "• %s\n", r)
	}
	fmt.Fprintln(&buf)

	for i, r := range results.Results {
		fmt.Fprintf(&buf, "SUBMISSION %d: %s\n", i+1, r.Submission.Name)
		fmt.Fprintln(&buf, strings.Repeat("-", 50))
		if r.Submission.Notes != "" {
			fmt.Fprintf(&buf, "Notes: %s\n", r.Submission.Notes)
		}
		WriteLayeringTable(&buf, r.Input, r.Result)
		fmt.Fprintln(&buf)
	}

	writeBatchFooter(&buf, results)
	return buf.Bytes(), nil
}

// WriteLayeringTable renders one calculation as Group | Percentage | Amount | Capacity
// with a totals row and any warnings.
func WriteLayeringTable(w io.Writer, input domain.LayeringInput, result domain.LayeringResult) {
	fmt.Fprintf(w, "Treaty: %s | Hazard: %s | TIV: %s\n", input.TreatyType, input.HazardLevel.Label(), FormatCurrency(input.TotalInsuredValue))
	if !result.OverLine && !result.Placed() {
		fmt.Fprintln(w, "Enter a total insured value to calculate layering.")
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, tableRow, "Group", "Percentage", "Amount", "Capacity")
	fmt.Fprintf(w, tableRow, strings.Repeat("-", 8), strings.Repeat("-", 11), strings.Repeat("-", 14), strings.Repeat("-", 14))
	for i, layer := range result.Layers() {
		pct, amount := FormatPercentage(layer.Percent), FormatCurrency(layer.Amount)
		if result.OverLine {
			pct, amount = "Over Line", "Over Line"
		}
		fmt.Fprintf(w, tableRow, fmt.Sprintf("Group %d", i+1), pct, amount, FormatCurrency(layer.Capacity))
	}
	totalPct, totalAmount := FormatPercentage(result.TotalPercent()), FormatCurrency(result.TotalAmount())
	if result.OverLine {
		totalPct, totalAmount = "Over Line", FormatCurrency(input.TotalInsuredValue)
	}
	fmt.Fprintf(w, tableRow, "Total", totalPct, totalAmount, FormatCurrency(result.MaxCapacity))

	if result.OverLine {
		fmt.Fprintf(w, "WARNING: OVER LINE - TIV %s exceeds maximum capacity %s for %s / %s.\n",
			FormatCurrency(input.TotalInsuredValue), FormatCurrency(result.MaxCapacity), input.TreatyType, input.HazardLevel.Label())
	}
	if result.Group3.ExceedsThreshold {
		fmt.Fprintf(w, "NOTICE: Group 3 share %s exceeds the %s treaty limit of %s.\n",
			FormatPercentage(result.Group3.Percent), input.TreatyType, FormatPercentage(input.TreatyType.Group3Threshold()))
	}
}

func writeBatchFooter(buf *bytes.Buffer, results *domain.BatchResult) {
	fmt.Fprintln(buf, "BATCH SUMMARY")
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	fmt.Fprintf(buf, "Submissions:          %d\n", len(results.Results))
	fmt.Fprintf(buf, "Total placed:         %s\n", FormatCurrency(results.TotalPlacedAmount))
	fmt.Fprintf(buf, "Over line:            %d\n", results.OverLineCount)
	fmt.Fprintf(buf, "Above Group 3 limit:  %d\n", results.ThresholdCount)
	fmt.Fprintf(buf, "Awaiting TIV:         %d\n", results.EmptyInputCount)
	a := AnalyzeBatch(results)
	if a.ClosestToLine != nil {
		fmt.Fprintf(buf, "Closest to line:      %s (%s remaining, %s used)\n",
			a.ClosestToLine.SubmissionName, FormatCurrency(a.ClosestToLine.Remaining), FormatPercentage(a.ClosestToLine.Utilization))
	}
	if len(a.OverLine) > 0 {
		fmt.Fprintf(buf, "Cannot be placed:     %s\n", strings.Join(a.OverLine, ", "))
	}
	if len(a.AboveG3Limit) > 0 {
		fmt.Fprintf(buf, "Group 3 over limit:   %s\n", strings.Join(a.AboveG3Limit, ", "))
	}
	if len(a.NoInput) > 0 {
		fmt.Fprintf(buf, "Awaiting TIV for:     %s\n", strings.Join(a.NoInput, ", "))
	}
}
