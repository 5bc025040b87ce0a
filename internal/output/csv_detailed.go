package output

import (
	"bytes"
	"encoding/csv"

	"github.com/underwriting/capacity-calculator/internal/domain"
)

// CSVDetailedExporter emits one row per submission and group, mirroring the on-screen table.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Extension() string { return "csv" }

func (c CSVDetailedExporter) Format(results *domain.BatchResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Submission", "Index", "Group", "Percentage", "Amount", "Capacity", "OverLine"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i, r := range results.Results {
		res := r.Result
		if !res.OverLine && !res.Placed() {
			continue
		}
		for g, layer := range res.Layers() {
			pct, amount := layer.Percent.String(), layer.Amount.String()
			if res.OverLine {
				pct, amount = "", ""
			}
			row := []string{
				r.Submission.Name,
				intToString(i + 1),
				intToString(g + 1),
				pct,
				amount,
				layer.Capacity.String(),
				boolToString(res.OverLine),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
