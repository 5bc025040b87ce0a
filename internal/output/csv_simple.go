package output

import (
	"bytes"
	"encoding/csv"

	"github.com/underwriting/capacity-calculator/internal/domain"
)

// CSVSummarizer implements the summary CSV output (one row per submission, input order).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.BatchResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Submission", "TreatyType", "HazardLevel", "TotalInsuredValue", "Group1Amount", "Group1Percent", "Group2Amount", "Group2Percent", "Group3Amount", "Group3Percent", "MaxCapacity", "OverLine", "Group3ExceedsThreshold"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range results.Results {
		res := r.Result
		row := []string{
			r.Submission.Name,
			r.Input.TreatyType.String(),
			r.Input.HazardLevel.String(),
			r.Input.TotalInsuredValue.String(),
		}
		for _, layer := range res.Layers() {
			if res.OverLine {
				row = append(row, "", "")
				continue
			}
			row = append(row, layer.Amount.String(), layer.Percent.String())
		}
		row = append(row,
			res.MaxCapacity.String(),
			boolToString(res.OverLine),
			boolToString(res.Group3.ExceedsThreshold),
		)
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
