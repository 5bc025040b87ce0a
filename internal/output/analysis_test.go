package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/underwriting/capacity-calculator/internal/domain"
)

func TestAnalyzeBatch_SelectsLeastHeadroom(t *testing.T) {
	batch := buildTestBatch()
	batch.Results = append(batch.Results, domain.SubmissionResult{Submission: domain.Submission{Name: "Pending"}})

	a := AnalyzeBatch(batch)
	require.NotNil(t, a.ClosestToLine)
	assert.Equal(t, "Sawmill", a.ClosestToLine.SubmissionName)
	assert.True(t, a.ClosestToLine.Remaining.IsZero())
	assert.Equal(t, "1.000", a.ClosestToLine.Utilization.String())
	assert.Equal(t, []string{"Refinery"}, a.OverLine)
	assert.Equal(t, []string{"Pending"}, a.NoInput)
	assert.Empty(t, a.AboveG3Limit)
}

func TestAnalyzeBatch_NothingPlaced(t *testing.T) {
	batch := &domain.BatchResult{Results: []domain.SubmissionResult{
		submissionResult("Refinery", 20_000_000, domain.LowHazard, domain.Standard),
	}}
	a := AnalyzeBatch(batch)
	assert.Nil(t, a.ClosestToLine)
	assert.Len(t, a.OverLine, 1)
}

func TestTreatyRules(t *testing.T) {
	rules := TreatyRules()
	require.Len(t, rules, 4)
	assert.Equal(t, "Standard treaty: Group 2 capacity is 3x Group 1; Group 3 above 50.0% of TIV is flagged", rules[0])
	assert.Contains(t, rules[1], "Surplus treaty: Group 2 capacity is 2x Group 1")
}

func flaggedBatch() *domain.BatchResult {
	batch := buildTestBatch()
	tannery := submissionResult("Tannery", 4_000_000, domain.HighHazard, domain.Surplus)
	tannery.Result.Group3.ExceedsThreshold = true
	batch.Results = append(batch.Results,
		tannery,
		domain.SubmissionResult{Submission: domain.Submission{Name: "Pending survey"}},
	)
	batch.ThresholdCount = 1
	batch.EmptyInputCount = 1
	return batch
}

func TestBatchSummaryListsFlaggedSubmissions(t *testing.T) {
	out, err := ConsoleVerboseFormatter{}.Format(flaggedBatch())
	require.NoError(t, err)
	console := string(out)
	assert.Contains(t, console, "Awaiting TIV:         1\n")
	assert.Contains(t, console, "Cannot be placed:     Refinery\n")
	assert.Contains(t, console, "Group 3 over limit:   Tannery\n")
	assert.Contains(t, console, "Awaiting TIV for:     Pending survey\n")

	out, err = HTMLFormatter{}.Format(flaggedBatch())
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "<tr><td>Awaiting TIV</td><td>1</td></tr>")
	assert.Contains(t, html, "<tr><td>Cannot be placed</td><td>Refinery</td></tr>")
	assert.Contains(t, html, "<tr><td>Group 3 over limit</td><td>Tannery</td></tr>")
	assert.Contains(t, html, "<tr><td>Awaiting TIV for</td><td>Pending survey</td></tr>")
}

func TestBatchSummaryOmitsEmptyLists(t *testing.T) {
	batch := &domain.BatchResult{Results: []domain.SubmissionResult{
		submissionResult("Warehouse", 1_500_000, domain.LowHazard, domain.Standard),
	}}
	out, err := ConsoleVerboseFormatter{}.Format(batch)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "Group 3 over limit:")
	assert.NotContains(t, string(out), "Awaiting TIV for:")

	out, err = HTMLFormatter{}.Format(batch)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "Cannot be placed")
	assert.NotContains(t, string(out), "Awaiting TIV for")
}
