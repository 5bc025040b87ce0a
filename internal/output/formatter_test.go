package output

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	calc "github.com/underwriting/capacity-calculator/internal/calculation"
	"github.com/underwriting/capacity-calculator/internal/domain"
	"github.com/underwriting/capacity-calculator/pkg/decimal"
)

func submissionResult(name string, tiv int64, hazard domain.HazardLevel, treaty domain.TreatyType) domain.SubmissionResult {
	in := domain.LayeringInput{TotalInsuredValue: decimal.NewMoney(tiv), HazardLevel: hazard, TreatyType: treaty}
	return domain.SubmissionResult{
		Submission: domain.Submission{Name: name, TotalInsuredValue: fmt.Sprint(tiv), HazardLevel: hazard, TreatyType: treaty},
		Input:      in,
		Result:     calc.ComputeLayering(in),
	}
}

func buildTestBatch() *domain.BatchResult {
	return &domain.BatchResult{
		Title: "Fixture batch",
		Results: []domain.SubmissionResult{
			submissionResult("Warehouse", 1_500_000, domain.LowHazard, domain.Standard),
			submissionResult("Mall", 10_000_000, domain.LowHazard, domain.Standard),
			submissionResult("Refinery", 20_000_000, domain.LowHazard, domain.Standard),
			submissionResult("Sawmill", 4_000_000, domain.HighHazard, domain.Surplus),
		},
		OverLineCount:     1,
		TotalPlacedAmount: decimal.NewMoney(15_500_000),
	}
}

func TestWriteLayeringTable(t *testing.T) {
	r := submissionResult("Mall", 10_000_000, domain.LowHazard, domain.Standard)
	var buf bytes.Buffer
	WriteLayeringTable(&buf, r.Input, r.Result)
	out := buf.String()

	for _, want := range []string{
		"Treaty: Standard | Hazard: Low Hazard | TIV: $10,000,000\n",
		fmt.Sprintf(tableRow, "Group", "Percentage", "Amount", "Capacity"),
		fmt.Sprintf(tableRow, "Group 1", "30.0%", "$3,000,000", "$3,000,000"),
		fmt.Sprintf(tableRow, "Group 2", "70.0%", "$7,000,000", "$9,000,000"),
		fmt.Sprintf(tableRow, "Group 3", "0.0%", "$0", "$5,000,000"),
		fmt.Sprintf(tableRow, "Total", "100.0%", "$10,000,000", "$17,000,000"),
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "WARNING") {
		t.Fatalf("unexpected warning for placed risk:\n%s", out)
	}
}

func TestWriteLayeringTable_OverLine(t *testing.T) {
	r := submissionResult("Refinery", 20_000_000, domain.LowHazard, domain.Standard)
	var buf bytes.Buffer
	WriteLayeringTable(&buf, r.Input, r.Result)
	out := buf.String()
	if !strings.Contains(out, fmt.Sprintf(tableRow, "Group 1", "Over Line", "Over Line", "$3,000,000")) {
		t.Fatalf("expected over line rows, got:\n%s", out)
	}
	if !strings.Contains(out, "WARNING: OVER LINE - TIV $20,000,000 exceeds maximum capacity $17,000,000") {
		t.Fatalf("expected over line warning, got:\n%s", out)
	}
}

func TestWriteLayeringTable_ThresholdNotice(t *testing.T) {
	in := domain.LayeringInput{TotalInsuredValue: decimal.NewMoney(1000), HazardLevel: domain.HighHazard, TreatyType: domain.Standard}
	res := domain.LayeringResult{MaxCapacity: decimal.NewMoney(4_800_000)}
	res.Group1 = domain.GroupLayer{Amount: decimal.NewMoney(1000), Percent: decimal.NewFraction("0.4")}
	res.Group3.Percent = decimal.NewFraction("0.6")
	res.Group3.ExceedsThreshold = true
	var buf bytes.Buffer
	WriteLayeringTable(&buf, in, res)
	if !strings.Contains(buf.String(), "NOTICE: Group 3 share 60.0% exceeds the Standard treaty limit of 50.0%.") {
		t.Fatalf("expected threshold notice, got:\n%s", buf.String())
	}
}

func TestWriteLayeringTable_NoInput(t *testing.T) {
	var buf bytes.Buffer
	WriteLayeringTable(&buf, domain.LayeringInput{}, domain.LayeringResult{})
	if !strings.Contains(buf.String(), "Enter a total insured value") {
		t.Fatalf("expected prompt, got:\n%s", buf.String())
	}
}

func TestConsoleLiteFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestBatch())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	if !strings.Contains(content, "Refinery: OVER LINE (TIV $20,000,000 > max $17,000,000)") {
		t.Fatalf("expected over line summary, got: %s", content)
	}
	if !strings.Contains(content, "Closest to line: Sawmill ($0 remaining)") {
		t.Fatalf("expected closest-to-line summary, got: %s", content)
	}
}

func TestConsoleVerboseFormatter(t *testing.T) {
	out, err := ConsoleVerboseFormatter{}.Format(buildTestBatch())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{"REINSURANCE LAYERING REPORT", "Fixture batch", "SUBMISSION 4: Sawmill", "Total placed:         $15,500,000", "Cannot be placed:     Refinery"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in verbose output", want)
		}
	}
}

func TestCSVSummarizerKeepsInputOrder(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestBatch())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines (header+4 rows), got %d", len(lines))
	}
	if lines[2] != "Mall,Standard,LowHazard,10000000,3000000,0.300,7000000,0.700,0,0.000,17000000,false,false" {
		t.Fatalf("unexpected Mall row: %s", lines[2])
	}
	if lines[3] != "Refinery,Standard,LowHazard,20000000,,,,,,,17000000,true,false" {
		t.Fatalf("over line row should withhold amounts: %s", lines[3])
	}
}

func TestCSVDetailedExporter(t *testing.T) {
	out, err := CSVDetailedExporter{}.Format(buildTestBatch())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 1+4*3 {
		t.Fatalf("expected header plus 12 group rows, got %d", len(lines))
	}
	if lines[12] != "Sawmill,4,3,0.700,2800000,2800000,false" {
		t.Fatalf("unexpected Sawmill group 3 row: %s", lines[12])
	}
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestBatch())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded struct {
		Title   string `json:"title"`
		Results []struct {
			Result struct {
				Group2 struct {
					Amount  int64   `json:"amount"`
					Percent float64 `json:"percent"`
				} `json:"group2"`
				OverLine bool `json:"over_line"`
			} `json:"result"`
			Input struct {
				HazardLevel string `json:"hazard_level"`
			} `json:"input"`
		} `json:"results"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if decoded.Title != "Fixture batch" || len(decoded.Results) != 4 {
		t.Fatalf("unexpected decode: %+v", decoded)
	}
	if decoded.Results[1].Result.Group2.Amount != 7_000_000 || decoded.Results[1].Result.Group2.Percent != 0.7 {
		t.Fatalf("unexpected group 2: %+v", decoded.Results[1].Result.Group2)
	}
	if !decoded.Results[2].Result.OverLine || decoded.Results[3].Input.HazardLevel != "HighHazard" {
		t.Fatalf("unexpected flags: %+v", decoded.Results)
	}
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestBatch())
	if err != nil {
		t.Fatalf("html format error: %v", err)
	}
	content := string(out)
	for _, want := range []string{"Treaty Rules", "Capacity Reference", "Surplus Treaty", "$17,000,000", "Over line: TIV exceeds", "<td>70.0%</td>"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in HTML output", want)
		}
	}
	if strings.Contains(content, "Run ") {
		t.Fatalf("run footer rendered without a run id")
	}

	batch := buildTestBatch()
	batch.RunID = "3f1c2a9e-0000-4000-8000-000000000001"
	out, err = HTMLFormatter{}.Format(batch)
	if err != nil {
		t.Fatalf("html format error: %v", err)
	}
	if !strings.Contains(string(out), "Run 3f1c2a9e-0000-4000-8000-000000000001") {
		t.Fatalf("expected run id footer in HTML output")
	}
}

// Golden snapshot tests (prefix-based) ensure key headers remain stable.
func TestGoldenSnapshots(t *testing.T) {
	cases := []struct {
		name      string
		golden    string
		formatter Formatter
	}{
		{"console_verbose", "console_verbose.golden", ConsoleVerboseFormatter{}},
		{"console_lite", "console_lite.golden", ConsoleFormatter{}},
		{"csv_summary", "csv_summary.golden", CSVSummarizer{}},
		{"csv_detailed", "csv_detailed.golden", CSVDetailedExporter{}},
		{"html", "html_prefix.golden", HTMLFormatter{}},
	}

	batch := buildTestBatch()
	update := os.Getenv("UPDATE_GOLDEN") == "1"
	for _, tc := range cases {
		out, err := tc.formatter.Format(batch)
		if err != nil {
			t.Fatalf("%s: format error: %v", tc.name, err)
		}
		goldenPath := filepath.Join("testdata", tc.golden)
		if update {
			// only first line to keep golden small & stable
			line := firstLine(string(out)) + "\n"
			if err := os.WriteFile(goldenPath, []byte(line), 0644); err != nil {
				t.Fatalf("%s: update golden failed: %v", tc.name, err)
			}
		}
		data, err := os.ReadFile(goldenPath)
		if err != nil {
			t.Fatalf("%s: read golden: %v", tc.name, err)
		}
		if !strings.HasPrefix(string(out), strings.TrimSpace(string(data))) {
			t.Fatalf("%s: output does not match golden prefix %q", tc.name, strings.TrimSpace(string(data)))
		}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func TestFormatterAliasResolution(t *testing.T) {
	f := GetFormatterByName("console-verbose")
	if f == nil {
		t.Fatalf("alias console-verbose did not resolve to a formatter")
	}
	if f.Name() != "console" {
		t.Fatalf("alias resolved to %q, want 'console'", f.Name())
	}
	if GetFormatterByName(" Summary ").Name() != "console-lite" {
		t.Fatalf("summary alias should resolve to console-lite")
	}
}

func TestUnknownFormatErrorIncludesSuggestions(t *testing.T) {
	err := GenerateReport(&bytes.Buffer{}, &domain.BatchResult{}, "definitely-not-a-format")
	if err == nil {
		t.Fatalf("expected error for unknown format")
	}
	msg := err.Error()
	if !strings.Contains(msg, "unsupported report format") || !strings.Contains(msg, "Try one of:") {
		t.Fatalf("error message missing suggestions: %s", msg)
	}
}

func TestWriteFormattedUsesExtension(t *testing.T) {
	nowFunc = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	defer func() { nowFunc = time.Now }()

	dir := t.TempDir()
	name, err := WriteFormatted(ConsoleVerboseFormatter{}, buildTestBatch(), dir)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if want := filepath.Join(dir, "layering_report_20250102_030405.txt"); name != want {
		t.Fatalf("filename %q, want %q", name, want)
	}
	name, err = GenerateReportFile(buildTestBatch(), "csv-detailed", dir)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if filepath.Ext(name) != ".csv" {
		t.Fatalf("detailed csv should use .csv extension, got %s", name)
	}
}

func TestCapacityTableFormatting(t *testing.T) {
	view := BuildCapacityTable(domain.Surplus)
	if len(view.Rows) != 5 || view.Group2Multiplier != 2 {
		t.Fatalf("unexpected view: %+v", view)
	}
	out := string(FormatCapacityTable(view))
	if !strings.HasPrefix(out, "SURPLUS TREATY CAPACITY (Group 2 = 2x Group 1, Group 3 limit 70.0%)") {
		t.Fatalf("unexpected heading: %s", firstLine(out))
	}
	want := fmt.Sprintf(capacityRow, "High Hazard", "$400,000", "$800,000", "$2,800,000", "$4,000,000")
	if !strings.Contains(out, want) {
		t.Fatalf("missing row %q in:\n%s", want, out)
	}
	if len(BuildCapacityTables()) != 2 {
		t.Fatalf("expected one view per treaty type")
	}
}
