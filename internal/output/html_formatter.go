package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"strings"

	"github.com/underwriting/capacity-calculator/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with the capacity reference tables.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"add":  func(i, j int) int { return i + j },
	"join": strings.Join,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(results *domain.BatchResult) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.BatchResult
		Rules    []string
		Analysis BatchAnalysis
		Tables   []CapacityTableView
	}{results, TreatyRules(), AnalyzeBatch(results), BuildCapacityTables()}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
