package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/underwriting/capacity-calculator/internal/domain"
)

// ErrUnsupportedFormat is returned when no formatter matches a requested name.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// nowFunc stamps report file names; tests pin it.
var nowFunc = time.Now

// Formatter renders a batch into bytes without side effects.
type Formatter interface {
	Format(results *domain.BatchResult) ([]byte, error)
	Name() string
}

// Extensioner is implemented by formatters whose file extension differs from their name.
type Extensioner interface {
	Extension() string
}

// FormatterFunc lets a plain function serve as a named Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.BatchResult) ([]byte, error)
}

func (ff FormatterFunc) Format(r *domain.BatchResult) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                                 { return ff.ID }

func extensionFor(f Formatter) string {
	if e, ok := f.(Extensioner); ok {
		return e.Extension()
	}
	return f.Name()
}

// WriteFormatted renders results with f into dir as layering_report_<timestamp>.<ext>
// and returns the file name.
func WriteFormatted(f Formatter, results *domain.BatchResult, dir string) (string, error) {
	data, err := f.Format(results)
	if err != nil {
		return "", fmt.Errorf("%s report: %w", f.Name(), err)
	}
	stamp := nowFunc().Format("20060102_150405")
	filename := filepath.Join(dir, "layering_report_"+stamp+"."+extensionFor(f))
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return filename, nil
}

// reportFormats is keyed by canonical name.
var reportFormats = registerFormats(
	ConsoleVerboseFormatter{},
	ConsoleFormatter{},
	CSVSummarizer{},
	CSVDetailedExporter{},
	HTMLFormatter{},
	JSONFormatter{},
)

func registerFormats(fs ...Formatter) map[string]Formatter {
	m := make(map[string]Formatter, len(fs))
	for _, f := range fs {
		m[f.Name()] = f
	}
	return m
}

// GetFormatterByName resolves a canonical name or alias, case-insensitively.
// It returns nil for unknown names.
func GetFormatterByName(name string) Formatter {
	return reportFormats[NormalizeFormatName(name)]
}

var aliasMap = map[string]string{
	"console-verbose": "console",
	"verbose":         "console",
	"table":           "console",
	"summary":         "console-lite",
	"csv-detailed":    "detailed-csv",
	"csv-summary":     "csv",
	"html-report":     "html",
	"json-pretty":     "json",
}

// NormalizeFormatName maps user input onto a canonical format name.
func NormalizeFormatName(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliasMap[key]; ok {
		return canonical
	}
	return key
}

// AvailableFormatterNames lists canonical names in sorted order.
func AvailableFormatterNames() []string {
	return sortedKeys(reportFormats)
}

// AvailableFormatAliases lists alias names in sorted order.
func AvailableFormatAliases() []string {
	return sortedKeys(aliasMap)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
