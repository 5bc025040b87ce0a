package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/underwriting/capacity-calculator/internal/domain"
)

// resolveFormatter looks up a formatter and builds the suggestion error on a miss.
func resolveFormatter(format string) (Formatter, error) {
	if f := GetFormatterByName(format); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// GenerateReport renders results in the named format to w.
func GenerateReport(w io.Writer, results *domain.BatchResult, format string) error {
	f, err := resolveFormatter(format)
	if err != nil {
		return err
	}
	data, err := f.Format(results)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// GenerateReportFile renders results in the named format to a timestamped file in dir.
func GenerateReportFile(results *domain.BatchResult, format, dir string) (string, error) {
	f, err := resolveFormatter(format)
	if err != nil {
		return "", err
	}
	return WriteFormatted(f, results, dir)
}
