package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/underwriting/capacity-calculator/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrNoSubmissions is returned when a batch file lists nothing to layer.
var ErrNoSubmissions = errors.New("no submissions provided")

// InputParser handles parsing of batch submission files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a batch configuration from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a batch configuration
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration. A malformed
// total insured value is not an error here; it layers as zero.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Submissions) == 0 {
		return ErrNoSubmissions
	}

	seen := make(map[string]int, len(config.Submissions))
	for i, sub := range config.Submissions {
		name := strings.TrimSpace(sub.Name)
		if name == "" {
			return fmt.Errorf("submission %d: name is required", i)
		}
		if prev, dup := seen[name]; dup {
			return fmt.Errorf("submission %d: duplicate name %q (first used by submission %d)", i, name, prev)
		}
		seen[name] = i
		if !sub.HazardLevel.Valid() {
			return fmt.Errorf("submission %q: %w", name, domain.ErrUnknownHazardLevel)
		}
		if !sub.TreatyType.Valid() {
			return fmt.Errorf("submission %q: %w", name, domain.ErrUnknownTreatyType)
		}
	}

	return nil
}

// SaveConfiguration writes a batch configuration as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}

// ExampleConfiguration is a starter batch covering both treaty types.
func ExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Title: "Example submissions",
		Submissions: []domain.Submission{
			{Name: "Distribution warehouse", TotalInsuredValue: "1,500,000", HazardLevel: domain.LowHazard, TreatyType: domain.Standard},
			{Name: "Regional mall", TotalInsuredValue: "10,000,000", HazardLevel: domain.LowHazard, TreatyType: domain.Standard},
			{Name: "Chemical plant", TotalInsuredValue: "20,000,000", HazardLevel: domain.LowHazard, TreatyType: domain.Standard},
			{Name: "Sawmill", TotalInsuredValue: "4,000,000", HazardLevel: domain.HighHazard, TreatyType: domain.Surplus},
		},
	}
}
