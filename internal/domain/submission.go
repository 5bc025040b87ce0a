package domain

import (
	"errors"

	"github.com/underwriting/capacity-calculator/pkg/decimal"
	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingHazardLevel is returned when a submission omits hazard_level.
	ErrMissingHazardLevel = errors.New("hazard_level is required")
	// ErrMissingTreatyType is returned when a submission omits treaty_type.
	ErrMissingTreatyType = errors.New("treaty_type is required")
)

// Submission is a named risk to be placed, as read from a batch file.
// TotalInsuredValue is kept as entered; malformed values layer as zero.
type Submission struct {
	Name              string      `yaml:"name" json:"name"`
	TotalInsuredValue string      `yaml:"total_insured_value" json:"total_insured_value"`
	HazardLevel       HazardLevel `yaml:"hazard_level" json:"hazard_level"`
	TreatyType        TreatyType  `yaml:"treaty_type" json:"treaty_type"`
	Notes             string      `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// UnmarshalYAML implements custom YAML unmarshaling for Submission.
// The enumerations have usable zero values, so absence is detected here.
func (s *Submission) UnmarshalYAML(value *yaml.Node) error {
	type Alias struct {
		Name              string       `yaml:"name"`
		TotalInsuredValue string       `yaml:"total_insured_value"`
		HazardLevel       *HazardLevel `yaml:"hazard_level"`
		TreatyType        *TreatyType  `yaml:"treaty_type"`
		Notes             string       `yaml:"notes,omitempty"`
	}

	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}
	if aux.HazardLevel == nil {
		return ErrMissingHazardLevel
	}
	if aux.TreatyType == nil {
		return ErrMissingTreatyType
	}

	s.Name = aux.Name
	s.TotalInsuredValue = aux.TotalInsuredValue
	s.HazardLevel = *aux.HazardLevel
	s.TreatyType = *aux.TreatyType
	s.Notes = aux.Notes
	return nil
}

// Input converts the submission into a calculation request.
func (s Submission) Input() LayeringInput {
	return LayeringInput{
		TotalInsuredValue: decimal.ParseMoneyOrZero(s.TotalInsuredValue),
		HazardLevel:       s.HazardLevel,
		TreatyType:        s.TreatyType,
	}
}

// Configuration is the top-level batch file.
type Configuration struct {
	Title       string       `yaml:"title,omitempty" json:"title,omitempty"`
	Submissions []Submission `yaml:"submissions" json:"submissions"`
}

// SubmissionResult pairs a submission with its computed layering.
type SubmissionResult struct {
	Submission Submission     `json:"submission"`
	Input      LayeringInput  `json:"input"`
	Result     LayeringResult `json:"result"`
}

// BatchResult holds the layering of every submission in input order.
type BatchResult struct {
	RunID             string             `json:"run_id,omitempty"`
	Title             string             `json:"title,omitempty"`
	Results           []SubmissionResult `json:"results"`
	OverLineCount     int                `json:"over_line_count"`
	ThresholdCount    int                `json:"threshold_count"`
	EmptyInputCount   int                `json:"empty_input_count"`
	TotalPlacedAmount decimal.Money      `json:"total_placed_amount"`
}
