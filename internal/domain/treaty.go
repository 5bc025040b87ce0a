package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/underwriting/capacity-calculator/pkg/decimal"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownHazardLevel is returned when a string names no hazard level.
	ErrUnknownHazardLevel = errors.New("unknown hazard level")
	// ErrUnknownTreatyType is returned when a string names no treaty type.
	ErrUnknownTreatyType = errors.New("unknown treaty type")
)

// HazardLevel classifies risk severity, ordered from least to most severe.
type HazardLevel int

const (
	LowHazard HazardLevel = iota
	BelowAverageHazard
	AverageHazard
	AboveAverageHazard
	HighHazard
)

// HazardLevels lists every hazard level in low to high order.
var HazardLevels = []HazardLevel{LowHazard, BelowAverageHazard, AverageHazard, AboveAverageHazard, HighHazard}

var hazardIDs = [...]string{"LowHazard", "BelowAverageHazard", "AverageHazard", "AboveAverageHazard", "HighHazard"}

var hazardLabels = [...]string{"Low Hazard", "Below Average Hazard", "Average Hazard", "Above Average Hazard", "High Hazard"}

// Valid reports whether h is one of the five declared levels.
func (h HazardLevel) Valid() bool {
	return h >= LowHazard && h <= HighHazard
}

// String returns the canonical identifier, e.g. "AboveAverageHazard".
func (h HazardLevel) String() string {
	if !h.Valid() {
		return fmt.Sprintf("HazardLevel(%d)", int(h))
	}
	return hazardIDs[h]
}

// Label returns the display name, e.g. "Above Average Hazard".
func (h HazardLevel) Label() string {
	if !h.Valid() {
		return h.String()
	}
	return hazardLabels[h]
}

// normalizeKey folds case and drops separators so "Below Average Hazard",
// "below-average" and "BelowAverageHazard" compare equal.
func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	r := strings.NewReplacer(" ", "", "-", "", "_", "")
	return r.Replace(s)
}

// ParseHazardLevel accepts identifiers, display labels and short forms
// ("low", "below-average", "high"), case-insensitive.
func ParseHazardLevel(s string) (HazardLevel, error) {
	key := strings.TrimSuffix(normalizeKey(s), "hazard")
	for _, h := range HazardLevels {
		if key != "" && key == strings.TrimSuffix(normalizeKey(hazardIDs[h]), "hazard") {
			return h, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownHazardLevel, s)
}

// MarshalText implements encoding.TextMarshaler.
func (h HazardLevel) MarshalText() ([]byte, error) {
	if !h.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHazardLevel, int(h))
	}
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *HazardLevel) UnmarshalText(text []byte) error {
	parsed, err := ParseHazardLevel(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// UnmarshalYAML implements custom YAML unmarshaling for HazardLevel
func (h *HazardLevel) UnmarshalYAML(value *yaml.Node) error {
	return h.UnmarshalText([]byte(value.Value))
}

// MarshalYAML emits the canonical identifier.
func (h HazardLevel) MarshalYAML() (interface{}, error) {
	return h.String(), nil
}

// TreatyType selects the reinsurance program a risk is placed under.
type TreatyType int

const (
	Standard TreatyType = iota
	Surplus
)

// TreatyTypes lists every treaty type.
var TreatyTypes = []TreatyType{Standard, Surplus}

var (
	standardG3Threshold = decimal.NewFraction("0.5")
	surplusG3Threshold  = decimal.NewFraction("0.7")
)

// Valid reports whether t is a declared treaty type.
func (t TreatyType) Valid() bool {
	return t == Standard || t == Surplus
}

func (t TreatyType) String() string {
	switch t {
	case Standard:
		return "Standard"
	case Surplus:
		return "Surplus"
	default:
		return fmt.Sprintf("TreatyType(%d)", int(t))
	}
}

// Group2Multiplier is the Group 2 capacity expressed as a multiple of Group 1 capacity.
func (t TreatyType) Group2Multiplier() int64 {
	if t == Surplus {
		return 2
	}
	return 3
}

// Group3Threshold is the Group 3 share above which a result is flagged.
func (t TreatyType) Group3Threshold() decimal.Fraction {
	if t == Surplus {
		return surplusG3Threshold
	}
	return standardG3Threshold
}

// ParseTreatyType accepts "Standard" or "Surplus", case-insensitive.
func ParseTreatyType(s string) (TreatyType, error) {
	switch normalizeKey(s) {
	case "standard":
		return Standard, nil
	case "surplus":
		return Surplus, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTreatyType, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t TreatyType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTreatyType, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TreatyType) UnmarshalText(text []byte) error {
	parsed, err := ParseTreatyType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// UnmarshalYAML implements custom YAML unmarshaling for TreatyType
func (t *TreatyType) UnmarshalYAML(value *yaml.Node) error {
	return t.UnmarshalText([]byte(value.Value))
}

// MarshalYAML emits the treaty name.
func (t TreatyType) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}
