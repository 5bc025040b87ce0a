package decimal

import (
	"github.com/shopspring/decimal"
)

// FractionPlaces is the precision every layer share is rounded to (0.1%).
const FractionPlaces = 3

var hundred = decimal.NewFromInt(100)

// Fraction is a share of a whole, 1.0 meaning 100%.
type Fraction struct {
	decimal.Decimal
}

// NewFraction creates a Fraction from a decimal string such as "0.7".
// It panics on malformed input and is meant for constants.
func NewFraction(value string) Fraction {
	return Fraction{decimal.RequireFromString(value)}
}

// One is the whole.
func One() Fraction {
	return Fraction{decimal.NewFromInt(1)}
}

// ZeroFraction is an empty share.
func ZeroFraction() Fraction {
	return Fraction{decimal.Zero}
}

// Round rounds to FractionPlaces decimals, half away from zero.
func (f Fraction) Round() Fraction {
	return Fraction{f.Decimal.Round(FractionPlaces)}
}

// Add adds another fraction
func (f Fraction) Add(other Fraction) Fraction {
	return Fraction{f.Decimal.Add(other.Decimal)}
}

// Sub subtracts another fraction
func (f Fraction) Sub(other Fraction) Fraction {
	return Fraction{f.Decimal.Sub(other.Decimal)}
}

// Times multiplies by a whole factor
func (f Fraction) Times(factor int64) Fraction {
	return Fraction{f.Decimal.Mul(decimal.NewFromInt(factor))}
}

// GreaterThan checks if this fraction is greater than another
func (f Fraction) GreaterThan(other Fraction) bool {
	return f.Decimal.GreaterThan(other.Decimal)
}

// Equal checks if this fraction equals another
func (f Fraction) Equal(other Fraction) bool {
	return f.Decimal.Equal(other.Decimal)
}

// MinFraction returns the smaller of two fractions
func MinFraction(a, b Fraction) Fraction {
	if a.Decimal.LessThan(b.Decimal) {
		return a
	}
	return b
}

// MaxFraction returns the larger of two fractions
func MaxFraction(a, b Fraction) Fraction {
	if a.Decimal.GreaterThan(b.Decimal) {
		return a
	}
	return b
}

// String returns the share with three decimals, e.g. "0.300".
func (f Fraction) String() string {
	return f.Decimal.StringFixed(FractionPlaces)
}

// Percent renders the share as a percentage with one decimal, e.g. "30.0%".
func (f Fraction) Percent() string {
	return f.Decimal.Mul(hundred).StringFixed(1) + "%"
}

// MarshalJSON emits the share as a bare JSON number with three decimals.
func (f Fraction) MarshalJSON() ([]byte, error) {
	return []byte(f.String()), nil
}

// MarshalYAML emits the share as a YAML float.
func (f Fraction) MarshalYAML() (interface{}, error) {
	return f.Decimal.InexactFloat64(), nil
}
