package decimal

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when a string cannot be read as a currency amount.
var ErrInvalidAmount = errors.New("invalid amount")

// maxAmountLen bounds the cleaned input; a whole-unit int64 has 19 digits.
const maxAmountLen = 32

// MaxAmount is the largest amount Units can represent.
var MaxAmount = Money{decimal.NewFromInt(math.MaxInt64)}

// Money represents a non-negative whole-unit currency amount. Fractional
// units are truncated on construction; the layering domain has no cents.
type Money struct {
	decimal.Decimal
}

// NewMoney returns units as Money.
func NewMoney(units int64) Money {
	return Money{decimal.NewFromInt(units)}
}

// NewMoneyFromDecimal truncates d to whole units.
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d.Truncate(0)}
}

// NewMoneyFromString reads a plain numeric string with no separators.
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Zero(), fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}
	return NewMoneyFromDecimal(d), nil
}

// ParseMoney reads user-entered amounts such as "1500000", "1,500,000",
// "$2,400,000" or "1500000.75". Negative values, exponent notation and
// amounts above MaxAmount are rejected.
func ParseMoney(s string) (Money, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.ReplaceAll(clean, "_", "")
	clean = strings.TrimSpace(clean)
	switch {
	case clean == "":
		return Money{}, fmt.Errorf("%w: empty", ErrInvalidAmount)
	case len(clean) > maxAmountLen:
		return Money{}, fmt.Errorf("%w: %d characters is too long", ErrInvalidAmount, len(clean))
	case strings.ContainsAny(clean, "eE"):
		return Money{}, fmt.Errorf("%w: %q uses exponent notation", ErrInvalidAmount, s)
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return Money{}, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, s)
	}
	m := NewMoneyFromDecimal(d)
	if m.GreaterThan(MaxAmount) {
		return Money{}, fmt.Errorf("%w: %q is out of range", ErrInvalidAmount, s)
	}
	return m, nil
}

// ParseMoneyOrZero is ParseMoney with every failure mapped to zero.
func ParseMoneyOrZero(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		return Zero()
	}
	return m
}

// Add returns m + other.
func (m Money) Add(other Money) Money { return Money{m.Decimal.Add(other.Decimal)} }

// Sub returns m - other. The result may be negative; see Remainder.
func (m Money) Sub(other Money) Money { return Money{m.Decimal.Sub(other.Decimal)} }

// Remainder returns what is left of m after taking amount, never below zero.
func (m Money) Remainder(amount Money) Money {
	if amount.GreaterThanOrEqual(m) {
		return Zero()
	}
	return m.Sub(amount)
}

// Times multiplies by a whole factor.
func (m Money) Times(factor int64) Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(factor))}
}

// Ratio returns m / whole as an unrounded Fraction. A zero whole yields zero.
func (m Money) Ratio(whole Money) Fraction {
	if whole.IsZero() {
		return Fraction{decimal.Zero}
	}
	return Fraction{m.Decimal.Div(whole.Decimal)}
}

func (m Money) GreaterThan(other Money) bool        { return m.Cmp(other.Decimal) > 0 }
func (m Money) GreaterThanOrEqual(other Money) bool { return m.Cmp(other.Decimal) >= 0 }
func (m Money) LessThan(other Money) bool           { return m.Cmp(other.Decimal) < 0 }
func (m Money) LessThanOrEqual(other Money) bool    { return m.Cmp(other.Decimal) <= 0 }
func (m Money) Equal(other Money) bool              { return m.Cmp(other.Decimal) == 0 }
func (m Money) IsZero() bool                        { return m.Sign() == 0 }
func (m Money) IsPositive() bool                    { return m.Sign() > 0 }

// Units returns the amount as whole currency units.
func (m Money) Units() int64 {
	return m.Decimal.IntPart()
}

// Min returns the smaller amount.
func Min(a, b Money) Money {
	if b.LessThan(a) {
		return b
	}
	return a
}

// Max returns the larger amount.
func Max(a, b Money) Money {
	if b.GreaterThan(a) {
		return b
	}
	return a
}

// Zero is the empty amount.
func Zero() Money { return Money{decimal.Zero} }

// String renders whole units without separators, e.g. "1500000".
func (m Money) String() string {
	return m.Decimal.StringFixed(0)
}

// Format renders the amount as "$1,500,000".
func (m Money) Format() string {
	return "$" + humanize.Comma(m.Units())
}

// MarshalJSON emits the amount as a bare JSON integer.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted amount string.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		*m = Zero()
		return nil
	}
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalYAML emits the amount as a YAML integer.
func (m Money) MarshalYAML() (interface{}, error) {
	return m.Units(), nil
}
