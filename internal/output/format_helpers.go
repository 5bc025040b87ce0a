package output

import (
	"strconv"

	"github.com/underwriting/capacity-calculator/pkg/decimal"
)

// FormatCurrency formats whole-unit money with thousands separators, e.g. "$3,000,000".
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Money) string { return amount.Format() }

// FormatPercentage formats a share as a percentage with one decimal, e.g. "30.0%".
func FormatPercentage(share decimal.Fraction) string { return share.Percent() }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
