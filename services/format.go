package services

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FormatQuantity renders a quantity held as int64 hundredths into its
// fixed-2-decimal display form, e.g. 1250 -> "12.50", -5 -> "-0.05".
func FormatQuantity(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// QuantityFloat converts int64 hundredths into the float64 value written to
// numeric spreadsheet cells. Display precision is pinned to 2 decimals by the
// cell's number format.
func QuantityFloat(cents int64) float64 {
	f, _ := decimal.New(cents, -2).Float64()
	return f
}

// ParseQuantity parses a decimal string with at most 2 fractional digits into
// int64 hundredths. Inputs with more precision are rejected rather than
// silently rounded.
func ParseQuantity(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	if !d.Equal(d.Round(2)) {
		return 0, fmt.Errorf("quantity %q has more than 2 decimal places", s)
	}
	return d.Shift(2).IntPart(), nil
}
