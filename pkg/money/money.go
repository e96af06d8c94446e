package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amounts are stored as integer minor units (cents) everywhere in the system;
// decimals exist only at the API and seed-data boundaries. Using decimal for
// the conversion keeps parsing exact, with no binary-float drift.

var centsPerUnit = decimal.NewFromInt(100)

// ParseToCents converts a decimal amount string ("299", "12.50") to cents.
// It rejects negative amounts and precision finer than two decimal places.
func ParseToCents(raw string) (int, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", raw, err)
	}
	return DecimalToCents(d)
}

// DecimalToCents converts a decimal amount to integer cents.
func DecimalToCents(d decimal.Decimal) (int, error) {
	if d.IsNegative() {
		return 0, fmt.Errorf("amount %s is negative", d)
	}
	scaled := d.Mul(centsPerUnit)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("amount %s has sub-cent precision", d)
	}
	return int(scaled.IntPart()), nil
}

// CentsToDecimal converts integer cents back to a decimal amount.
func CentsToDecimal(cents int) decimal.Decimal {
	return decimal.NewFromInt(int64(cents)).Div(centsPerUnit)
}

// FormatCents renders cents as a plain decimal string ("797", "12.5").
func FormatCents(cents int) string {
	return CentsToDecimal(cents).String()
}
