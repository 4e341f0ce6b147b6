package main

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// formatAmount renders minor units as a major-unit decimal, e.g. 1050 with
// two decimals as "10.50".
func formatAmount(amount int64, decimals int32) string {
	return decimal.New(amount, -decimals).StringFixed(decimals)
}

// parseAmount converts a major-unit string into minor units. It rejects
// values with more fractional digits than decimals allows.
func parseAmount(s string, decimals int32) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	minor := d.Shift(decimals)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than %d fractional digits", s, decimals)
	}
	if !minor.BigInt().IsInt64() {
		return 0, fmt.Errorf("amount %q is out of range", s)
	}
	return minor.IntPart(), nil
}
