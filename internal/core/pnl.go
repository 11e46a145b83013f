// Package core holds the tracker's domain entities and the parsing helpers
// shared by every storage backend and the analytics layer.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePnL parses a profit-and-loss decimal string. The second return is
// false for empty or unparseable values; such trades still count toward
// trade totals but are excluded from win/loss aggregation.
func ParsePnL(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	// Tolerate a decimal comma, same as amounts typed by hand.
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseMetric parses an optional decimal metric field (risk metrics, goal
// targets). Empty strings are simply absent values.
func ParseMetric(s string) (decimal.Decimal, bool) {
	return ParsePnL(s)
}
