// Package core holds the domain model of the store: ledger entries,
// stock rows, inventory products and the money/date primitives they share.
//
// This file contains functions for parsing monetary amounts from strings
// and converting between paisa and rupee representations.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Money is an amount in paisa (1/100 of a rupee). Amounts are kept as
// integers so aggregation never accumulates floating-point drift.
type Money struct {
	Paisa int64
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{Paisa: m.Paisa + o.Paisa}
}

// Sub returns m - o. The result may be negative (losses, net deficits).
func (m Money) Sub(o Money) Money {
	return Money{Paisa: m.Paisa - o.Paisa}
}

// Rupees returns the rupee value as a float64 for display purposes.
// Use paisa for calculations to avoid floating-point precision issues.
func (m Money) Rupees() float64 {
	return float64(m.Paisa) / 100.0
}

// String renders the amount as a plain decimal ("80" or "-170.50"),
// the format used in the persisted CSV tables.
func (m Money) String() string {
	p := m.Paisa
	neg := p < 0
	if neg {
		p = -p
	}
	s := strconv.FormatInt(p/100, 10)
	if rem := p % 100; rem != 0 {
		s += fmt.Sprintf(".%02d", rem)
	}
	if neg {
		return "-" + s
	}
	return s
}

// ParseDecimalToPaisa converts a decimal string to paisa with half-up
// rounding on the third decimal place. It accepts both dot (12.34) and
// comma (12,34) separators. Zero is valid: expense rows have no sale and
// sale rows may record a zero cost. Negative amounts are rejected.
func ParseDecimalToPaisa(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// Take first two fractional digits; then half-up rounding on third
	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			frac += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				frac++
			}
		}
	}
	return iv*100 + frac, nil
}

// ParseSignedToPaisa is ParseDecimalToPaisa with a leading minus allowed.
// Persisted profit values can be negative when an item sold below cost.
func ParseSignedToPaisa(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		p, err := ParseDecimalToPaisa(rest)
		if err != nil {
			return 0, err
		}
		return -p, nil
	}
	return ParseDecimalToPaisa(s)
}
