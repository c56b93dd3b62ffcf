// pkg/money/money.go

package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places every stored amount carries.
const Places = 2

// ErrTooPrecise is returned for stored amounts finer than a cent.
var ErrTooPrecise = errors.New("amount has more than two decimal places")

// CheckPlaces rejects d when rounding it to cents would change its value.
// Trailing zeros such as "1.500" are fine.
func CheckPlaces(d decimal.Decimal) error {
	if !d.Equal(Round(d)) {
		return fmt.Errorf("%w: %s", ErrTooPrecise, d)
	}
	return nil
}

// Round rounds d to two decimal places, halves away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Format renders d as a dollar amount with exactly two decimals, e.g. "$1,234.50".
func Format(d decimal.Decimal) string {
	s := Round(d).StringFixed(Places)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := "$" + b.String() + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

// Parse accepts user formatted strings like "$1,234.50" or " 20 ".
func Parse(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.ReplaceAll(clean, "$", "")
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}
