// pkg/aggregate/aggregate.go

// Package aggregate computes line amounts, document totals and grouped totals
// over small in-memory record sets.
package aggregate

import (
	"errors"
	"sort"

	"github.com/bizbooks-service/pkg/money"
	"github.com/shopspring/decimal"
)

// GrandTotalLabel is the synthetic key appended after every grouped total.
const GrandTotalLabel = "GRAND TOTAL"

var ErrInvalidAmount = errors.New("invalid amount")

// LineAmount returns quantity × unitPrice rounded to two places.
func LineAmount(quantity, unitPrice decimal.Decimal) (decimal.Decimal, error) {
	if quantity.IsNegative() || unitPrice.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return money.Round(quantity.Mul(unitPrice)), nil
}

// DocumentTotal sums amounts and rounds the result. An empty slice totals zero.
func DocumentTotal(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return money.Round(total)
}

// Groups keeps records partitioned by key in first-seen key order.
type Groups[K comparable, R any] struct {
	keys    []K
	records map[K][]R
}

// GroupByKey partitions records by keyFn, preserving the order in which each
// key first appears.
func GroupByKey[K comparable, R any](records []R, keyFn func(R) K) *Groups[K, R] {
	g := &Groups[K, R]{records: make(map[K][]R)}
	for _, r := range records {
		k := keyFn(r)
		if _, ok := g.records[k]; !ok {
			g.keys = append(g.keys, k)
		}
		g.records[k] = append(g.records[k], r)
	}
	return g
}

// Keys returns the group keys in their current order.
func (g *Groups[K, R]) Keys() []K {
	out := make([]K, len(g.keys))
	copy(out, g.keys)
	return out
}

// Get returns the records grouped under k.
func (g *Groups[K, R]) Get(k K) []R {
	return g.records[k]
}

func (g *Groups[K, R]) Len() int {
	return len(g.keys)
}

// SortKeys reorders the groups with less. Record order inside a group is untouched.
func (g *Groups[K, R]) SortKeys(less func(a, b K) bool) {
	sort.SliceStable(g.keys, func(i, j int) bool { return less(g.keys[i], g.keys[j]) })
}

// Row is one labelled total.
type Row struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// Totals is an ordered list of group totals. The last row is always the grand total.
type Totals []Row

// GrandTotal returns the trailing GRAND TOTAL row amount.
func (t Totals) GrandTotal() decimal.Decimal {
	if len(t) == 0 {
		return decimal.Zero
	}
	return t[len(t)-1].Amount
}

// Groups returns the rows without the trailing grand total.
func (t Totals) Groups() []Row {
	if len(t) == 0 {
		return nil
	}
	return t[:len(t)-1]
}

// SumByGroup totals each group in key order and appends the grand total.
func SumByGroup[K comparable, R any](g *Groups[K, R], label func(K) string, amount func(R) decimal.Decimal) Totals {
	out := make(Totals, 0, g.Len()+1)
	groupTotals := make([]decimal.Decimal, 0, g.Len())
	for _, k := range g.keys {
		amounts := make([]decimal.Decimal, 0, len(g.records[k]))
		for _, r := range g.records[k] {
			amounts = append(amounts, amount(r))
		}
		total := DocumentTotal(amounts)
		groupTotals = append(groupTotals, total)
		out = append(out, Row{Label: label(k), Amount: total})
	}
	out = append(out, Row{Label: GrandTotalLabel, Amount: DocumentTotal(groupTotals)})
	return out
}
