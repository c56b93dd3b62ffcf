// pkg/tax/summary.go

package tax

import (
	"strconv"

	"github.com/bizbooks-service/pkg/aggregate"
	"github.com/shopspring/decimal"
)

// YearGroup holds one tax year's entries and their category totals.
type YearGroup struct {
	Year       int              `json:"year"`
	Entries    []Entry          `json:"entries"`
	Categories aggregate.Totals `json:"categories"`
}

// Summary is the grouped view of a set of entries: years most recent first,
// categories in first-seen order inside each year.
type Summary struct {
	Years      []YearGroup      `json:"years"`
	YearTotals aggregate.Totals `json:"year_totals"`
}

func (s *Summary) GrandTotal() decimal.Decimal {
	return s.YearTotals.GrandTotal()
}

func entryAmount(e Entry) decimal.Decimal { return e.Amount }

// CategoryTotals sums entries by category in first-seen order.
func CategoryTotals(entries []Entry) aggregate.Totals {
	g := aggregate.GroupByKey(entries, func(e Entry) Category { return e.Category })
	return aggregate.SumByGroup(g, func(c Category) string { return string(c) }, entryAmount)
}

// Summarize groups entries by year, descending, then by category.
func Summarize(entries []Entry) *Summary {
	byYear := aggregate.GroupByKey(entries, func(e Entry) int { return e.TaxYear })
	byYear.SortKeys(func(a, b int) bool { return a > b })

	s := &Summary{
		YearTotals: aggregate.SumByGroup(byYear, strconv.Itoa, entryAmount),
	}
	for _, y := range byYear.Keys() {
		yearEntries := byYear.Get(y)
		s.Years = append(s.Years, YearGroup{
			Year:       y,
			Entries:    yearEntries,
			Categories: CategoryTotals(yearEntries),
		})
	}
	return s
}
