// pkg/expense/expense.go

package expense

import (
	"errors"
	"strings"
	"time"

	"github.com/bizbooks-service/pkg/aggregate"
	"github.com/bizbooks-service/pkg/money"
	"github.com/shopspring/decimal"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrMissingCategory = errors.New("expense category is required")
)

// Expense is a single business expense, optionally backed by a receipt file.
type Expense struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	ReceiptRef  string          `json:"receipt_ref,omitempty"`
}

func (e *Expense) Validate() error {
	if strings.TrimSpace(e.Category) == "" {
		return ErrMissingCategory
	}
	if e.Amount.IsNegative() {
		return aggregate.ErrInvalidAmount
	}
	return money.CheckPlaces(e.Amount)
}

// Filter narrows a list of expenses. Zero fields match everything.
type Filter struct {
	Category string
	From     time.Time
	To       time.Time
	Search   string
}

func (f Filter) Match(e Expense) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, e.Category) {
		return false
	}
	if !f.From.IsZero() && e.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && e.Date.After(f.To) {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(e.Description), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

func (f Filter) Apply(expenses []Expense) []Expense {
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// CategoryTotals sums expenses per category in first-seen order.
func CategoryTotals(expenses []Expense) aggregate.Totals {
	g := aggregate.GroupByKey(expenses, func(e Expense) string { return e.Category })
	return aggregate.SumByGroup(g,
		func(c string) string { return c },
		func(e Expense) decimal.Decimal { return e.Amount })
}
