// pkg/tax/tax.go

package tax

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bizbooks-service/pkg/aggregate"
	"github.com/bizbooks-service/pkg/money"
	"github.com/shopspring/decimal"
)

const (
	MinYear = 2000
	MaxYear = 2100
)

// Category is one of the fixed tax entry labels.
type Category string

const (
	CategoryIncome               Category = "Income"
	CategoryBusinessExpenses     Category = "Business Expenses"
	CategoryOfficeSupplies       Category = "Office Supplies"
	CategoryTravel               Category = "Travel"
	CategoryMealsEntertainment   Category = "Meals & Entertainment"
	CategoryUtilities            Category = "Utilities"
	CategoryRent                 Category = "Rent"
	CategoryInsurance            Category = "Insurance"
	CategoryProfessionalServices Category = "Professional Services"
	CategoryEquipment            Category = "Equipment"
	CategoryOther                Category = "Other"
)

var Categories = []Category{
	CategoryIncome,
	CategoryBusinessExpenses,
	CategoryOfficeSupplies,
	CategoryTravel,
	CategoryMealsEntertainment,
	CategoryUtilities,
	CategoryRent,
	CategoryInsurance,
	CategoryProfessionalServices,
	CategoryEquipment,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

var (
	ErrEntryNotFound   = errors.New("tax entry not found")
	ErrYearOutOfRange  = fmt.Errorf("tax year must be between %d and %d", MinYear, MaxYear)
	ErrUnknownCategory = errors.New("unknown tax category")
	ErrAmountTooSmall  = errors.New("amount must be at least 0.01")
)

var minAmount = decimal.New(1, -2)

// Entry is a single logged tax record. Entries are never merged.
type Entry struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	TaxYear     int             `json:"tax_year"`
	Category    Category        `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	DateAdded   time.Time       `json:"date_added"`
}

func (e *Entry) Validate() error {
	if e.TaxYear < MinYear || e.TaxYear > MaxYear {
		return ErrYearOutOfRange
	}
	if !e.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, e.Category)
	}
	if e.Amount.IsNegative() {
		return aggregate.ErrInvalidAmount
	}
	if e.Amount.LessThan(minAmount) {
		return ErrAmountTooSmall
	}
	return money.CheckPlaces(e.Amount)
}

// ParseYear parses an optional year filter. Empty input means all years.
func ParseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid tax year %q", s)
	}
	if y < MinYear || y > MaxYear {
		return 0, ErrYearOutOfRange
	}
	return y, nil
}

// ReportFileName is "Tax-Report" or "Tax-Report-<year>" when year is set.
func ReportFileName(year int) string {
	if year == 0 {
		return "Tax-Report"
	}
	return "Tax-Report-" + strconv.Itoa(year)
}

// FilterYear returns the entries for year, or all entries when year is 0.
func FilterYear(entries []Entry, year int) []Entry {
	if year == 0 {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.TaxYear == year {
			out = append(out, e)
		}
	}
	return out
}
