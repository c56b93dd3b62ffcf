// pkg/store/rows.go

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/bizbooks-service/pkg/expense"
	"github.com/bizbooks-service/pkg/invoice"
	"github.com/bizbooks-service/pkg/profile"
	"github.com/bizbooks-service/pkg/tax"
	"github.com/shopspring/decimal"
)

// Raw row shapes as scanned from the database. Numeric columns arrive as
// text and nullable columns as sql.Null*; to* methods validate and convert.

type rawInvoice struct {
	ID            string
	UserID        string
	ClientName    string
	InvoiceNumber string
	IssueDate     time.Time
	DueDate       sql.NullTime
	Status        string
	Notes         sql.NullString
	TotalAmount   string
	CreatedAt     time.Time
}

type rawLineItem struct {
	Description string
	Quantity    string
	UnitPrice   string
	Amount      string
}

type rawTaxEntry struct {
	ID          string
	UserID      string
	TaxYear     int64
	Category    string
	Amount      string
	Description sql.NullString
	DateAdded   time.Time
}

type rawExpense struct {
	ID          string
	UserID      string
	Description sql.NullString
	Category    string
	Amount      string
	Date        time.Time
	ReceiptRef  sql.NullString
}

type rawProfile struct {
	UserID       string
	CompanyName  sql.NullString
	LogoRef      sql.NullString
	Address      sql.NullString
	Email        sql.NullString
	Phone        sql.NullString
	TaxID        sql.NullString
	BusinessType sql.NullString
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("column %s: %w", field, err)
	}
	return d, nil
}

func (r rawLineItem) toLineItem() (invoice.LineItem, error) {
	qty, err := parseDecimal("quantity", r.Quantity)
	if err != nil {
		return invoice.LineItem{}, err
	}
	price, err := parseDecimal("unit_price", r.UnitPrice)
	if err != nil {
		return invoice.LineItem{}, err
	}
	// the stored amount is informational; the typed item is always recomputed
	return invoice.NewLineItem(r.Description, qty, price)
}

// toInvoice builds the typed invoice and recomputes the total from items.
func (r rawInvoice) toInvoice(items []rawLineItem) (*invoice.Invoice, error) {
	status, err := invoice.ParseStatus(r.Status)
	if err != nil {
		return nil, fmt.Errorf("invoice %s: %w", r.ID, err)
	}
	inv := &invoice.Invoice{
		ID:            r.ID,
		UserID:        r.UserID,
		ClientName:    r.ClientName,
		InvoiceNumber: r.InvoiceNumber,
		IssueDate:     r.IssueDate,
		Status:        status,
		Notes:         r.Notes.String,
		CreatedAt:     r.CreatedAt,
	}
	if r.DueDate.Valid {
		inv.DueDate = r.DueDate.Time
	}
	for _, ri := range items {
		it, err := ri.toLineItem()
		if err != nil {
			return nil, fmt.Errorf("invoice %s: %w", r.ID, err)
		}
		inv.Items = append(inv.Items, it)
	}
	if err := inv.Recalculate(); err != nil {
		return nil, fmt.Errorf("invoice %s: %w", r.ID, err)
	}
	return inv, nil
}

func (r rawTaxEntry) toTaxEntry() (tax.Entry, error) {
	amount, err := parseDecimal("amount", r.Amount)
	if err != nil {
		return tax.Entry{}, err
	}
	e := tax.Entry{
		ID:          r.ID,
		UserID:      r.UserID,
		TaxYear:     int(r.TaxYear),
		Category:    tax.Category(r.Category),
		Amount:      amount,
		Description: r.Description.String,
		DateAdded:   r.DateAdded,
	}
	if err := e.Validate(); err != nil {
		return tax.Entry{}, fmt.Errorf("tax entry %s: %w", r.ID, err)
	}
	return e, nil
}

func (r rawExpense) toExpense() (expense.Expense, error) {
	amount, err := parseDecimal("amount", r.Amount)
	if err != nil {
		return expense.Expense{}, err
	}
	e := expense.Expense{
		ID:          r.ID,
		UserID:      r.UserID,
		Description: r.Description.String,
		Category:    r.Category,
		Amount:      amount,
		Date:        r.Date,
		ReceiptRef:  r.ReceiptRef.String,
	}
	if err := e.Validate(); err != nil {
		return expense.Expense{}, fmt.Errorf("expense %s: %w", r.ID, err)
	}
	return e, nil
}

func (r rawProfile) toProfile() *profile.CompanyProfile {
	return &profile.CompanyProfile{
		UserID:       r.UserID,
		CompanyName:  strings.TrimSpace(r.CompanyName.String),
		LogoRef:      strings.TrimSpace(r.LogoRef.String),
		Address:      strings.TrimSpace(r.Address.String),
		Email:        strings.TrimSpace(r.Email.String),
		Phone:        strings.TrimSpace(r.Phone.String),
		TaxID:        strings.TrimSpace(r.TaxID.String),
		BusinessType: strings.TrimSpace(r.BusinessType.String),
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
