// pkg/invoice/invoice.go

package invoice

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bizbooks-service/pkg/aggregate"
	"github.com/shopspring/decimal"
)

// Status is a free-form invoice status. Any status may follow any other.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusSent    Status = "sent"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

var Statuses = []Status{StatusDraft, StatusSent, StatusPaid, StatusOverdue}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseStatus normalizes s; an empty status becomes draft.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if st == "" {
		return StatusDraft, nil
	}
	if !st.Valid() {
		return "", fmt.Errorf("unknown invoice status %q", s)
	}
	return st, nil
}

var (
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrDuplicateNumber    = errors.New("invoice number already used")
	ErrMissingClient      = errors.New("client name is required")
	ErrMissingNumber      = errors.New("invoice number is required")
	ErrDueBeforeIssueDate = errors.New("due date is before issue date")
)

// Invoice represents the invoice data model.
type Invoice struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	ClientName    string          `json:"client_name"`
	InvoiceNumber string          `json:"invoice_number"`
	IssueDate     time.Time       `json:"issue_date"`
	DueDate       time.Time       `json:"due_date"`
	Status        Status          `json:"status"`
	Notes         string          `json:"notes,omitempty"`
	Items         []LineItem      `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

// LineItem represents an item in the invoice.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// NewLineItem computes the line amount from quantity and unit price.
func NewLineItem(description string, quantity, unitPrice decimal.Decimal) (LineItem, error) {
	amount, err := aggregate.LineAmount(quantity, unitPrice)
	if err != nil {
		return LineItem{}, fmt.Errorf("line %q: %w", description, err)
	}
	return LineItem{
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      amount,
	}, nil
}

// Recalculate recomputes every line amount and the invoice total.
func (inv *Invoice) Recalculate() error {
	amounts := make([]decimal.Decimal, 0, len(inv.Items))
	for i, it := range inv.Items {
		line, err := NewLineItem(it.Description, it.Quantity, it.UnitPrice)
		if err != nil {
			return err
		}
		inv.Items[i] = line
		amounts = append(amounts, line.Amount)
	}
	inv.TotalAmount = aggregate.DocumentTotal(amounts)
	return nil
}

// IsEmpty reports a zero-item invoice. Saving one is allowed but callers
// should warn first.
func (inv *Invoice) IsEmpty() bool {
	return len(inv.Items) == 0
}

func (inv *Invoice) Validate() error {
	if strings.TrimSpace(inv.ClientName) == "" {
		return ErrMissingClient
	}
	if strings.TrimSpace(inv.InvoiceNumber) == "" {
		return ErrMissingNumber
	}
	if !inv.Status.Valid() {
		return fmt.Errorf("unknown invoice status %q", inv.Status)
	}
	if !inv.DueDate.IsZero() && inv.DueDate.Before(inv.IssueDate) {
		return ErrDueBeforeIssueDate
	}
	for _, it := range inv.Items {
		if it.Quantity.IsNegative() || it.UnitPrice.IsNegative() {
			return fmt.Errorf("line %q: %w", it.Description, aggregate.ErrInvalidAmount)
		}
	}
	return nil
}

// FileName is the export name for the invoice, without extension.
func (inv *Invoice) FileName() string {
	return "Invoice_" + inv.InvoiceNumber
}
