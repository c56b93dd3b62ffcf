// pkg/store/store.go

// Package store persists invoices, tax entries, expenses and business
// profiles per user. Rows are coerced into typed entities at this boundary.
package store

import (
	"context"

	"github.com/bizbooks-service/pkg/expense"
	"github.com/bizbooks-service/pkg/invoice"
	"github.com/bizbooks-service/pkg/profile"
	"github.com/bizbooks-service/pkg/session"
	"github.com/bizbooks-service/pkg/tax"
)

// Repository is implemented by Postgres and Memory. Every call is scoped to
// the session's user.
type Repository interface {
	CreateInvoice(ctx context.Context, s session.Session, inv *invoice.Invoice) error
	GetInvoice(ctx context.Context, s session.Session, id string) (*invoice.Invoice, error)
	GetInvoiceByNumber(ctx context.Context, s session.Session, number string) (*invoice.Invoice, error)
	ListInvoices(ctx context.Context, s session.Session) ([]invoice.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, s session.Session, id string, status invoice.Status) error

	CreateTaxEntry(ctx context.Context, s session.Session, e *tax.Entry) error
	ListTaxEntries(ctx context.Context, s session.Session) ([]tax.Entry, error)
	DeleteTaxEntry(ctx context.Context, s session.Session, id string) error

	CreateExpense(ctx context.Context, s session.Session, e *expense.Expense) error
	GetExpense(ctx context.Context, s session.Session, id string) (*expense.Expense, error)
	ListExpenses(ctx context.Context, s session.Session) ([]expense.Expense, error)
	SetExpenseReceipt(ctx context.Context, s session.Session, id, ref string) error

	// GetProfile returns profile.ErrProfileNotFound when the user has none.
	GetProfile(ctx context.Context, s session.Session) (*profile.CompanyProfile, error)
	SaveProfile(ctx context.Context, s session.Session, p *profile.CompanyProfile) error
}
