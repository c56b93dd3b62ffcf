// pkg/store/memory.go

package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bizbooks-service/pkg/expense"
	"github.com/bizbooks-service/pkg/invoice"
	"github.com/bizbooks-service/pkg/profile"
	"github.com/bizbooks-service/pkg/session"
	"github.com/bizbooks-service/pkg/tax"
	"github.com/google/uuid"
)

// Memory is an in-process Repository for tests and local runs without a
// database. Records are returned in insertion order.
type Memory struct {
	mu       sync.RWMutex
	invoices []invoice.Invoice
	entries  []tax.Entry
	expenses []expense.Expense
	profiles map[string]profile.CompanyProfile
}

func NewMemory() *Memory {
	return &Memory{profiles: make(map[string]profile.CompanyProfile)}
}

func cloneInvoice(inv invoice.Invoice) invoice.Invoice {
	inv.Items = append([]invoice.LineItem(nil), inv.Items...)
	return inv
}

func (m *Memory) CreateInvoice(_ context.Context, s session.Session, inv *invoice.Invoice) error {
	if err := inv.Recalculate(); err != nil {
		return err
	}
	if err := inv.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.invoices {
		if existing.UserID == s.UserID && existing.InvoiceNumber == inv.InvoiceNumber {
			return invoice.ErrDuplicateNumber
		}
	}
	inv.ID = uuid.NewString()
	inv.UserID = s.UserID
	inv.CreatedAt = time.Now().UTC()
	m.invoices = append(m.invoices, cloneInvoice(*inv))
	return nil
}

func (m *Memory) findInvoice(s session.Session, match func(invoice.Invoice) bool) (*invoice.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, inv := range m.invoices {
		if inv.UserID == s.UserID && match(inv) {
			out := cloneInvoice(inv)
			return &out, nil
		}
	}
	return nil, invoice.ErrInvoiceNotFound
}

func (m *Memory) GetInvoice(_ context.Context, s session.Session, id string) (*invoice.Invoice, error) {
	return m.findInvoice(s, func(inv invoice.Invoice) bool { return inv.ID == id })
}

func (m *Memory) GetInvoiceByNumber(_ context.Context, s session.Session, number string) (*invoice.Invoice, error) {
	return m.findInvoice(s, func(inv invoice.Invoice) bool { return inv.InvoiceNumber == number })
}

func (m *Memory) ListInvoices(_ context.Context, s session.Session) ([]invoice.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []invoice.Invoice
	for i := len(m.invoices) - 1; i >= 0; i-- {
		if m.invoices[i].UserID == s.UserID {
			out = append(out, cloneInvoice(m.invoices[i]))
		}
	}
	return out, nil
}

func (m *Memory) UpdateInvoiceStatus(_ context.Context, s session.Session, id string, status invoice.Status) error {
	if !status.Valid() {
		return fmt.Errorf("unknown invoice status %q", status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.invoices {
		if m.invoices[i].UserID == s.UserID && m.invoices[i].ID == id {
			m.invoices[i].Status = status
			return nil
		}
	}
	return invoice.ErrInvoiceNotFound
}

func (m *Memory) CreateTaxEntry(_ context.Context, s session.Session, e *tax.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.ID = uuid.NewString()
	e.UserID = s.UserID
	if e.DateAdded.IsZero() {
		e.DateAdded = time.Now().UTC()
	}
	m.mu.Lock()
	m.entries = append(m.entries, *e)
	m.mu.Unlock()
	return nil
}

func (m *Memory) ListTaxEntries(_ context.Context, s session.Session) ([]tax.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []tax.Entry
	for _, e := range m.entries {
		if e.UserID == s.UserID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *Memory) DeleteTaxEntry(_ context.Context, s session.Session, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.entries {
		if e.UserID == s.UserID && e.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return tax.ErrEntryNotFound
}

func (m *Memory) CreateExpense(_ context.Context, s session.Session, e *expense.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.ID = uuid.NewString()
	e.UserID = s.UserID
	if e.Date.IsZero() {
		e.Date = time.Now().UTC()
	}
	m.mu.Lock()
	m.expenses = append(m.expenses, *e)
	m.mu.Unlock()
	return nil
}

func (m *Memory) GetExpense(_ context.Context, s session.Session, id string) (*expense.Expense, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.expenses {
		if e.UserID == s.UserID && e.ID == id {
			return &e, nil
		}
	}
	return nil, expense.ErrExpenseNotFound
}

func (m *Memory) ListExpenses(_ context.Context, s session.Session) ([]expense.Expense, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []expense.Expense
	for _, e := range m.expenses {
		if e.UserID == s.UserID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *Memory) SetExpenseReceipt(_ context.Context, s session.Session, id, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.expenses {
		if m.expenses[i].UserID == s.UserID && m.expenses[i].ID == id {
			m.expenses[i].ReceiptRef = ref
			return nil
		}
	}
	return expense.ErrExpenseNotFound
}

func (m *Memory) GetProfile(_ context.Context, s session.Session) (*profile.CompanyProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[s.UserID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	return &p, nil
}

func (m *Memory) SaveProfile(_ context.Context, s session.Session, p *profile.CompanyProfile) error {
	p.UserID = s.UserID
	m.mu.Lock()
	m.profiles[s.UserID] = *p
	m.mu.Unlock()
	return nil
}
