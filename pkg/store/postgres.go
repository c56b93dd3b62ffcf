// pkg/store/postgres.go

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bizbooks-service/pkg/expense"
	"github.com/bizbooks-service/pkg/invoice"
	"github.com/bizbooks-service/pkg/profile"
	"github.com/bizbooks-service/pkg/session"
	"github.com/bizbooks-service/pkg/tax"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// Postgres is the Repository backed by database/sql and lib/pq.
type Postgres struct {
	db *sql.DB
}

// Open connects to the database at dsn and verifies the connection.
func Open(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return &Postgres{db: db}, nil
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

// Migrate creates the tables if they do not exist yet.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (p *Postgres) CreateInvoice(ctx context.Context, s session.Session, inv *invoice.Invoice) error {
	if err := inv.Recalculate(); err != nil {
		return err
	}
	if err := inv.Validate(); err != nil {
		return err
	}
	inv.ID = uuid.NewString()
	inv.UserID = s.UserID
	inv.CreatedAt = time.Now().UTC()

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO invoices
		(id, user_id, client_name, invoice_number, issue_date, due_date, status, notes, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		inv.ID, inv.UserID, inv.ClientName, inv.InvoiceNumber, inv.IssueDate, nullTime(inv.DueDate),
		string(inv.Status), nullString(inv.Notes), inv.TotalAmount.StringFixed(2), inv.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return invoice.ErrDuplicateNumber
		}
		return fmt.Errorf("insert invoice: %w", err)
	}

	for i, it := range inv.Items {
		_, err = tx.ExecContext(ctx, `INSERT INTO invoice_items
			(invoice_id, position, description, quantity, unit_price, amount)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			inv.ID, i, it.Description, it.Quantity.String(), it.UnitPrice.String(), it.Amount.StringFixed(2))
		if err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}
	return tx.Commit()
}

const invoiceColumns = `id, user_id, client_name, invoice_number, issue_date, due_date, status, notes, total_amount, created_at`

func scanInvoice(row interface{ Scan(...any) error }) (rawInvoice, error) {
	var r rawInvoice
	err := row.Scan(&r.ID, &r.UserID, &r.ClientName, &r.InvoiceNumber, &r.IssueDate, &r.DueDate,
		&r.Status, &r.Notes, &r.TotalAmount, &r.CreatedAt)
	return r, err
}

func (p *Postgres) items(ctx context.Context, invoiceID string) ([]rawLineItem, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT description, quantity, unit_price, amount
		FROM invoice_items WHERE invoice_id = $1 ORDER BY position`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []rawLineItem
	for rows.Next() {
		var it rawLineItem
		if err := rows.Scan(&it.Description, &it.Quantity, &it.UnitPrice, &it.Amount); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (p *Postgres) getInvoice(ctx context.Context, where string, args ...any) (*invoice.Invoice, error) {
	raw, err := scanInvoice(p.db.QueryRowContext(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE `+where, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, invoice.ErrInvoiceNotFound
	}
	if err != nil {
		return nil, err
	}
	items, err := p.items(ctx, raw.ID)
	if err != nil {
		return nil, err
	}
	return raw.toInvoice(items)
}

func (p *Postgres) GetInvoice(ctx context.Context, s session.Session, id string) (*invoice.Invoice, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, invoice.ErrInvoiceNotFound
	}
	return p.getInvoice(ctx, "user_id = $1 AND id = $2", s.UserID, id)
}

func (p *Postgres) GetInvoiceByNumber(ctx context.Context, s session.Session, number string) (*invoice.Invoice, error) {
	return p.getInvoice(ctx, "user_id = $1 AND invoice_number = $2", s.UserID, number)
}

func (p *Postgres) ListInvoices(ctx context.Context, s session.Session) ([]invoice.Invoice, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT `+invoiceColumns+` FROM invoices
		WHERE user_id = $1 ORDER BY created_at DESC`, s.UserID)
	if err != nil {
		return nil, err
	}
	var raws []rawInvoice
	for rows.Next() {
		r, err := scanInvoice(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		raws = append(raws, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]invoice.Invoice, 0, len(raws))
	for _, r := range raws {
		items, err := p.items(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		inv, err := r.toInvoice(items)
		if err != nil {
			return nil, err
		}
		out = append(out, *inv)
	}
	return out, nil
}

func (p *Postgres) UpdateInvoiceStatus(ctx context.Context, s session.Session, id string, status invoice.Status) error {
	if !status.Valid() {
		return fmt.Errorf("unknown invoice status %q", status)
	}
	if _, err := uuid.Parse(id); err != nil {
		return invoice.ErrInvoiceNotFound
	}
	res, err := p.db.ExecContext(ctx, `UPDATE invoices SET status = $1 WHERE user_id = $2 AND id = $3`,
		string(status), s.UserID, id)
	if err != nil {
		return err
	}
	return expectOne(res, invoice.ErrInvoiceNotFound)
}

func (p *Postgres) CreateTaxEntry(ctx context.Context, s session.Session, e *tax.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.ID = uuid.NewString()
	e.UserID = s.UserID
	if e.DateAdded.IsZero() {
		e.DateAdded = time.Now().UTC()
	}
	_, err := p.db.ExecContext(ctx, `INSERT INTO tax_entries
		(id, user_id, tax_year, category, amount, description, date_added)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.UserID, e.TaxYear, string(e.Category), e.Amount.StringFixed(2), nullString(e.Description), e.DateAdded)
	if err != nil {
		return fmt.Errorf("insert tax entry: %w", err)
	}
	return nil
}

func (p *Postgres) ListTaxEntries(ctx context.Context, s session.Session) ([]tax.Entry, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT id, user_id, tax_year, category, amount, description, date_added
		FROM tax_entries WHERE user_id = $1 ORDER BY date_added, id`, s.UserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []tax.Entry
	for rows.Next() {
		var r rawTaxEntry
		if err := rows.Scan(&r.ID, &r.UserID, &r.TaxYear, &r.Category, &r.Amount, &r.Description, &r.DateAdded); err != nil {
			return nil, err
		}
		e, err := r.toTaxEntry()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (p *Postgres) DeleteTaxEntry(ctx context.Context, s session.Session, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return tax.ErrEntryNotFound
	}
	res, err := p.db.ExecContext(ctx, `DELETE FROM tax_entries WHERE user_id = $1 AND id = $2`, s.UserID, id)
	if err != nil {
		return err
	}
	return expectOne(res, tax.ErrEntryNotFound)
}

func (p *Postgres) CreateExpense(ctx context.Context, s session.Session, e *expense.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.ID = uuid.NewString()
	e.UserID = s.UserID
	if e.Date.IsZero() {
		e.Date = time.Now().UTC()
	}
	_, err := p.db.ExecContext(ctx, `INSERT INTO expenses
		(id, user_id, description, category, amount, expense_date, receipt_ref)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.UserID, nullString(e.Description), e.Category, e.Amount.StringFixed(2), e.Date, nullString(e.ReceiptRef))
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (p *Postgres) GetExpense(ctx context.Context, s session.Session, id string) (*expense.Expense, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, expense.ErrExpenseNotFound
	}
	var r rawExpense
	err := p.db.QueryRowContext(ctx, `SELECT id, user_id, description, category, amount, expense_date, receipt_ref
		FROM expenses WHERE user_id = $1 AND id = $2`, s.UserID, id).
		Scan(&r.ID, &r.UserID, &r.Description, &r.Category, &r.Amount, &r.Date, &r.ReceiptRef)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, expense.ErrExpenseNotFound
	}
	if err != nil {
		return nil, err
	}
	e, err := r.toExpense()
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (p *Postgres) ListExpenses(ctx context.Context, s session.Session) ([]expense.Expense, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT id, user_id, description, category, amount, expense_date, receipt_ref
		FROM expenses WHERE user_id = $1 ORDER BY expense_date, created_at`, s.UserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []expense.Expense
	for rows.Next() {
		var r rawExpense
		if err := rows.Scan(&r.ID, &r.UserID, &r.Description, &r.Category, &r.Amount, &r.Date, &r.ReceiptRef); err != nil {
			return nil, err
		}
		e, err := r.toExpense()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (p *Postgres) SetExpenseReceipt(ctx context.Context, s session.Session, id, ref string) error {
	if _, err := uuid.Parse(id); err != nil {
		return expense.ErrExpenseNotFound
	}
	res, err := p.db.ExecContext(ctx, `UPDATE expenses SET receipt_ref = $1 WHERE user_id = $2 AND id = $3`,
		ref, s.UserID, id)
	if err != nil {
		return err
	}
	return expectOne(res, expense.ErrExpenseNotFound)
}

func (p *Postgres) GetProfile(ctx context.Context, s session.Session) (*profile.CompanyProfile, error) {
	var r rawProfile
	err := p.db.QueryRowContext(ctx, `SELECT user_id, company_name, logo_ref, address, email, phone, tax_id, business_type
		FROM business_profiles WHERE user_id = $1`, s.UserID).
		Scan(&r.UserID, &r.CompanyName, &r.LogoRef, &r.Address, &r.Email, &r.Phone, &r.TaxID, &r.BusinessType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, profile.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.toProfile(), nil
}

func (p *Postgres) SaveProfile(ctx context.Context, s session.Session, prof *profile.CompanyProfile) error {
	prof.UserID = s.UserID
	_, err := p.db.ExecContext(ctx, `INSERT INTO business_profiles
		(user_id, company_name, logo_ref, address, email, phone, tax_id, business_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			logo_ref = EXCLUDED.logo_ref,
			address = EXCLUDED.address,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			tax_id = EXCLUDED.tax_id,
			business_type = EXCLUDED.business_type`,
		prof.UserID, nullString(prof.CompanyName), nullString(prof.LogoRef), nullString(prof.Address),
		nullString(prof.Email), nullString(prof.Phone), nullString(prof.TaxID), nullString(prof.BusinessType))
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func expectOne(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
