// pkg/store/schema.go

package store

const schema = `
CREATE TABLE IF NOT EXISTS invoices (
	id             UUID PRIMARY KEY,
	user_id        TEXT NOT NULL,
	client_name    TEXT NOT NULL,
	invoice_number TEXT NOT NULL,
	issue_date     DATE NOT NULL,
	due_date       DATE,
	status         TEXT NOT NULL DEFAULT 'draft',
	notes          TEXT,
	total_amount   NUMERIC(14,2) NOT NULL DEFAULT 0,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (user_id, invoice_number)
);

CREATE TABLE IF NOT EXISTS invoice_items (
	invoice_id  UUID NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
	position    INT NOT NULL,
	description TEXT NOT NULL,
	quantity    NUMERIC(14,4) NOT NULL CHECK (quantity >= 0),
	unit_price  NUMERIC(14,4) NOT NULL CHECK (unit_price >= 0),
	amount      NUMERIC(14,2) NOT NULL,
	PRIMARY KEY (invoice_id, position)
);

CREATE TABLE IF NOT EXISTS tax_entries (
	id          UUID PRIMARY KEY,
	user_id     TEXT NOT NULL,
	tax_year    INT NOT NULL CHECK (tax_year BETWEEN 2000 AND 2100),
	category    TEXT NOT NULL,
	amount      NUMERIC(14,2) NOT NULL CHECK (amount >= 0.01),
	description TEXT,
	date_added  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS tax_entries_user_idx ON tax_entries (user_id, date_added);

CREATE TABLE IF NOT EXISTS expenses (
	id           UUID PRIMARY KEY,
	user_id      TEXT NOT NULL,
	description  TEXT,
	category     TEXT NOT NULL,
	amount       NUMERIC(14,2) NOT NULL CHECK (amount >= 0),
	expense_date DATE NOT NULL,
	receipt_ref  TEXT,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS expenses_user_idx ON expenses (user_id, expense_date);

CREATE TABLE IF NOT EXISTS business_profiles (
	user_id       TEXT PRIMARY KEY,
	company_name  TEXT,
	logo_ref      TEXT,
	address       TEXT,
	email         TEXT,
	phone         TEXT,
	tax_id        TEXT,
	business_type TEXT
);
`
