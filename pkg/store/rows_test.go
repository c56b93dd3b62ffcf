package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/bizbooks-service/pkg/invoice"
	"github.com/bizbooks-service/pkg/tax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawInvoice_ToInvoiceRecomputes(t *testing.T) {
	raw := rawInvoice{
		ID:            "i1",
		UserID:        "u1",
		ClientName:    "Acme",
		InvoiceNumber: "INV-1",
		IssueDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:        "",
		TotalAmount:   "0",
	}
	items := []rawLineItem{
		{Description: "A", Quantity: "1", UnitPrice: "50.0000", Amount: "1.00"},
		{Description: "B", Quantity: "3", UnitPrice: "9.9900", Amount: "29.97"},
	}
	inv, err := raw.toInvoice(items)
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusDraft, inv.Status)
	assert.True(t, inv.DueDate.IsZero())
	assert.Equal(t, "50.00", inv.Items[0].Amount.StringFixed(2))
	assert.Equal(t, "79.97", inv.TotalAmount.StringFixed(2))
}

func TestRawInvoice_BadRows(t *testing.T) {
	raw := rawInvoice{ID: "i1", Status: "archived"}
	_, err := raw.toInvoice(nil)
	assert.Error(t, err)

	raw = rawInvoice{ID: "i1", Status: "paid"}
	_, err = raw.toInvoice([]rawLineItem{{Description: "A", Quantity: "x", UnitPrice: "1"}})
	assert.Error(t, err)

	_, err = raw.toInvoice([]rawLineItem{{Description: "A", Quantity: "-1", UnitPrice: "1"}})
	assert.Error(t, err)
}

func TestRawTaxEntry_ToTaxEntry(t *testing.T) {
	raw := rawTaxEntry{
		ID:          "t1",
		UserID:      "u1",
		TaxYear:     2023,
		Category:    "Travel",
		Amount:      "12.50",
		Description: sql.NullString{String: "Flight", Valid: true},
	}
	e, err := raw.toTaxEntry()
	require.NoError(t, err)
	assert.Equal(t, tax.CategoryTravel, e.Category)
	assert.Equal(t, "Flight", e.Description)
	assert.Equal(t, 2023, e.TaxYear)

	raw.Category = "Snacks"
	_, err = raw.toTaxEntry()
	assert.ErrorIs(t, err, tax.ErrUnknownCategory)
}

func TestRawExpense_ToExpense(t *testing.T) {
	raw := rawExpense{ID: "e1", Category: "Travel", Amount: "3.5"}
	e, err := raw.toExpense()
	require.NoError(t, err)
	assert.Empty(t, e.Description)
	assert.Equal(t, "3.50", e.Amount.StringFixed(2))

	raw.Amount = "n/a"
	_, err = raw.toExpense()
	assert.Error(t, err)
}

func TestRawProfile_TrimsNulls(t *testing.T) {
	p := rawProfile{
		UserID:      "u1",
		CompanyName: sql.NullString{String: " Bright Books ", Valid: true},
	}.toProfile()
	assert.Equal(t, "Bright Books", p.CompanyName)
	assert.Empty(t, p.LogoRef)
}
