package document_test

import (
	"testing"
	"time"

	"github.com/bizbooks-service/pkg/aggregate"
	"github.com/bizbooks-service/pkg/document"
	"github.com/bizbooks-service/pkg/expense"
	"github.com/bizbooks-service/pkg/invoice"
	"github.com/bizbooks-service/pkg/profile"
	"github.com/bizbooks-service/pkg/tax"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleInvoice(t *testing.T) *invoice.Invoice {
	t.Helper()
	inv := &invoice.Invoice{
		ClientName:    "Acme Ltd",
		InvoiceNumber: "INV-7",
		IssueDate:     time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		Status:        invoice.StatusSent,
		Items: []invoice.LineItem{
			{Description: "A", Quantity: dec("1"), UnitPrice: dec("50")},
			{Description: "B", Quantity: dec("3"), UnitPrice: dec("9.99")},
		},
	}
	require.NoError(t, inv.Recalculate())
	return inv
}

func kinds(blocks []document.Block) []document.Kind {
	out := make([]document.Kind, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, b.Kind())
	}
	return out
}

func TestBuildHeader_NilProfile(t *testing.T) {
	assert.Empty(t, document.BuildHeader(nil))
}

func TestBuildHeader_FixedOrderSkipsAbsent(t *testing.T) {
	p := &profile.CompanyProfile{
		CompanyName: "Bright Books",
		LogoRef:     "u1/logos/logo.png",
		Email:       "hi@bright.test",
		TaxID:       "12-345",
	}
	blocks := document.BuildHeader(p)
	require.Len(t, blocks, 4)
	assert.Equal(t, "u1/logos/logo.png", blocks[0].(*document.ImageBlock).Ref)
	assert.Equal(t, "Bright Books", blocks[1].(document.TextBlock).Text)
	assert.Equal(t, "hi@bright.test", blocks[2].(document.TextBlock).Text)
	assert.Equal(t, "Tax ID: 12-345", blocks[3].(document.TextBlock).Text)
}

func TestBuildHeader_SkipsBlankFields(t *testing.T) {
	p := &profile.CompanyProfile{
		CompanyName: "Bright Books",
		Address:     "  ",
		Phone:       "\t",
		TaxID:       "   ",
	}
	blocks := document.BuildHeader(p)
	require.Len(t, blocks, 1)
	assert.Equal(t, "Bright Books", blocks[0].(document.TextBlock).Text)
}

func TestBuildHeader_DefaultName(t *testing.T) {
	blocks := document.BuildHeader(&profile.CompanyProfile{})
	require.Len(t, blocks, 1)
	assert.Equal(t, profile.DefaultCompanyName, blocks[0].(document.TextBlock).Text)
}

func TestBuildInvoiceTable(t *testing.T) {
	inv := sampleInvoice(t)
	table := document.BuildInvoiceTable(inv.Items)

	titles := []string{}
	for _, c := range table.Columns {
		titles = append(titles, c.Title)
	}
	assert.Equal(t, []string{"Description", "Quantity", "Unit Price", "Amount"}, titles)
	assert.Equal(t, document.AlignLeft, table.Columns[0].Align)
	assert.Equal(t, document.AlignRight, table.Columns[1].Align)
	assert.Equal(t, document.AlignRight, table.Columns[3].Align)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"B", "3", "$9.99", "$29.97"}, table.Rows[1])
}

func TestBuildInvoice_BlockOrder(t *testing.T) {
	inv := sampleInvoice(t)
	inv.Notes = "Thanks for your business"
	p := &profile.CompanyProfile{CompanyName: "Bright Books"}

	doc, err := document.BuildInvoice(inv, p, document.Options{Locale: "en-US"})
	require.NoError(t, err)
	assert.Equal(t, "Invoice_INV-7", doc.FileName)
	assert.Equal(t, []document.Kind{
		document.KindText,
		document.KindText,
		document.KindKeyValue,
		document.KindTable,
		document.KindTotal,
		document.KindNotes,
	}, kinds(doc.Blocks))

	meta := doc.Blocks[2].(document.KeyValueBlock)
	assert.Contains(t, meta.Pairs, document.KeyValue{Key: "Issue Date", Value: "2/3/2024"})
	total := doc.Blocks[4].(document.TotalBlock)
	assert.Equal(t, "$79.97", total.Amount)
}

func TestBuildInvoice_NoNotesNoHeader(t *testing.T) {
	doc, err := document.BuildInvoice(sampleInvoice(t), nil, document.Options{})
	require.NoError(t, err)
	assert.Equal(t, []document.Kind{
		document.KindText,
		document.KindKeyValue,
		document.KindTable,
		document.KindTotal,
	}, kinds(doc.Blocks))
}

func TestBuildInvoice_Empty(t *testing.T) {
	inv := sampleInvoice(t)
	inv.Items = nil
	doc, err := document.BuildInvoice(inv, nil, document.Options{})
	assert.ErrorIs(t, err, document.ErrNoRecordsToExport)
	assert.Nil(t, doc)
}

func taxEntry(year int, cat tax.Category, amount string, day int) tax.Entry {
	return tax.Entry{
		TaxYear:     year,
		Category:    cat,
		Amount:      dec(amount),
		Description: string(cat),
		DateAdded:   time.Date(year, 1, day, 0, 0, 0, 0, time.UTC),
	}
}

func TestBuildTaxReport_AllYears(t *testing.T) {
	entries := []tax.Entry{
		taxEntry(2021, tax.CategoryRent, "100", 1),
		taxEntry(2023, tax.CategoryTravel, "10", 2),
		taxEntry(2023, tax.CategoryMealsEntertainment, "5", 3),
		taxEntry(2022, tax.CategoryUtilities, "20", 4),
		taxEntry(2023, tax.CategoryTravel, "1", 5),
	}
	now := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)
	doc, err := document.BuildTaxReport(entries, 0, nil, document.Options{Locale: "en-GB", Now: now})
	require.NoError(t, err)
	assert.Equal(t, "Tax-Report", doc.FileName)

	table := doc.Blocks[2].(document.TableBlock)
	require.Len(t, table.Rows, 5)
	assert.Equal(t, "Date", table.Columns[0].Title)
	assert.Equal(t, "02/01/2023", table.Rows[0][0])
	assert.Equal(t, "Meals & Entertainment", table.Rows[1][1])
	assert.Equal(t, "Rent", table.Rows[4][1])

	yearHeading := doc.Blocks[3].(document.TextBlock)
	assert.Equal(t, "Tax Year 2023", yearHeading.Text)
	cat2023 := doc.Blocks[4].(document.TableBlock)
	assert.Equal(t, []string{"Travel", "$11.00"}, cat2023.Rows[0])
	assert.Equal(t, []string{"Meals & Entertainment", "$5.00"}, cat2023.Rows[1])
	assert.Equal(t, []string{aggregate.GrandTotalLabel, "$16.00"}, cat2023.Rows[2])

	last := doc.Blocks[len(doc.Blocks)-1].(document.TableBlock)
	assert.Equal(t, []string{"2023", "2022", "2021", aggregate.GrandTotalLabel},
		[]string{last.Rows[0][0], last.Rows[1][0], last.Rows[2][0], last.Rows[3][0]})
	assert.Equal(t, "$136.00", last.Rows[3][1])
}

func TestBuildTaxReport_SingleYear(t *testing.T) {
	entries := []tax.Entry{
		taxEntry(2021, tax.CategoryRent, "100", 1),
		taxEntry(2023, tax.CategoryTravel, "10", 2),
	}
	doc, err := document.BuildTaxReport(entries, 2023, &profile.CompanyProfile{CompanyName: "X"}, document.Options{})
	require.NoError(t, err)
	assert.Equal(t, "Tax-Report-2023", doc.FileName)
	assert.Equal(t, "Tax Report 2023", doc.Title)

	last := doc.Blocks[len(doc.Blocks)-1].(document.TableBlock)
	require.Len(t, last.Rows, 2)
	assert.Equal(t, aggregate.GrandTotalLabel, last.Rows[1][0])
}

func TestBuildTaxReport_NoEntries(t *testing.T) {
	_, err := document.BuildTaxReport(nil, 0, nil, document.Options{})
	assert.ErrorIs(t, err, document.ErrNoRecordsToExport)

	entries := []tax.Entry{taxEntry(2021, tax.CategoryRent, "100", 1)}
	_, err = document.BuildTaxReport(entries, 2024, nil, document.Options{})
	assert.ErrorIs(t, err, document.ErrNoRecordsToExport)
}

func TestBuildSummary_AlwaysEndsWithGrandTotal(t *testing.T) {
	table := document.BuildSummary(nil)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{aggregate.GrandTotalLabel, "$0.00"}, table.Rows[0])
}

func TestBuildExpenseReport(t *testing.T) {
	expenses := []expense.Expense{
		{Description: "Taxi", Category: "Travel", Amount: dec("18.5"), Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{Description: "Paper", Category: "Office", Amount: dec("4"), Date: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)},
	}
	doc, err := document.BuildExpenseReport(expenses, nil, document.Options{})
	require.NoError(t, err)
	summary := doc.Blocks[len(doc.Blocks)-1].(document.TableBlock)
	assert.Equal(t, []string{aggregate.GrandTotalLabel, "$22.50"}, summary.Rows[2])

	_, err = document.BuildExpenseReport(nil, nil, document.Options{})
	assert.ErrorIs(t, err, document.ErrNoRecordsToExport)
}

func TestDocumentImages(t *testing.T) {
	doc, err := document.BuildInvoice(sampleInvoice(t), &profile.CompanyProfile{LogoRef: "logo.png"}, document.Options{})
	require.NoError(t, err)
	imgs := doc.Images()
	require.Len(t, imgs, 1)
	imgs[0].Data = []byte("png")
	assert.Equal(t, []byte("png"), doc.Blocks[0].(*document.ImageBlock).Data)
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 7, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "7/9/2024", document.FormatDate(d, "en-US"))
	assert.Equal(t, "09/07/2024", document.FormatDate(d, "en-GB"))
	assert.Equal(t, "9.7.2024", document.FormatDate(d, "de-DE"))
	assert.Equal(t, "7/9/2024", document.FormatDate(d, "xx-YY"))
	assert.Equal(t, "7/9/2024", document.FormatDate(d, ""))
	assert.Equal(t, "7/9/2024", document.FormatDate(d, "en"))
}

func TestFormatDate_NormalisesTags(t *testing.T) {
	d := time.Date(2024, 7, 9, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		locale string
		want   string
	}{
		{"en-gb", "09/07/2024"},
		{"en_GB", "09/07/2024"},
		{"EN-GB", "09/07/2024"},
		{"de-AT", "9.7.2024"},
		{"de", "9.7.2024"},
		{"fr-CA", "09/07/2024"},
		{"ja_jp", "2024/07/09"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, document.FormatDate(d, tt.locale), tt.locale)
	}
	// en-NZ resolves to a Commonwealth English layout, never the US one.
	assert.NotEqual(t, "7/9/2024", document.FormatDate(d, "en-NZ"))
	assert.Equal(t, "", document.FormatDate(time.Time{}, "en-US"))
}
