// pkg/document/builder.go

package document

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/bizbooks-service/pkg/aggregate"
	"github.com/bizbooks-service/pkg/expense"
	"github.com/bizbooks-service/pkg/invoice"
	"github.com/bizbooks-service/pkg/profile"
	"github.com/bizbooks-service/pkg/tax"
)

var ErrNoRecordsToExport = errors.New("no records to export")

// Options carries per-call formatting context. Nothing is read from ambient state.
type Options struct {
	Locale string
	// Now stamps report generation dates; zero means time.Now().
	Now time.Time
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

var (
	invoiceColumns = []Column{
		{Title: "Description", Align: AlignLeft, Weight: 0.46},
		{Title: "Quantity", Align: AlignRight, Weight: 0.14},
		{Title: "Unit Price", Align: AlignRight, Weight: 0.20},
		{Title: "Amount", Align: AlignRight, Weight: 0.20},
	}
	entryColumns = []Column{
		{Title: "Date", Align: AlignLeft, Weight: 0.18},
		{Title: "Category", Align: AlignLeft, Weight: 0.26},
		{Title: "Description", Align: AlignLeft, Weight: 0.36},
		{Title: "Amount", Align: AlignRight, Weight: 0.20},
	}
	summaryColumns = []Column{
		{Title: "Label", Align: AlignLeft, Weight: 0.7},
		{Title: "Amount", Align: AlignRight, Weight: 0.3},
	}
)

// BuildHeader turns a company profile into header blocks: logo, name,
// address, email, phone, tax id. A nil profile yields no header at all.
func BuildHeader(p *profile.CompanyProfile) []Block {
	if p == nil {
		return nil
	}
	var blocks []Block
	if p.LogoRef != "" {
		blocks = append(blocks, &ImageBlock{Ref: p.LogoRef})
	}
	blocks = append(blocks, TextBlock{Text: p.DisplayName(), Style: StyleHeading})
	for _, line := range []string{p.Address, p.Email, p.Phone} {
		if strings.TrimSpace(line) != "" {
			blocks = append(blocks, TextBlock{Text: line})
		}
	}
	if taxID := strings.TrimSpace(p.TaxID); taxID != "" {
		blocks = append(blocks, TextBlock{Text: "Tax ID: " + taxID})
	}
	return blocks
}

func BuildInvoiceTable(items []invoice.LineItem) TableBlock {
	t := TableBlock{Columns: invoiceColumns}
	for _, it := range items {
		t.Rows = append(t.Rows, []string{
			it.Description,
			formatQuantity(it.Quantity),
			formatMoney(it.UnitPrice),
			formatMoney(it.Amount),
		})
	}
	return t
}

func BuildTaxTable(entries []tax.Entry, opts Options) TableBlock {
	t := TableBlock{Columns: entryColumns}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{
			FormatDate(e.DateAdded, opts.Locale),
			string(e.Category),
			e.Description,
			formatMoney(e.Amount),
		})
	}
	return t
}

func BuildExpenseTable(expenses []expense.Expense, opts Options) TableBlock {
	t := TableBlock{Columns: entryColumns}
	for _, e := range expenses {
		t.Rows = append(t.Rows, []string{
			FormatDate(e.Date, opts.Locale),
			e.Category,
			e.Description,
			formatMoney(e.Amount),
		})
	}
	return t
}

// BuildSummary lays out grouped totals in aggregator order. The last row is
// always the grand total.
func BuildSummary(totals aggregate.Totals) TableBlock {
	t := TableBlock{Columns: summaryColumns}
	for _, r := range totals {
		t.Rows = append(t.Rows, []string{r.Label, formatMoney(r.Amount)})
	}
	if len(totals) == 0 || totals[len(totals)-1].Label != aggregate.GrandTotalLabel {
		t.Rows = append(t.Rows, []string{aggregate.GrandTotalLabel, formatMoney(totals.GrandTotal())})
	}
	return t
}

// BuildInvoice assembles header, title and metadata, line table, total and notes.
func BuildInvoice(inv *invoice.Invoice, p *profile.CompanyProfile, opts Options) (*Document, error) {
	if inv == nil || inv.IsEmpty() {
		return nil, ErrNoRecordsToExport
	}
	doc := &Document{
		Title:    "Invoice " + inv.InvoiceNumber,
		FileName: inv.FileName(),
	}
	doc.Blocks = append(doc.Blocks, BuildHeader(p)...)
	doc.Blocks = append(doc.Blocks,
		TextBlock{Text: "INVOICE", Style: StyleTitle},
		KeyValueBlock{Pairs: []KeyValue{
			{Key: "Invoice Number", Value: inv.InvoiceNumber},
			{Key: "Bill To", Value: inv.ClientName},
			{Key: "Issue Date", Value: FormatDate(inv.IssueDate, opts.Locale)},
			{Key: "Due Date", Value: FormatDate(inv.DueDate, opts.Locale)},
			{Key: "Status", Value: strings.ToUpper(string(inv.Status))},
		}},
		BuildInvoiceTable(inv.Items),
		TotalBlock{Label: "Total", Amount: formatMoney(inv.TotalAmount)},
	)
	if strings.TrimSpace(inv.Notes) != "" {
		doc.Blocks = append(doc.Blocks, NotesBlock{Text: inv.Notes})
	}
	return doc, nil
}

// BuildTaxReport lists entries for year (0 for all years) followed by
// category summaries per year, most recent year first. Reports covering
// several years end with a per-year summary.
func BuildTaxReport(entries []tax.Entry, year int, p *profile.CompanyProfile, opts Options) (*Document, error) {
	entries = tax.FilterYear(entries, year)
	if len(entries) == 0 {
		return nil, ErrNoRecordsToExport
	}
	summary := tax.Summarize(entries)

	title := "Tax Report"
	yearLabel := "All Years"
	if year != 0 {
		title += " " + strconv.Itoa(year)
		yearLabel = strconv.Itoa(year)
	}
	doc := &Document{
		Title:    title,
		FileName: tax.ReportFileName(year),
	}
	doc.Blocks = append(doc.Blocks, BuildHeader(p)...)
	doc.Blocks = append(doc.Blocks,
		TextBlock{Text: title, Style: StyleTitle},
		KeyValueBlock{Pairs: []KeyValue{
			{Key: "Tax Year", Value: yearLabel},
			{Key: "Generated", Value: FormatDate(opts.now(), opts.Locale)},
			{Key: "Entries", Value: strconv.Itoa(len(entries))},
		}},
	)

	ordered := make([]tax.Entry, 0, len(entries))
	for _, yg := range summary.Years {
		ordered = append(ordered, yg.Entries...)
	}
	doc.Blocks = append(doc.Blocks, BuildTaxTable(ordered, opts))

	for _, yg := range summary.Years {
		doc.Blocks = append(doc.Blocks,
			TextBlock{Text: "Tax Year " + strconv.Itoa(yg.Year), Style: StyleBold},
			BuildSummary(yg.Categories),
		)
	}
	if len(summary.Years) > 1 {
		doc.Blocks = append(doc.Blocks,
			TextBlock{Text: "Totals by Year", Style: StyleBold},
			BuildSummary(summary.YearTotals),
		)
	}
	return doc, nil
}

// BuildExpenseReport lists expenses and their category totals.
func BuildExpenseReport(expenses []expense.Expense, p *profile.CompanyProfile, opts Options) (*Document, error) {
	if len(expenses) == 0 {
		return nil, ErrNoRecordsToExport
	}
	doc := &Document{
		Title:    "Expense Report",
		FileName: "Expense-Report",
	}
	doc.Blocks = append(doc.Blocks, BuildHeader(p)...)
	doc.Blocks = append(doc.Blocks,
		TextBlock{Text: doc.Title, Style: StyleTitle},
		KeyValueBlock{Pairs: []KeyValue{
			{Key: "Generated", Value: FormatDate(opts.now(), opts.Locale)},
			{Key: "Expenses", Value: strconv.Itoa(len(expenses))},
		}},
		BuildExpenseTable(expenses, opts),
		BuildSummary(expense.CategoryTotals(expenses)),
	)
	return doc, nil
}
