package api_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bizbooks-service/pkg/api"
	"github.com/bizbooks-service/pkg/export"
	"github.com/bizbooks-service/pkg/invoice"
	"github.com/bizbooks-service/pkg/logging"
	"github.com/bizbooks-service/pkg/render"
	"github.com/bizbooks-service/pkg/storage"
	"github.com/bizbooks-service/pkg/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t          *testing.T
	srv        *httptest.Server
	objectsDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	dir := t.TempDir()
	objects, err := storage.NewLocalStore(dir)
	require.NoError(t, err)
	logger := logging.New(io.Discard, "error")
	repo := store.NewMemory()
	svc := export.NewService(repo, objects, render.A4Width, logger)
	h := api.NewHandler(repo, svc, objects, logger, "en-US")
	srv := httptest.NewServer(api.NewRouter(h))
	t.Cleanup(srv.Close)
	return &testServer{t: t, srv: srv, objectsDir: dir}
}

func (s *testServer) do(method, path, user string, body io.Reader, contentType string) *http.Response {
	s.t.Helper()
	req, err := http.NewRequest(method, s.srv.URL+path, body)
	require.NoError(s.t, err)
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(s.t, err)
	s.t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (s *testServer) json(method, path, user string, v any) *http.Response {
	s.t.Helper()
	var body io.Reader
	if v != nil {
		b, err := json.Marshal(v)
		require.NoError(s.t, err)
		body = bytes.NewReader(b)
	}
	return s.do(method, path, user, body, "application/json")
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

type errorResponse struct {
	Error       string            `json:"error"`
	Fields      map[string]string `json:"fields"`
	Dismissible bool              `json:"dismissible"`
}

func sampleInvoice(number string) map[string]any {
	return map[string]any{
		"client_name":    "Acme Corp",
		"invoice_number": number,
		"issue_date":     "2024-03-01",
		"due_date":       "2024-03-31",
		"items": []map[string]any{
			{"description": "Consulting", "quantity": "3", "unit_price": "19.999"},
			{"description": "Support", "quantity": 1, "unit_price": 40},
		},
	}
}

type invoiceBody struct {
	invoice.Invoice
	Warnings []string `json:"warnings"`
}

func TestHealthNeedsNoUser(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(http.MethodGet, "/health", "", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestMissingUserIsUnauthorized(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(http.MethodGet, "/invoices", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateInvoiceComputesTotals(t *testing.T) {
	s := newTestServer(t)
	resp := s.json(http.MethodPost, "/invoices", "u1", sampleInvoice("INV-001"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	got := decode[invoiceBody](t, resp)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, invoice.StatusDraft, got.Status)
	require.Len(t, got.Items, 2)
	assert.True(t, decimal.RequireFromString("60").Equal(got.Items[0].Amount), got.Items[0].Amount.String())
	assert.True(t, decimal.RequireFromString("100").Equal(got.TotalAmount), got.TotalAmount.String())
	assert.Empty(t, got.Warnings)
}

func TestCreateInvoiceWithoutItemsWarns(t *testing.T) {
	s := newTestServer(t)
	body := sampleInvoice("INV-002")
	delete(body, "items")
	resp := s.json(http.MethodPost, "/invoices", "u1", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	got := decode[invoiceBody](t, resp)
	assert.True(t, got.TotalAmount.IsZero())
	assert.Equal(t, []string{"invoice has no line items"}, got.Warnings)
}

func TestCreateInvoiceRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]any)
		field  string
	}{
		{"missing client", func(b map[string]any) { delete(b, "client_name") }, "ClientName"},
		{"bad date", func(b map[string]any) { b["issue_date"] = "03/01/2024" }, "IssueDate"},
		{"unknown status", func(b map[string]any) { b["status"] = "void" }, "Status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			body := sampleInvoice("INV-1")
			tt.mutate(body)
			resp := s.json(http.MethodPost, "/invoices", "u1", body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			got := decode[errorResponse](t, resp)
			assert.Contains(t, got.Fields, tt.field)
		})
	}
}

func TestCreateInvoiceRejectsNegativeQuantity(t *testing.T) {
	s := newTestServer(t)
	body := sampleInvoice("INV-1")
	body["items"] = []map[string]any{{"description": "Refund", "quantity": -1, "unit_price": 10}}
	resp := s.json(http.MethodPost, "/invoices", "u1", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDuplicateInvoiceNumberConflicts(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.json(http.MethodPost, "/invoices", "u1", sampleInvoice("INV-1")).StatusCode)
	assert.Equal(t, http.StatusConflict, s.json(http.MethodPost, "/invoices", "u1", sampleInvoice("INV-1")).StatusCode)
	// Numbers are unique per user only.
	assert.Equal(t, http.StatusCreated, s.json(http.MethodPost, "/invoices", "u2", sampleInvoice("INV-1")).StatusCode)
}

func TestInvoicesAreScopedToUser(t *testing.T) {
	s := newTestServer(t)
	created := decode[invoiceBody](t, s.json(http.MethodPost, "/invoices", "u1", sampleInvoice("INV-1")))

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/invoices/"+created.ID, "u1", nil, "").StatusCode)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/invoices/"+created.ID, "u2", nil, "").StatusCode)

	list := decode[[]invoice.Invoice](t, s.do(http.MethodGet, "/invoices", "u2", nil, ""))
	assert.Empty(t, list)
}

func TestUpdateInvoiceStatusAnyOrder(t *testing.T) {
	s := newTestServer(t)
	created := decode[invoiceBody](t, s.json(http.MethodPost, "/invoices", "u1", sampleInvoice("INV-1")))
	path := "/invoices/" + created.ID + "/status"

	for _, status := range []string{"paid", "draft", "overdue", "sent"} {
		resp := s.json(http.MethodPatch, path, "u1", map[string]string{"status": status})
		require.Equal(t, http.StatusNoContent, resp.StatusCode, status)
	}
	got := decode[invoice.Invoice](t, s.do(http.MethodGet, "/invoices/"+created.ID, "u1", nil, ""))
	assert.Equal(t, invoice.StatusSent, got.Status)

	assert.Equal(t, http.StatusBadRequest, s.json(http.MethodPatch, path, "u1", map[string]string{"status": "void"}).StatusCode)
	assert.Equal(t, http.StatusNotFound, s.json(http.MethodPatch, "/invoices/nope/status", "u1", map[string]string{"status": "paid"}).StatusCode)
}

func TestExportInvoice(t *testing.T) {
	s := newTestServer(t)
	created := decode[invoiceBody](t, s.json(http.MethodPost, "/invoices", "u1", sampleInvoice("INV-7")))

	resp := s.do(http.MethodGet, "/invoices/"+created.ID+"/export", "u1", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="Invoice_INV-7.pdf"`)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	resp = s.do(http.MethodGet, "/invoices/"+created.ID+"/export?format=xlsx&archive=true", "u1", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `Invoice_INV-7.xlsx`)
	assert.Equal(t, "u1/documents/Invoice_INV-7.xlsx", resp.Header.Get("X-Archive-Key"))

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/invoices/"+created.ID+"/export?format=docx", "u1", nil, "").StatusCode)
}

func TestTaxEntriesAndSummary(t *testing.T) {
	s := newTestServer(t)
	for _, e := range []map[string]any{
		{"tax_year": 2023, "category": "Travel", "amount": "100.00"},
		{"tax_year": 2024, "category": "Rent", "amount": "1200"},
		{"tax_year": 2024, "category": "Travel", "amount": "50.25"},
		{"tax_year": 2024, "category": "Rent", "amount": "300"},
	} {
		require.Equal(t, http.StatusCreated, s.json(http.MethodPost, "/tax-entries", "u1", e).StatusCode)
	}

	type summary struct {
		Years []struct {
			Year       int `json:"year"`
			Categories []struct {
				Category string          `json:"category"`
				Total    decimal.Decimal `json:"total"`
			} `json:"categories"`
			Total decimal.Decimal `json:"total"`
		} `json:"years"`
		GrandTotal decimal.Decimal `json:"grand_total"`
	}
	got := decode[summary](t, s.do(http.MethodGet, "/tax-entries/summary", "u1", nil, ""))
	require.Len(t, got.Years, 2)
	assert.Equal(t, 2024, got.Years[0].Year)
	assert.Equal(t, 2023, got.Years[1].Year)
	require.Len(t, got.Years[0].Categories, 2)
	assert.Equal(t, "Rent", got.Years[0].Categories[0].Category)
	assert.True(t, decimal.RequireFromString("1500").Equal(got.Years[0].Categories[0].Total))
	assert.True(t, decimal.RequireFromString("1650.25").Equal(got.GrandTotal), got.GrandTotal.String())

	list := decode[[]map[string]any](t, s.do(http.MethodGet, "/tax-entries?year=2023", "u1", nil, ""))
	assert.Len(t, list, 1)
}

func TestCreateTaxEntryValidation(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name string
		body map[string]any
	}{
		{"year too early", map[string]any{"tax_year": 1999, "category": "Rent", "amount": "10"}},
		{"unknown category", map[string]any{"tax_year": 2024, "category": "Gifts", "amount": "10"}},
		{"amount too small", map[string]any{"tax_year": 2024, "category": "Rent", "amount": "0.001"}},
		{"negative amount", map[string]any{"tax_year": 2024, "category": "Rent", "amount": "-5"}},
		{"sub-cent amount", map[string]any{"tax_year": 2024, "category": "Rent", "amount": "1.005"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, s.json(http.MethodPost, "/tax-entries", "u1", tt.body).StatusCode)
		})
	}
}

func TestDeleteTaxEntry(t *testing.T) {
	s := newTestServer(t)
	created := decode[map[string]any](t, s.json(http.MethodPost, "/tax-entries", "u1",
		map[string]any{"tax_year": 2024, "category": "Other", "amount": "5"}))
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/tax-entries/"+id, "u2", nil, "").StatusCode)
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/tax-entries/"+id, "u1", nil, "").StatusCode)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/tax-entries/"+id, "u1", nil, "").StatusCode)
}

func TestExportTaxReport(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(http.MethodGet, "/tax-reports/export", "u1", nil, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	got := decode[errorResponse](t, resp)
	assert.True(t, got.Dismissible)

	require.Equal(t, http.StatusCreated, s.json(http.MethodPost, "/tax-entries", "u1",
		map[string]any{"tax_year": 2024, "category": "Utilities", "amount": "80"}).StatusCode)

	resp = s.do(http.MethodGet, "/tax-reports/export?year=2024", "u1", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="Tax-Report-2024.pdf"`)

	resp = s.do(http.MethodGet, "/tax-reports/export?format=xlsx", "u1", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="Tax-Report.xlsx"`)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/tax-reports/export?year=2023", "u1", nil, "").StatusCode)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/tax-reports/export?year=abc", "u1", nil, "").StatusCode)
}

func TestExpensesFilterAndSummary(t *testing.T) {
	s := newTestServer(t)
	for _, e := range []map[string]any{
		{"description": "Train ticket", "category": "Travel", "amount": "45.50", "date": "2024-02-01"},
		{"description": "Printer paper", "category": "Office", "amount": "12", "date": "2024-02-15"},
		{"description": "Hotel", "category": "Travel", "amount": "200", "date": "2024-03-10"},
	} {
		require.Equal(t, http.StatusCreated, s.json(http.MethodPost, "/expenses", "u1", e).StatusCode)
	}

	list := decode[[]map[string]any](t, s.do(http.MethodGet, "/expenses?category=travel&to=2024-02-28", "u1", nil, ""))
	require.Len(t, list, 1)
	assert.Equal(t, "Train ticket", list[0]["description"])

	type row struct {
		Label  string          `json:"label"`
		Amount decimal.Decimal `json:"amount"`
	}
	rows := decode[[]row](t, s.do(http.MethodGet, "/expenses/summary", "u1", nil, ""))
	require.Len(t, rows, 3)
	assert.Equal(t, "Travel", rows[0].Label)
	assert.True(t, decimal.RequireFromString("245.5").Equal(rows[0].Amount))
	assert.Equal(t, "GRAND TOTAL", rows[2].Label)
	assert.True(t, decimal.RequireFromString("257.5").Equal(rows[2].Amount))

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/expenses?from=yesterday", "u1", nil, "").StatusCode)
	assert.Equal(t, http.StatusBadRequest, s.json(http.MethodPost, "/expenses", "u1",
		map[string]any{"description": "No category", "amount": "1"}).StatusCode)
	assert.Equal(t, http.StatusBadRequest, s.json(http.MethodPost, "/expenses", "u1",
		map[string]any{"description": "Stamp", "category": "Office", "amount": "1.005"}).StatusCode)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for x := 0; x < 8; x++ {
		img.Set(x, 1, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartBody(t *testing.T, field, name string, data []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestProfileAndLogoUpload(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/profile", "u1", nil, "").StatusCode)

	resp := s.json(http.MethodPut, "/profile", "u1", map[string]string{"company_name": "Widgets Ltd", "email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "email", decode[errorResponse](t, resp).Fields["Email"])

	resp = s.json(http.MethodPut, "/profile", "u1", map[string]string{"company_name": "Widgets Ltd", "email": "hi@widgets.test"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, ct := multipartBody(t, "logo", "logo.png", pngBytes(t))
	resp = s.do(http.MethodPost, "/profile/logo", "u1", body, ct)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	p := decode[map[string]any](t, resp)
	assert.Equal(t, "Widgets Ltd", p["company_name"])
	ref, _ := p["logo_ref"].(string)
	assert.True(t, strings.HasPrefix(ref, "u1/logos/"), ref)

	body, ct = multipartBody(t, "logo", "logo.txt", []byte("plain text"))
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/profile/logo", "u1", body, ct).StatusCode)

	created := decode[invoiceBody](t, s.json(http.MethodPost, "/invoices", "u1", sampleInvoice("INV-9")))
	resp = s.do(http.MethodGet, "/invoices/"+created.ID+"/export", "u1", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUploadReceipt(t *testing.T) {
	s := newTestServer(t)
	created := decode[map[string]any](t, s.json(http.MethodPost, "/expenses", "u1",
		map[string]any{"description": "Lunch", "category": "Meals", "amount": "18"}))
	id, _ := created["id"].(string)

	body, ct := multipartBody(t, "receipt", "receipt..v2.png", pngBytes(t))
	resp := s.do(http.MethodPost, "/expenses/"+id+"/receipt", "u1", body, ct)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ref := decode[map[string]string](t, resp)["receipt_ref"]
	assert.True(t, strings.HasPrefix(ref, "u1/receipts/"), ref)
	assert.True(t, strings.HasSuffix(ref, "receipt..v2.png"), ref)

}

func TestUploadReceiptForUnknownExpenseStoresNothing(t *testing.T) {
	s := newTestServer(t)
	created := decode[map[string]any](t, s.json(http.MethodPost, "/expenses", "u1",
		map[string]any{"description": "Lunch", "category": "Meals", "amount": "18"}))
	id, _ := created["id"].(string)

	body, ct := multipartBody(t, "receipt", "r.png", pngBytes(t))
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/expenses/does-not-exist/receipt", "u1", body, ct).StatusCode)

	// Another user's expense id is not found either.
	body, ct = multipartBody(t, "receipt", "r.png", pngBytes(t))
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/expenses/"+id+"/receipt", "u2", body, ct).StatusCode)

	for _, user := range []string{"u1", "u2"} {
		_, err := os.Stat(filepath.Join(s.objectsDir, user, storage.KindReceipts))
		assert.True(t, os.IsNotExist(err), "no receipts stored for %s", user)
	}
}
