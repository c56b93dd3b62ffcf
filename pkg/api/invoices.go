// pkg/api/invoices.go

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bizbooks-service/pkg/invoice"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type lineItemRequest struct {
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type invoiceRequest struct {
	ClientName    string            `json:"client_name" validate:"required"`
	InvoiceNumber string            `json:"invoice_number" validate:"required,max=64"`
	IssueDate     string            `json:"issue_date" validate:"required,datetime=2006-01-02"`
	DueDate       string            `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Status        string            `json:"status" validate:"omitempty,oneof=draft sent paid overdue"`
	Notes         string            `json:"notes"`
	Items         []lineItemRequest `json:"items" validate:"dive"`
}

func (req invoiceRequest) toInvoice() (*invoice.Invoice, error) {
	status, err := invoice.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	inv := &invoice.Invoice{
		ClientName:    req.ClientName,
		InvoiceNumber: req.InvoiceNumber,
		Status:        status,
		Notes:         req.Notes,
		Items:         make([]invoice.LineItem, 0, len(req.Items)),
	}
	// Both dates already passed the datetime validator.
	inv.IssueDate, _ = time.Parse(dateLayout, req.IssueDate)
	if req.DueDate != "" {
		inv.DueDate, _ = time.Parse(dateLayout, req.DueDate)
	}
	for _, it := range req.Items {
		inv.Items = append(inv.Items, invoice.LineItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return inv, nil
}

type invoiceResponse struct {
	*invoice.Invoice
	Warnings []string `json:"warnings,omitempty"`
}

const warnNoItems = "invoice has no line items"

// createInvoice godoc
// @Summary Create an invoice
// @Description Line amounts and the total are computed server-side.
// @Tags invoices
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User id"
// @Param invoice body invoiceRequest true "Invoice"
// @Success 201 {object} invoiceResponse
// @Failure 400 {object} errorBody
// @Failure 409 {object} errorBody
// @Router /invoices [post]
func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	var req invoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, r, "createInvoice", err)
		return
	}
	inv, err := req.toInvoice()
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := h.repo.CreateInvoice(r.Context(), sessionFrom(r), inv); err != nil {
		h.writeError(w, r, "createInvoice", err)
		return
	}
	resp := invoiceResponse{Invoice: inv}
	if inv.IsEmpty() {
		resp.Warnings = append(resp.Warnings, warnNoItems)
	}
	writeJSON(w, http.StatusCreated, resp)
}

// listInvoices godoc
// @Summary List invoices, newest first
// @Tags invoices
// @Produce json
// @Param X-User-ID header string true "User id"
// @Success 200 {array} invoice.Invoice
// @Router /invoices [get]
func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.repo.ListInvoices(r.Context(), sessionFrom(r))
	if err != nil {
		h.writeError(w, r, "listInvoices", err)
		return
	}
	if invoices == nil {
		invoices = []invoice.Invoice{}
	}
	writeJSON(w, http.StatusOK, invoices)
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.repo.GetInvoice(r.Context(), sessionFrom(r), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, "getInvoice", err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent paid overdue"`
}

// updateInvoiceStatus godoc
// @Summary Change an invoice status
// @Description Any of draft, sent, paid or overdue may follow any other.
// @Tags invoices
// @Accept json
// @Param X-User-ID header string true "User id"
// @Param id path string true "Invoice id"
// @Param status body statusRequest true "New status"
// @Success 204
// @Failure 400 {object} errorBody
// @Failure 404 {object} errorBody
// @Router /invoices/{id}/status [patch]
func (h *Handler) updateInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, r, "updateInvoiceStatus", err)
		return
	}
	status, err := invoice.ParseStatus(req.Status)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := h.repo.UpdateInvoiceStatus(r.Context(), sessionFrom(r), mux.Vars(r)["id"], status); err != nil {
		h.writeError(w, r, "updateInvoiceStatus", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// exportInvoice godoc
// @Summary Download an invoice
// @Tags exports
// @Produce application/pdf
// @Param X-User-ID header string true "User id"
// @Param id path string true "Invoice id"
// @Param format query string false "pdf or xlsx"
// @Param archive query bool false "Also store the file"
// @Success 200 {file} file
// @Failure 404 {object} errorBody
// @Failure 502 {object} errorBody
// @Router /invoices/{id}/export [get]
func (h *Handler) exportInvoice(w http.ResponseWriter, r *http.Request) {
	opts, err := exportOptions(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	res, err := h.exports.Invoice(r.Context(), sessionFrom(r), mux.Vars(r)["id"], opts)
	if err != nil {
		h.writeError(w, r, "exportInvoice", err)
		return
	}
	writeFile(w, res)
}
