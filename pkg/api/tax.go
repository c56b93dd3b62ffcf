// pkg/api/tax.go

package api

import (
	"encoding/json"
	"net/http"

	"github.com/bizbooks-service/pkg/tax"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type taxEntryRequest struct {
	TaxYear     int             `json:"tax_year" validate:"required,min=2000,max=2100"`
	Category    string          `json:"category" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"max=500"`
}

// createTaxEntry godoc
// @Summary Log a tax entry
// @Tags tax
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User id"
// @Param entry body taxEntryRequest true "Entry"
// @Success 201 {object} tax.Entry
// @Failure 400 {object} errorBody
// @Router /tax-entries [post]
func (h *Handler) createTaxEntry(w http.ResponseWriter, r *http.Request) {
	var req taxEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, r, "createTaxEntry", err)
		return
	}
	e := &tax.Entry{
		TaxYear:     req.TaxYear,
		Category:    tax.Category(req.Category),
		Amount:      req.Amount,
		Description: req.Description,
	}
	if err := h.repo.CreateTaxEntry(r.Context(), sessionFrom(r), e); err != nil {
		h.writeError(w, r, "createTaxEntry", err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *Handler) listTaxEntries(w http.ResponseWriter, r *http.Request) {
	year, err := tax.ParseYear(r.URL.Query().Get("year"))
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	entries, err := h.repo.ListTaxEntries(r.Context(), sessionFrom(r))
	if err != nil {
		h.writeError(w, r, "listTaxEntries", err)
		return
	}
	entries = tax.FilterYear(entries, year)
	if entries == nil {
		entries = []tax.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

type taxSummaryResponse struct {
	Years      []yearSummary   `json:"years"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

type yearSummary struct {
	Year       int             `json:"year"`
	Categories []categoryTotal `json:"categories"`
	Total      decimal.Decimal `json:"total"`
}

type categoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// taxSummary godoc
// @Summary Totals per tax year and category
// @Description Years are listed newest first; categories in first-seen order.
// @Tags tax
// @Produce json
// @Param X-User-ID header string true "User id"
// @Param year query int false "Tax year"
// @Success 200 {object} taxSummaryResponse
// @Router /tax-entries/summary [get]
func (h *Handler) taxSummary(w http.ResponseWriter, r *http.Request) {
	year, err := tax.ParseYear(r.URL.Query().Get("year"))
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	entries, err := h.repo.ListTaxEntries(r.Context(), sessionFrom(r))
	if err != nil {
		h.writeError(w, r, "taxSummary", err)
		return
	}
	sum := tax.Summarize(tax.FilterYear(entries, year))
	resp := taxSummaryResponse{Years: []yearSummary{}, GrandTotal: sum.GrandTotal()}
	for _, yg := range sum.Years {
		ys := yearSummary{Year: yg.Year, Total: yg.Categories.GrandTotal()}
		for _, row := range yg.Categories.Groups() {
			ys.Categories = append(ys.Categories, categoryTotal{Category: row.Label, Total: row.Amount})
		}
		resp.Years = append(resp.Years, ys)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) deleteTaxEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteTaxEntry(r.Context(), sessionFrom(r), mux.Vars(r)["id"]); err != nil {
		h.writeError(w, r, "deleteTaxEntry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// exportTaxReport godoc
// @Summary Download the tax report
// @Description Without a year every logged year is included, newest first.
// @Tags exports
// @Produce application/pdf
// @Param X-User-ID header string true "User id"
// @Param year query int false "Tax year"
// @Param format query string false "pdf or xlsx"
// @Param archive query bool false "Also store the file"
// @Success 200 {file} file
// @Failure 404 {object} errorBody
// @Failure 502 {object} errorBody
// @Router /tax-reports/export [get]
func (h *Handler) exportTaxReport(w http.ResponseWriter, r *http.Request) {
	year, err := tax.ParseYear(r.URL.Query().Get("year"))
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	opts, err := exportOptions(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	res, err := h.exports.TaxReport(r.Context(), sessionFrom(r), year, opts)
	if err != nil {
		h.writeError(w, r, "exportTaxReport", err)
		return
	}
	writeFile(w, res)
}
