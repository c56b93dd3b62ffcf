// pkg/api/expenses.go

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bizbooks-service/pkg/expense"
	"github.com/bizbooks-service/pkg/storage"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type expenseRequest struct {
	Description string          `json:"description" validate:"max=500"`
	Category    string          `json:"category" validate:"required,max=100"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

var receiptMimeTypes = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"application/pdf": true,
}

// createExpense godoc
// @Summary Record an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User id"
// @Param expense body expenseRequest true "Expense"
// @Success 201 {object} expense.Expense
// @Failure 400 {object} errorBody
// @Router /expenses [post]
func (h *Handler) createExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, r, "createExpense", err)
		return
	}
	e := &expense.Expense{
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
	}
	if req.Date != "" {
		e.Date, _ = time.Parse(dateLayout, req.Date)
	}
	if err := h.repo.CreateExpense(r.Context(), sessionFrom(r), e); err != nil {
		h.writeError(w, r, "createExpense", err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// expenseFilter reads category, from, to and q query parameters. Dates are
// inclusive; to covers the whole day.
func expenseFilter(r *http.Request) (expense.Filter, error) {
	q := r.URL.Query()
	f := expense.Filter{Category: q.Get("category"), Search: q.Get("q")}
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return f, err
		}
		f.From = t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return f, err
		}
		f.To = t.Add(24*time.Hour - time.Nanosecond)
	}
	return f, nil
}

func (h *Handler) filteredExpenses(w http.ResponseWriter, r *http.Request, funcName string) ([]expense.Expense, bool) {
	f, err := expenseFilter(r)
	if err != nil {
		writeBadRequest(w, "dates must use YYYY-MM-DD")
		return nil, false
	}
	all, err := h.repo.ListExpenses(r.Context(), sessionFrom(r))
	if err != nil {
		h.writeError(w, r, funcName, err)
		return nil, false
	}
	return f.Apply(all), true
}

// listExpenses godoc
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Param X-User-ID header string true "User id"
// @Param category query string false "Category"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param q query string false "Description search"
// @Success 200 {array} expense.Expense
// @Router /expenses [get]
func (h *Handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, ok := h.filteredExpenses(w, r, "listExpenses")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (h *Handler) expenseSummary(w http.ResponseWriter, r *http.Request) {
	expenses, ok := h.filteredExpenses(w, r, "expenseSummary")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, expense.CategoryTotals(expenses))
}

func (h *Handler) exportExpenses(w http.ResponseWriter, r *http.Request) {
	f, err := expenseFilter(r)
	if err != nil {
		writeBadRequest(w, "dates must use YYYY-MM-DD")
		return
	}
	opts, err := exportOptions(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	res, err := h.exports.ExpenseReport(r.Context(), sessionFrom(r), f, opts)
	if err != nil {
		h.writeError(w, r, "exportExpenses", err)
		return
	}
	writeFile(w, res)
}

// uploadReceipt godoc
// @Summary Attach a receipt to an expense
// @Tags expenses
// @Accept multipart/form-data
// @Produce json
// @Param X-User-ID header string true "User id"
// @Param id path string true "Expense id"
// @Param receipt formData file true "PNG, JPEG or PDF"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errorBody
// @Failure 404 {object} errorBody
// @Router /expenses/{id}/receipt [post]
func (h *Handler) uploadReceipt(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	id := mux.Vars(r)["id"]
	if _, err := h.repo.GetExpense(r.Context(), sess, id); err != nil {
		h.writeError(w, r, "uploadReceipt", err)
		return
	}
	key, ok := h.upload(w, r, "receipt", storage.KindReceipts, receiptMimeTypes)
	if !ok {
		return
	}
	if err := h.repo.SetExpenseReceipt(r.Context(), sess, id, key); err != nil {
		h.writeError(w, r, "uploadReceipt", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"receipt_ref": key})
}
