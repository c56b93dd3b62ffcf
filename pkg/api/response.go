// pkg/api/response.go

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/bizbooks-service/pkg/aggregate"
	"github.com/bizbooks-service/pkg/document"
	"github.com/bizbooks-service/pkg/expense"
	"github.com/bizbooks-service/pkg/export"
	"github.com/bizbooks-service/pkg/invoice"
	"github.com/bizbooks-service/pkg/logging"
	"github.com/bizbooks-service/pkg/money"
	"github.com/bizbooks-service/pkg/profile"
	"github.com/bizbooks-service/pkg/render"
	"github.com/bizbooks-service/pkg/storage"
	"github.com/bizbooks-service/pkg/tax"
	"github.com/go-playground/validator/v10"
)

type errorBody struct {
	Error       string            `json:"error"`
	Fields      map[string]string `json:"fields,omitempty"`
	Dismissible bool              `json:"dismissible,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func processValidationErrors(err validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(err))
	for _, fe := range err {
		out[fe.Field()] = fe.Tag()
	}
	return out
}

var badRequestErrors = []error{
	aggregate.ErrInvalidAmount,
	money.ErrTooPrecise,
	invoice.ErrMissingClient,
	invoice.ErrMissingNumber,
	invoice.ErrDueBeforeIssueDate,
	tax.ErrYearOutOfRange,
	tax.ErrUnknownCategory,
	tax.ErrAmountTooSmall,
	expense.ErrMissingCategory,
	storage.ErrInvalidKey,
}

var notFoundErrors = []error{
	invoice.ErrInvoiceNotFound,
	tax.ErrEntryNotFound,
	expense.ErrExpenseNotFound,
	profile.ErrProfileNotFound,
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// writeError maps domain errors to HTTP responses. Unexpected errors are
// logged and hidden from the client.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "validation failed", Fields: processValidationErrors(verrs)})
	case isAny(err, badRequestErrors):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case isAny(err, notFoundErrors):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, invoice.ErrDuplicateNumber):
		writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	case errors.Is(err, document.ErrNoRecordsToExport):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error(), Dismissible: true})
	case errors.Is(err, render.ErrRenderFailure):
		writeJSON(w, http.StatusBadGateway, errorBody{Error: "could not generate document", Dismissible: true})
	default:
		logging.LogError(h.logger, "api", funcName, r.URL.Path, requestIDFrom(r.Context()), err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

func writeFile(w http.ResponseWriter, res *export.Result) {
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(res.FileName))
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	if res.ArchiveKey != "" {
		w.Header().Set("X-Archive-Key", res.ArchiveKey)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

// exportOptions reads ?format= and ?archive= query parameters.
func exportOptions(r *http.Request) (export.Options, error) {
	format, err := render.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		return export.Options{}, err
	}
	archive, _ := strconv.ParseBool(r.URL.Query().Get("archive"))
	return export.Options{Format: format, Archive: archive}, nil
}
