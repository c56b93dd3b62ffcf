// pkg/api/router.go

package api

import (
	"net/http"

	"github.com/bizbooks-service/pkg/export"
	"github.com/bizbooks-service/pkg/storage"
	"github.com/bizbooks-service/pkg/store"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
)

// maxUploadSize bounds logo and receipt uploads.
const maxUploadSize = 5 * 1024 * 1024

type Handler struct {
	repo     store.Repository
	exports  *export.Service
	objects  storage.Store
	logger   *logrus.Logger
	validate *validator.Validate
	locale   string
}

func NewHandler(repo store.Repository, exports *export.Service, objects storage.Store, logger *logrus.Logger, defaultLocale string) *Handler {
	return &Handler{
		repo:     repo,
		exports:  exports,
		objects:  objects,
		logger:   logger,
		validate: validator.New(),
		locale:   defaultLocale,
	}
}

// NewRouter registers every route. All routes except health and swagger
// require an X-User-ID header.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(h.requestID, h.accessLog)

	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	api := r.PathPrefix("/").Subrouter()
	api.Use(h.requireSession)

	api.HandleFunc("/invoices", h.createInvoice).Methods(http.MethodPost)
	api.HandleFunc("/invoices", h.listInvoices).Methods(http.MethodGet)
	api.HandleFunc("/invoices/{id}", h.getInvoice).Methods(http.MethodGet)
	api.HandleFunc("/invoices/{id}/status", h.updateInvoiceStatus).Methods(http.MethodPatch)
	api.HandleFunc("/invoices/{id}/export", h.exportInvoice).Methods(http.MethodGet)

	api.HandleFunc("/tax-entries", h.createTaxEntry).Methods(http.MethodPost)
	api.HandleFunc("/tax-entries", h.listTaxEntries).Methods(http.MethodGet)
	api.HandleFunc("/tax-entries/summary", h.taxSummary).Methods(http.MethodGet)
	api.HandleFunc("/tax-entries/{id}", h.deleteTaxEntry).Methods(http.MethodDelete)
	api.HandleFunc("/tax-reports/export", h.exportTaxReport).Methods(http.MethodGet)

	api.HandleFunc("/expenses", h.createExpense).Methods(http.MethodPost)
	api.HandleFunc("/expenses", h.listExpenses).Methods(http.MethodGet)
	api.HandleFunc("/expenses/summary", h.expenseSummary).Methods(http.MethodGet)
	api.HandleFunc("/expenses/export", h.exportExpenses).Methods(http.MethodGet)
	api.HandleFunc("/expenses/{id}/receipt", h.uploadReceipt).Methods(http.MethodPost)

	api.HandleFunc("/profile", h.getProfile).Methods(http.MethodGet)
	api.HandleFunc("/profile", h.saveProfile).Methods(http.MethodPut)
	api.HandleFunc("/profile/logo", h.uploadLogo).Methods(http.MethodPost)

	return r
}

// health godoc
// @Summary Liveness check
// @Tags system
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
