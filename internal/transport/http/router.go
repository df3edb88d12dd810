// Package http assembles the API router: middleware chain, feature route
// mounts, the index document and the operational endpoints.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	companyhandler "boiregistry/internal/company/handler"
	ownerhandler "boiregistry/internal/owner/handler"
	"boiregistry/internal/platform/metrics"
	"boiregistry/internal/platform/middleware"
)

const (
	requestTimeout = 30 * time.Second
	maxBodyBytes   = 10 << 20
)

// RouterDeps carries everything the router mounts.
type RouterDeps struct {
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
	Companies *companyhandler.Handler
	Owners    *ownerhandler.Handler
}

// NewRouter builds the full HTTP handler.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.MaxBytes(maxBodyBytes))
	r.Use(middleware.ContentTypeJSON)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	r.Get("/", indexHandler)
	r.Get("/healthz", healthHandler)
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/reporting-companies", deps.Companies.Register)
	r.Route("/api/beneficial-owners", deps.Owners.Register)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success": false,
			"message": "Route not found",
		})
	})

	return r
}

func indexHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Reporting company and beneficial owner API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"GET /api/reporting-companies":                  "List reporting companies",
			"POST /api/reporting-companies":                 "Create a reporting company",
			"GET /api/reporting-companies/:id":              "Get a reporting company by ID",
			"PUT /api/reporting-companies/:id":              "Update a reporting company",
			"DELETE /api/reporting-companies/:id":           "Delete a reporting company",
			"GET /api/beneficial-owners":                    "List beneficial owners",
			"POST /api/beneficial-owners":                   "Create a beneficial owner",
			"GET /api/beneficial-owners/:id":                "Get a beneficial owner by ID",
			"PUT /api/beneficial-owners/:id":                "Update a beneficial owner",
			"DELETE /api/beneficial-owners/:id":             "Deactivate a beneficial owner (soft delete)",
			"GET /api/beneficial-owners/company/:companyId": "List beneficial owners of a company",
			"DELETE /api/beneficial-owners/:id/permanent":   "Permanently delete a beneficial owner",
		},
	})
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
