// Package handler exposes the reporting company HTTP endpoints.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"boiregistry/internal/company/service"
	"boiregistry/internal/platform/metrics"
	"boiregistry/internal/transport/http/shared"
	"boiregistry/internal/validation"
)

type Handler struct {
	service    *service.CompanyService
	metrics    *metrics.Metrics
	production bool
}

func New(svc *service.CompanyService, m *metrics.Metrics, production bool) *Handler {
	return &Handler{service: svc, metrics: m, production: production}
}

// Register mounts the company routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	payload, err := validation.DecodePayload(r.Body)
	if err != nil {
		shared.WriteBadRequest(w, "Invalid JSON payload")
		return
	}
	if errs := companySchema.Validate(payload, validation.ModeCreate); len(errs) > 0 {
		h.metrics.ValidationFailures.Inc()
		shared.WriteValidationErrors(w, errs)
		return
	}

	company, err := h.service.Create(r.Context(), bindCompany(payload))
	if err != nil {
		shared.WriteError(w, err, h.production)
		return
	}
	h.metrics.CompaniesCreated.Inc()
	shared.WriteData(w, http.StatusCreated, company, "Reporting company created successfully")
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, limit := shared.PageQuery(r)

	companies, total, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		shared.WriteError(w, err, h.production)
		return
	}
	shared.WriteList(w, companies, len(companies), total, shared.NewPagination(page, limit, total), nil)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := validation.ParseID(chi.URLParam(r, "id"))
	if !ok {
		shared.WriteBadRequest(w, "Invalid id. Must be a valid positive integer")
		return
	}

	company, err := h.service.Get(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err, h.production)
		return
	}
	shared.WriteData(w, http.StatusOK, company, "")
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := validation.ParseID(chi.URLParam(r, "id"))
	if !ok {
		shared.WriteBadRequest(w, "Invalid id. Must be a valid positive integer")
		return
	}
	payload, err := validation.DecodePayload(r.Body)
	if err != nil {
		shared.WriteBadRequest(w, "Invalid JSON payload")
		return
	}
	if errs := companySchema.Validate(payload, validation.ModeUpdate); len(errs) > 0 {
		h.metrics.ValidationFailures.Inc()
		shared.WriteValidationErrors(w, errs)
		return
	}

	company, err := h.service.Update(r.Context(), id, bindCompanyPatch(payload))
	if err != nil {
		shared.WriteError(w, err, h.production)
		return
	}
	shared.WriteData(w, http.StatusOK, company, "Reporting company updated successfully")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := validation.ParseID(chi.URLParam(r, "id"))
	if !ok {
		shared.WriteBadRequest(w, "Invalid id. Must be a valid positive integer")
		return
	}

	company, err := h.service.Delete(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err, h.production)
		return
	}
	shared.WriteData(w, http.StatusOK, company, "Reporting company deleted successfully")
}
