// Package handler exposes the beneficial owner HTTP endpoints.
package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"boiregistry/internal/owner/models"
	"boiregistry/internal/owner/service"
	"boiregistry/internal/platform/metrics"
	"boiregistry/internal/transport/http/shared"
	"boiregistry/internal/validation"
)

type Handler struct {
	service    *service.OwnerService
	metrics    *metrics.Metrics
	schema     validation.Schema
	production bool
}

type Option func(*Handler)

// WithClock pins the date used by the age rule.
func WithClock(now validation.Clock) Option {
	return func(h *Handler) { h.schema = newOwnerSchema(now) }
}

func New(svc *service.OwnerService, m *metrics.Metrics, production bool, opts ...Option) *Handler {
	h := &Handler{service: svc, metrics: m, schema: newOwnerSchema(time.Now), production: production}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the owner routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/company/{companyId}", h.listByCompany)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.softDelete)
	r.Delete("/{id}/permanent", h.permanentDelete)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	payload, err := validation.DecodePayload(r.Body)
	if err != nil {
		shared.WriteBadRequest(w, "Invalid JSON payload")
		return
	}
	if errs := h.schema.Validate(payload, validation.ModeCreate); len(errs) > 0 {
		h.metrics.ValidationFailures.Inc()
		shared.WriteValidationErrors(w, errs)
		return
	}

	owner, err := h.service.Create(r.Context(), bindOwner(payload))
	if err != nil {
		shared.WriteError(w, err, h.production)
		return
	}
	h.metrics.OwnersCreated.Inc()
	shared.WriteData(w, http.StatusCreated, owner, "Beneficial owner created successfully")
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, limit := shared.PageQuery(r)
	filter := models.OwnerFilter{Page: page, Limit: limit}
	if raw := r.URL.Query().Get("reportingCompanyId"); raw != "" {
		companyID, ok := validation.ParseID(raw)
		if !ok {
			shared.WriteBadRequest(w, "Invalid reportingCompanyId. Must be a valid positive integer")
			return
		}
		filter.CompanyID = &companyID
	}

	owners, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		shared.WriteError(w, err, h.production)
		return
	}
	shared.WriteList(w, owners, len(owners), total, shared.NewPagination(page, limit, total), nil)
}

func (h *Handler) listByCompany(w http.ResponseWriter, r *http.Request) {
	companyID, ok := validation.ParseID(chi.URLParam(r, "companyId"))
	if !ok {
		shared.WriteBadRequest(w, "Invalid companyId. Must be a valid positive integer")
		return
	}
	page, limit := shared.PageQuery(r)

	owners, total, companyInfo, err := h.service.ListByCompany(r.Context(), companyID, page, limit)
	if err != nil {
		shared.WriteError(w, err, h.production)
		return
	}
	shared.WriteList(w, owners, len(owners), total, shared.NewPagination(page, limit, total), companyInfo)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := validation.ParseID(chi.URLParam(r, "id"))
	if !ok {
		shared.WriteBadRequest(w, "Invalid id. Must be a valid positive integer")
		return
	}

	owner, err := h.service.Get(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err, h.production)
		return
	}
	shared.WriteData(w, http.StatusOK, owner, "")
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
	if errs := h.schema.Validate(payload, validation.ModeUpdate); len(errs) > 0 {
		h.metrics.ValidationFailures.Inc()
		shared.WriteValidationErrors(w, errs)
		return
	}

	owner, err := h.service.Update(r.Context(), id, bindOwnerPatch(payload))
	if err != nil {
		shared.WriteError(w, err, h.production)
		return
	}
	shared.WriteData(w, http.StatusOK, owner, "Beneficial owner updated successfully")
}

func (h *Handler) softDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := validation.ParseID(chi.URLParam(r, "id"))
	if !ok {
		shared.WriteBadRequest(w, "Invalid id. Must be a valid positive integer")
		return
	}

	owner, err := h.service.SoftDelete(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err, h.production)
		return
	}
	shared.WriteData(w, http.StatusOK, owner, "Beneficial owner deleted successfully")
}

func (h *Handler) permanentDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := validation.ParseID(chi.URLParam(r, "id"))
	if !ok {
		shared.WriteBadRequest(w, "Invalid id. Must be a valid positive integer")
		return
	}

	owner, err := h.service.PermanentDelete(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err, h.production)
		return
	}
	shared.WriteData(w, http.StatusOK, owner, "Beneficial owner permanently deleted")
}
