// Package shared centralizes the JSON response envelope so every handler
// emits the same shape: {success, data?, message?, errors?, count?, total?,
// pagination?}.
package shared

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"boiregistry/internal/validation"
	dErrors "boiregistry/pkg/domain-errors"
)

// Pagination describes an offset-paginated listing.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// NewPagination computes the page count for a total row count.
func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Pagination{Page: page, Limit: limit, Pages: pages}
}

// Envelope is the response body shape shared by every endpoint.
type Envelope struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message,omitempty"`
	Data        any         `json:"data,omitempty"`
	Errors      any         `json:"errors,omitempty"`
	Count       *int        `json:"count,omitempty"`
	Total       *int64      `json:"total,omitempty"`
	Pagination  *Pagination `json:"pagination,omitempty"`
	CompanyInfo any         `json:"companyInfo,omitempty"`
	// Error carries 500 detail; suppressed in production configuration.
	Error string `json:"error,omitempty"`
}

// WriteJSON writes an envelope with the given status.
func WriteJSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// WriteData writes a success envelope with data and an optional message.
func WriteData(w http.ResponseWriter, status int, data any, message string) {
	WriteJSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// WriteList writes a paginated success envelope. companyInfo may be nil.
func WriteList(w http.ResponseWriter, data any, count int, total int64, p Pagination, companyInfo any) {
	WriteJSON(w, http.StatusOK, Envelope{
		Success:     true,
		Data:        data,
		Count:       &count,
		Total:       &total,
		Pagination:  &p,
		CompanyInfo: companyInfo,
	})
}

// WriteValidationErrors writes the 400 envelope carrying every field error.
func WriteValidationErrors(w http.ResponseWriter, errs []validation.FieldError) {
	WriteJSON(w, http.StatusBadRequest, Envelope{
		Success: false,
		Message: "Validation errors",
		Errors:  errs,
	})
}

// WriteBadRequest writes a 400 envelope with a single message.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: message})
}

// WriteError translates a domain error into its envelope. Unclassified
// errors become 500; their detail is included only outside production.
func WriteError(w http.ResponseWriter, err error, production bool) {
	var de *dErrors.Error
	if errors.As(err, &de) && de.Code != dErrors.CodeInternal {
		WriteJSON(w, dErrors.ToHTTPStatus(de.Code), Envelope{Success: false, Message: de.Message})
		return
	}

	env := Envelope{Success: false, Message: "Internal server error"}
	if !production && err != nil {
		env.Error = err.Error()
	}
	WriteJSON(w, http.StatusInternalServerError, env)
}
