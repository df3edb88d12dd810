package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	companyhandler "boiregistry/internal/company/handler"
	companyservice "boiregistry/internal/company/service"
	companystore "boiregistry/internal/company/store"
	ownerhandler "boiregistry/internal/owner/handler"
	ownerservice "boiregistry/internal/owner/service"
	ownerstore "boiregistry/internal/owner/store"
	"boiregistry/internal/platform/metrics"
	"boiregistry/pkg/testutil"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	companies := companystore.NewMemory()
	owners := ownerstore.NewMemory()
	companies.SetRefChecker(owners.HasCompanyRefs)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	companySvc := companyservice.New(companies, logger)
	ownerSvc := ownerservice.New(owners, companies, logger)

	return NewRouter(RouterDeps{
		Logger:    logger,
		Metrics:   m,
		Gatherer:  reg,
		Companies: companyhandler.New(companySvc, m, false),
		Owners:    ownerhandler.New(ownerSvc, m, false),
	})
}

func TestIndexDocument(t *testing.T) {
	router := newTestRouter(t)
	rr := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "endpoints")
	assert.Contains(t, body, "GET /api/reporting-companies")
	assert.Contains(t, body, "DELETE /api/beneficial-owners/:id/permanent")
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)
	rr := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"ok"`)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	// Generate one request so the counter has something to report.
	testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	rr := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "boiregistry_http_requests_total")
}

func TestUnknownRouteReturnsJSON404(t *testing.T) {
	router := newTestRouter(t)
	rr := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/api/no-such-thing", nil))

	require.Equal(t, http.StatusNotFound, rr.Code)
	env := testutil.UnmarshalEnvelope(t, rr)
	assert.False(t, env.Success)
	assert.Equal(t, "Route not found", env.Message)
}

func TestNonJSONBodyRejected(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/reporting-companies", strings.NewReader("name=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := testutil.DoRequest(router, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestRouter(t)
	rr := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
}
