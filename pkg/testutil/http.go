// Package testutil provides common test utilities for handler and
// integration tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewJSONRequest creates an HTTP request with JSON body.
// The body is marshaled to JSON automatically.
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewRequest creates a simple HTTP request without a body.
func NewRequest(t *testing.T, method, path string) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, path, nil)
}

// NewRequestWithBody creates an HTTP request with a string body.
func NewRequestWithBody(t *testing.T, method, path string, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// DoRequest executes a request against a handler and returns the recorder.
func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// ReadBody reads the response body as bytes.
func ReadBody(t *testing.T, rr *httptest.ResponseRecorder) []byte {
	t.Helper()
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err, "failed to read response body")
	return body
}

// Envelope mirrors the API response body for assertions. Data is kept raw so
// tests can unmarshal it into the shape they expect.
type Envelope struct {
	Success     bool            `json:"success"`
	Message     string          `json:"message"`
	Data        json.RawMessage `json:"data"`
	Errors      []FieldError    `json:"errors"`
	Count       *int            `json:"count"`
	Total       *int64          `json:"total"`
	Pagination  *Pagination     `json:"pagination"`
	CompanyInfo *CompanyInfo    `json:"companyInfo"`
	Error       string          `json:"error"`
}

// FieldError is one field-scoped validation failure in a 400 response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value"`
}

// Pagination is the paging block of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// CompanyInfo is the company summary attached to owners-by-company listings.
type CompanyInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UnmarshalEnvelope decodes a response body into the shared envelope shape.
func UnmarshalEnvelope(t *testing.T, rr *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(ReadBody(t, rr), &env), "failed to unmarshal envelope")
	return env
}

// UnmarshalData decodes the data block of an envelope into T.
func UnmarshalData[T any](t *testing.T, env Envelope) *T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out), "failed to unmarshal envelope data")
	return &out
}

// AssertStatus asserts the response status code matches expected.
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, rr.Code, "unexpected status code")
}

// AssertFieldError asserts the envelope carries a validation failure with the
// given field and message.
func AssertFieldError(t *testing.T, env Envelope, field, message string) {
	t.Helper()
	for _, fe := range env.Errors {
		if fe.Field == field && fe.Message == message {
			return
		}
	}
	t.Errorf("no error for field %q with message %q in %+v", field, message, env.Errors)
}

// HasFieldError reports whether the envelope carries any failure for field.
func HasFieldError(env Envelope, field string) bool {
	for _, fe := range env.Errors {
		if fe.Field == field {
			return true
		}
	}
	return false
}
