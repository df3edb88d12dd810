package shared

import (
	"net/http"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PageQuery reads the page and limit query parameters, falling back to the
// defaults when a value is missing, malformed or below 1.
func PageQuery(r *http.Request) (page, limit int) {
	page = intQuery(r, "page", DefaultPage)
	limit = intQuery(r, "limit", DefaultLimit)
	return page, limit
}

func intQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
