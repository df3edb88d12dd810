package validation

import (
	"time"

	"boiregistry/pkg/domain"
)

// Typed accessors for binding a validated, normalized payload into entity
// structs. They assume the schema already ran, so type mismatches simply
// read as absent.

// String returns the trimmed string value for key, or "" when absent.
func String(p map[string]any, key string) string {
	s, _ := p[key].(string)
	return s
}

// StringPtr returns the string value for key, or nil when absent or empty.
func StringPtr(p map[string]any, key string) *string {
	if s, ok := p[key].(string); ok && s != "" {
		return &s
	}
	return nil
}

// Bool returns the boolean value for key and whether it was present.
func Bool(p map[string]any, key string) (bool, bool) {
	b, ok := p[key].(bool)
	return b, ok
}

// BoolPtr returns a pointer to the boolean value for key, or nil when absent.
func BoolPtr(p map[string]any, key string) *bool {
	if b, ok := p[key].(bool); ok {
		return &b
	}
	return nil
}

// Int64 returns the integral value for key and whether it was present.
func Int64(p map[string]any, key string) (int64, bool) {
	return AsInt(p[key])
}

// Int64Ptr returns a pointer to the integral value for key, or nil when absent.
func Int64Ptr(p map[string]any, key string) *int64 {
	if n, ok := AsInt(p[key]); ok {
		return &n
	}
	return nil
}

// Date returns the parsed calendar date for key and whether it was present
// and parseable.
func Date(p map[string]any, key string) (domain.Date, bool) {
	s, ok := p[key].(string)
	if !ok || s == "" {
		return domain.Date{}, false
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return domain.Date{}, false
	}
	return d, true
}

// DatePtr returns a pointer to the parsed date for key, or nil when absent.
func DatePtr(p map[string]any, key string) *domain.Date {
	if d, ok := Date(p, key); ok {
		return &d
	}
	return nil
}

// Strings returns the string-slice value for key, or nil when absent.
func Strings(p map[string]any, key string) []string {
	items, ok := p[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, isStr := item.(string); isStr {
			out = append(out, s)
		}
	}
	return out
}

// Has reports whether the payload carries a usable value for key.
func Has(p map[string]any, key string) bool {
	v, ok := p[key]
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr {
		return s != ""
	}
	return true
}

// Clock is the time source injected into age rules; tests pin it.
type Clock func() time.Time
