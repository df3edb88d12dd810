// Package validation implements the table-driven request validation layer.
//
// Payloads are validated as decoded JSON (map[string]any with numbers kept as
// json.Number) rather than as bound structs, because several rules must
// distinguish JSON types the way the API contract demands: a boolean field
// sent as the string "true" is a type failure, not an acceptable coercion,
// and the error must still be scoped to that field. All failures for one
// request are collected and returned together.
package validation

import (
	"encoding/json"
	"io"
	"strings"
)

// FieldError is one field-scoped validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// Mode selects how required rules are enforced.
type Mode int

const (
	// ModeCreate requires every mandatory field to be present.
	ModeCreate Mode = iota
	// ModeUpdate treats absent fields as optional but re-applies per-field
	// rules to anything the payload supplies, empty strings included: a
	// field cannot be blanked past its own rules.
	ModeUpdate
)

// Check inspects a single present value and returns a failure message, or ""
// when the value passes.
type Check func(v any) string

// Rule is an ordered predicate chain for one field. RequiredMessage, when
// non-empty, makes the field mandatory in ModeCreate.
type Rule struct {
	Field           string
	RequiredMessage string
	Checks          []Check
}

// Conditional declares that Dependent is required (and checked) if and only
// if Discriminator currently equals Sentinel.
type Conditional struct {
	Discriminator string
	Sentinel      string
	Dependent     string
	Message       string
	Checks        []Check
}

// Schema is the full rule table for one request shape.
type Schema struct {
	Rules        []Rule
	Conditionals []Conditional
}

// DecodePayload decodes a JSON request body into the map form the validator
// operates on. Numbers are preserved as json.Number so integer rules can
// reject floats and strings.
func DecodePayload(r io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	payload := map[string]any{}
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Validate runs the rule table against a payload. String values are trimmed
// in place before checks run, so a passing payload comes out normalized.
// Failures are returned in table order, all at once.
func (s *Schema) Validate(payload map[string]any, mode Mode) []FieldError {
	var errs []FieldError

	for _, rule := range s.Rules {
		v, present := normalize(payload, rule.Field)
		if present {
			for _, check := range rule.Checks {
				if msg := check(v); msg != "" {
					errs = append(errs, FieldError{Field: rule.Field, Message: msg, Value: v})
				}
			}
			continue
		}

		raw, supplied := payload[rule.Field]
		if mode == ModeCreate && rule.RequiredMessage != "" {
			errs = append(errs, FieldError{Field: rule.Field, Message: rule.RequiredMessage, Value: raw})
			continue
		}
		// An update payload that supplies an empty value is still bound by
		// the field rules; only absent keys and JSON null are skipped.
		if mode == ModeUpdate && supplied && raw != nil {
			if len(rule.Checks) == 0 {
				if rule.RequiredMessage != "" {
					errs = append(errs, FieldError{Field: rule.Field, Message: rule.RequiredMessage, Value: raw})
				}
				continue
			}
			for _, check := range rule.Checks {
				if msg := check(v); msg != "" {
					errs = append(errs, FieldError{Field: rule.Field, Message: msg, Value: raw})
				}
			}
		}
	}

	for _, cond := range s.Conditionals {
		disc, ok := payload[cond.Discriminator].(string)
		if !ok || disc != cond.Sentinel {
			continue
		}
		v, present := normalize(payload, cond.Dependent)
		if !present {
			errs = append(errs, FieldError{Field: cond.Dependent, Message: cond.Message, Value: payload[cond.Dependent]})
			continue
		}
		for _, check := range cond.Checks {
			if msg := check(v); msg != "" {
				errs = append(errs, FieldError{Field: cond.Dependent, Message: msg, Value: v})
			}
		}
	}

	return errs
}

// normalize trims string values in place and reports whether the field holds
// a usable value. Absent keys, JSON null, and whitespace-only strings all
// count as "not present" so required rules treat them uniformly.
func normalize(payload map[string]any, field string) (any, bool) {
	v, ok := payload[field]
	if !ok || v == nil {
		return nil, false
	}
	if s, isStr := v.(string); isStr {
		s = strings.TrimSpace(s)
		payload[field] = s
		if s == "" {
			return nil, false
		}
		return s, true
	}
	return v, true
}
