package validation

import (
	"encoding/json"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"boiregistry/pkg/domain"
)

// Length enforces inclusive min/max bounds on a trimmed string.
func Length(min, max int, msg string) Check {
	return func(v any) string {
		s, ok := v.(string)
		if !ok || len(s) < min || len(s) > max {
			return msg
		}
		return ""
	}
}

// MaxLen enforces only an upper bound.
func MaxLen(max int, msg string) Check {
	return Length(0, max, msg)
}

// OneOfMsg enforces a closed enum set, failing with the given message.
func OneOfMsg(msg string, allowed ...string) Check {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return func(v any) string {
		s, ok := v.(string)
		if !ok {
			return msg
		}
		if _, found := set[s]; !found {
			return msg
		}
		return ""
	}
}

// Email accepts syntactically valid addresses.
func Email(msg string) Check {
	return func(v any) string {
		s, ok := v.(string)
		if !ok {
			return msg
		}
		addr, err := mail.ParseAddress(s)
		if err != nil || addr.Address != s {
			return msg
		}
		return ""
	}
}

// DateYMD requires a parseable "YYYY-MM-DD" string.
func DateYMD(msg string) Check {
	return func(v any) string {
		s, ok := v.(string)
		if !ok {
			return msg
		}
		if _, err := domain.ParseDate(s); err != nil {
			return msg
		}
		return ""
	}
}

// Adult enforces the date-of-birth rules: computed age must reach minAge and
// the date must not lie in the future. The clock is injected so rule tables
// stay testable against fixed dates. Unparseable values are left to DateYMD.
func Adult(minAge int, tooYoungMsg, futureMsg string, now func() time.Time) Check {
	return func(v any) string {
		s, ok := v.(string)
		if !ok {
			return ""
		}
		dob, err := domain.ParseDate(s)
		if err != nil {
			return ""
		}
		nowT := now()
		if dob.After(nowT) {
			return futureMsg
		}
		if dob.AgeAt(nowT) < minAge {
			return tooYoungMsg
		}
		return ""
	}
}

// IsString requires a JSON string value; file references and encoded blobs
// are accepted opaquely.
func IsString(msg string) Check {
	return func(v any) string {
		if _, ok := v.(string); !ok {
			return msg
		}
		return ""
	}
}

// Boolean requires an actual JSON boolean.
func Boolean(msg string) Check {
	return func(v any) string {
		if _, ok := v.(bool); !ok {
			return msg
		}
		return ""
	}
}

// MustBeTrue requires an actual JSON boolean that is true. A non-boolean and
// a false each produce their own message, distinct from "missing".
func MustBeTrue(notBoolMsg, notTrueMsg string) Check {
	return func(v any) string {
		b, ok := v.(bool)
		if !ok {
			return notBoolMsg
		}
		if !b {
			return notTrueMsg
		}
		return ""
	}
}

// PositiveInt requires an integral JSON number >= 1. Floats and strings fail.
func PositiveInt(msg string) Check {
	return func(v any) string {
		if n, ok := AsInt(v); !ok || n < 1 {
			return msg
		}
		return ""
	}
}

// StringsEach applies an upper length bound to every element of a JSON array
// of strings; non-string elements fail.
func StringsEach(max int, msg string) Check {
	return func(v any) string {
		items, ok := v.([]any)
		if !ok {
			return msg
		}
		for _, item := range items {
			s, isStr := item.(string)
			if !isStr || len(s) > max {
				return msg
			}
		}
		return ""
	}
}

// AsInt extracts an integral value from a decoded JSON payload value.
func AsInt(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	case float64:
		i := int64(n)
		if float64(i) != n {
			return 0, false
		}
		return i, true
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

// ParseID parses a path parameter that must be a positive integer identifier.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
