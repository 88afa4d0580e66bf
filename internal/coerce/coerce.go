// Package coerce is the defensive boundary between untrusted backend
// payloads and the numeric engine. Every accessor takes an arbitrary
// value and a default, and never fails: null, wrong types, and
// unparsable strings all collapse into the default.
package coerce

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Float64 converts numeric values and numeric strings to float64.
func Float64(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return def
}

// Int converts numeric values and numeric strings to int.
// Fractional floats truncate toward zero.
func Int(v any, def int) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		if f, err := n.Float64(); err == nil {
			return int(f)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return int(f)
		}
	}
	return def
}

// String converts strings and stringable numerics to string.
func String(v any, def string) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	}
	return def
}

// Bool converts bools and the usual string spellings to bool.
func Bool(v any, def bool) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
			return parsed
		}
	}
	return def
}

// Decimal converts numeric values and numeric strings to a decimal,
// the representation all engine arithmetic runs on.
func Decimal(v any, def decimal.Decimal) decimal.Decimal {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n)
	case float32:
		return decimal.NewFromFloat32(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case json.Number:
		if d, err := decimal.NewFromString(n.String()); err == nil {
			return d
		}
	case string:
		if d, err := decimal.NewFromString(strings.TrimSpace(n)); err == nil {
			return d
		}
	}
	return def
}

// Map returns v as a map[string]any, or the default.
func Map(v any, def map[string]any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return def
}

// Slice returns v as a []any, or the default.
func Slice(v any, def []any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return def
}

// Time parses RFC3339 and date-only timestamps, falling back to def.
func Time(v any, def time.Time) time.Time {
	s, ok := v.(string)
	if !ok {
		return def
	}
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return def
}

// Nested walks path through nested maps and returns the value at the
// end, or def the first time a segment is missing, a non-map shows up
// mid-path, or the root is nil.
func Nested(m map[string]any, path []string, def any) any {
	if m == nil || len(path) == 0 {
		return def
	}
	current := m
	for i, key := range path {
		v, ok := current[key]
		if !ok {
			return def
		}
		if i == len(path)-1 {
			return v
		}
		current, ok = v.(map[string]any)
		if !ok {
			return def
		}
	}
	return def
}

// NestedDecimal is Nested followed by Decimal, the common case for
// money fields buried in a payload.
func NestedDecimal(m map[string]any, path []string, def decimal.Decimal) decimal.Decimal {
	return Decimal(Nested(m, path, nil), def)
}
