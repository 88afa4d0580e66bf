package coerce_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/yudhapratama/sakubudget-go/internal/coerce"

	"github.com/shopspring/decimal"
)

func TestFloat64(t *testing.T) {
	cases := []struct {
		name string
		in   any
		def  float64
		want float64
	}{
		{"float", 12.5, 0, 12.5},
		{"int", 7, 0, 7},
		{"numeric string", "2000000", 0, 2000000},
		{"padded string", "  99.9 ", 0, 99.9},
		{"garbage string", "abc", 3.3, 3.3},
		{"nil", nil, 1.1, 1.1},
		{"map", map[string]any{}, 2.2, 2.2},
	}
	for _, tc := range cases {
		if got := coerce.Float64(tc.in, tc.def); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFloat64_JSONNumber(t *testing.T) {
	dec := json.NewDecoder(strings.NewReader(`{"amount": 900000.25}`))
	dec.UseNumber()
	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := coerce.Float64(payload["amount"], 0); got != 900000.25 {
		t.Errorf("got %v, want 900000.25", got)
	}
}

func TestInt(t *testing.T) {
	if got := coerce.Int("42", 0); got != 42 {
		t.Errorf("got %d, want 42", got)
	}
	if got := coerce.Int(13.9, 0); got != 13 {
		t.Errorf("fractional float: got %d, want 13", got)
	}
	if got := coerce.Int(nil, -1); got != -1 {
		t.Errorf("nil: got %d, want -1", got)
	}
}

func TestString(t *testing.T) {
	if got := coerce.String(150000.0, ""); got != "150000" {
		t.Errorf("got %q", got)
	}
	if got := coerce.String(nil, "Unknown"); got != "Unknown" {
		t.Errorf("nil: got %q, want Unknown", got)
	}
	if got := coerce.String([]any{}, "def"); got != "def" {
		t.Errorf("slice: got %q, want def", got)
	}
}

func TestDecimal(t *testing.T) {
	want := decimal.RequireFromString("2000000")
	if got := coerce.Decimal("2000000", decimal.Zero); !got.Equal(want) {
		t.Errorf("string: got %s", got)
	}
	if got := coerce.Decimal(nil, want); !got.Equal(want) {
		t.Errorf("nil: got %s", got)
	}
	if got := coerce.Decimal("not-a-number", decimal.Zero); !got.IsZero() {
		t.Errorf("garbage: got %s, want 0", got)
	}
}

func TestTime(t *testing.T) {
	def := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	got := coerce.Time("2025-06-15", def)
	if got.Year() != 2025 || got.Month() != time.June || got.Day() != 15 {
		t.Errorf("date-only: got %v", got)
	}
	if got := coerce.Time(12345, def); !got.Equal(def) {
		t.Errorf("non-string: got %v, want default", got)
	}
}

func TestNested(t *testing.T) {
	payload := map[string]any{
		"spending": map[string]any{
			"needs": map[string]any{"spent": 900000.0},
		},
	}

	got := coerce.Float64(coerce.Nested(payload, []string{"spending", "needs", "spent"}, nil), 0)
	if got != 900000 {
		t.Errorf("deep path: got %v, want 900000", got)
	}

	if got := coerce.Nested(payload, []string{"spending", "missing", "spent"}, "def"); got != "def" {
		t.Errorf("missing segment: got %v, want def", got)
	}
	if got := coerce.Nested(payload, []string{"spending", "needs", "spent", "deeper"}, "def"); got != "def" {
		t.Errorf("walk through leaf: got %v, want def", got)
	}
	if got := coerce.Nested(nil, []string{"a"}, "def"); got != "def" {
		t.Errorf("nil root: got %v, want def", got)
	}
	if got := coerce.Nested(payload, nil, "def"); got != "def" {
		t.Errorf("empty path: got %v, want def", got)
	}
}

func TestNestedDecimal(t *testing.T) {
	payload := map[string]any{
		"dashboard": map[string]any{"monthly_income": "2000000"},
	}
	want := decimal.NewFromInt(2000000)
	if got := coerce.NestedDecimal(payload, []string{"dashboard", "monthly_income"}, decimal.Zero); !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
}
