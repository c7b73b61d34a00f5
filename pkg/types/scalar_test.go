package types_test

import (
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-schema/pkg/types"
)

func TestStringConvertCoercesTextLikeInput(t *testing.T) {
	cases := []struct {
		name string
		raw  any
		want string
	}{
		{name: "string", raw: "hello", want: "hello"},
		{name: "bytes", raw: []byte("hello"), want: "hello"},
		{name: "int", raw: 42, want: "42"},
		{name: "int64", raw: int64(-7), want: "-7"},
		{name: "float", raw: 1.5, want: "1.5"},
	}

	typ := types.String()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := typ.Convert(tc.raw)
			if err != nil {
				t.Fatalf("Convert(%v) returned error: %v", tc.raw, err)
			}
			if got != tc.want {
				t.Fatalf("Convert(%v) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestStringConvertRejectsNil(t *testing.T) {
	typ := types.String()
	if _, err := typ.Convert(nil); err == nil {
		t.Fatal("expected conversion error for nil input")
	} else {
		var cerr *types.ConversionError
		if !errors.As(err, &cerr) {
			t.Fatalf("expected *ConversionError, got %T", err)
		}
	}
}

func TestStringSanitizedStripsMarkup(t *testing.T) {
	typ := types.String(types.Sanitized())
	got, err := typ.Convert(`<script>alert("x")</script>Genius`)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if got != "Genius" {
		t.Fatalf("expected sanitized value %q, got %q", "Genius", got)
	}
}

func TestIntConvert(t *testing.T) {
	typ := types.Int()

	cases := []struct {
		name string
		raw  any
		want int64
	}{
		{name: "int", raw: 4, want: 4},
		{name: "numeric string", raw: "1", want: 1},
		{name: "whole float", raw: float64(9), want: 9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := typ.Convert(tc.raw)
			if err != nil {
				t.Fatalf("Convert(%v) returned error: %v", tc.raw, err)
			}
			if got != tc.want {
				t.Fatalf("Convert(%v) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}

	for _, raw := range []any{"abc", 1.25, nil, []int{1}} {
		if _, err := typ.Convert(raw); err == nil {
			t.Fatalf("Convert(%v) should fail", raw)
		}
	}
}

func TestDateTimeConvert(t *testing.T) {
	typ := types.DateTime()

	now := time.Now()
	got, err := typ.Convert(now.Format("2006-01-02T15:04:05.999999999"))
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	parsed, ok := got.(time.Time)
	if !ok {
		t.Fatalf("expected time.Time, got %T", got)
	}
	if !parsed.Equal(now.Truncate(time.Nanosecond)) {
		t.Fatalf("expected %v, got %v", now, parsed)
	}

	native, err := typ.Convert(now)
	if err != nil {
		t.Fatalf("Convert(time.Time) returned error: %v", err)
	}
	if !native.(time.Time).Equal(now) {
		t.Fatalf("native time should pass through unchanged")
	}

	if _, err := typ.Convert("not-a-date"); err == nil {
		t.Fatal("expected conversion error for unparsable input")
	}
}

func TestCheckExpressions(t *testing.T) {
	typ := types.Int(types.Check(`value > 0`))

	if err := typ.Validate(int64(5)); err != nil {
		t.Fatalf("Validate(5) returned error: %v", err)
	}

	err := typ.Validate(int64(-1))
	if err == nil {
		t.Fatal("expected validation failure for -1")
	}
	var verr *types.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Messages) != 1 {
		t.Fatalf("expected one message, got %v", verr.Messages)
	}
}

func TestCheckPanicsOnBadExpression(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid expression")
		}
	}()
	types.Check("value >")
}

func TestDefaultAndRequiredOptions(t *testing.T) {
	typ := types.String(types.Required(), types.Default("Doggy"))
	if !typ.Required() {
		t.Fatal("expected required")
	}
	def, ok := typ.Default()
	if !ok || def != "Doggy" {
		t.Fatalf("expected default %q, got %v (%v)", "Doggy", def, ok)
	}
}
