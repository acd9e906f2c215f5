package dsl

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	csvskema "github.com/reoring/csvskema"
	"github.com/reoring/csvskema/i18n"
	js "github.com/reoring/csvskema/jsonschema"
)

// String returns the string field schema. Any string is accepted unchanged.
func String() StringBuilder { return stringSchema{} }

// StringBuilder is a Schema[string] usable as a tuple element.
type StringBuilder interface {
	csvskema.Schema[string]
	Elem
}

// NumberBuilder exposes chaining options for number schemas while implementing Schema[float64].
type NumberBuilder interface {
	csvskema.Schema[float64]
	Elem
	// Coerce accepts strings: "" becomes 0 and other text must parse as a
	// finite number.
	Coerce() NumberBuilder
	Min(n float64) NumberBuilder
	Max(n float64) NumberBuilder
}

// Number returns the float64 schema implementation (no string coerce by default).
func Number() NumberBuilder { return numberSchema{} }

// IntBuilder exposes chaining options for integer schemas.
type IntBuilder interface {
	csvskema.Schema[int]
	Elem
	// Coerce accepts strings: "" becomes 0 and other text must be a base-10 integer.
	Coerce() IntBuilder
	Min(n int) IntBuilder
	Max(n int) IntBuilder
}

// Int returns the int schema implementation (no string coerce by default).
func Int() IntBuilder { return intSchema{} }

// BoolBuilder exposes chaining options for bool schemas.
type BoolBuilder interface {
	csvskema.Schema[bool]
	Elem
	// Coerce accepts any string; only "" is false.
	Coerce() BoolBuilder
}

// Bool returns the bool schema implementation (no string coerce by default).
func Bool() BoolBuilder { return boolSchema{} }

// Enum returns a string schema limited to values.
func Enum(values ...string) StringBuilder {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return enumSchema{values: append([]string(nil), values...), set: set}
}

// ---------------- string ----------------

type stringSchema struct{}

func (stringSchema) Parse(ctx context.Context, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", typeIssue("string", v, "")
	}
	return s, nil
}

func (s stringSchema) ParseAny(ctx context.Context, v any) (any, error) { return s.Parse(ctx, v) }

func (stringSchema) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "string"}, nil }

type enumSchema struct {
	values []string
	set    map[string]struct{}
}

func (e enumSchema) Parse(ctx context.Context, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", typeIssue("string", v, "")
	}
	if _, ok := e.set[s]; !ok {
		return "", csvskema.Issues{{Path: "/", Code: csvskema.CodeInvalidEnum, Message: i18n.T(csvskema.CodeInvalidEnum, nil),
			Hint: "one of " + strings.Join(e.values, "|"), Value: s, Row: -1, Column: -1}}
	}
	return s, nil
}

func (e enumSchema) ParseAny(ctx context.Context, v any) (any, error) { return e.Parse(ctx, v) }

func (e enumSchema) JSONSchema() (*js.Schema, error) {
	vals := make([]any, len(e.values))
	for i, v := range e.values {
		vals[i] = v
	}
	return &js.Schema{Type: "string", Enum: vals}, nil
}

// ---------------- number ----------------

type numberSchema struct {
	coerce bool
	min    *float64
	max    *float64
}

func (n numberSchema) Coerce() NumberBuilder       { n.coerce = true; return n }
func (n numberSchema) Min(v float64) NumberBuilder { n.min = &v; return n }
func (n numberSchema) Max(v float64) NumberBuilder { n.max = &v; return n }

func (n numberSchema) Parse(ctx context.Context, v any) (float64, error) {
	f, err := n.toFloat(v)
	if err != nil {
		return 0, err
	}
	if n.min != nil && f < *n.min {
		return 0, boundIssue(csvskema.CodeTooSmall, "min", *n.min, f)
	}
	if n.max != nil && f > *n.max {
		return 0, boundIssue(csvskema.CodeTooBig, "max", *n.max, f)
	}
	return f, nil
}

func (n numberSchema) toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, typeIssue("number", v, err.Error())
		}
		return f, nil
	case string:
		if !n.coerce {
			return 0, typeIssue("number", v, "use Coerce() to accept numeric text")
		}
		return coerceFloat(t)
	case bool:
		if !n.coerce {
			return 0, typeIssue("number", v, "")
		}
		if t {
			return 1, nil
		}
		return 0, nil
	case nil:
		if n.coerce {
			return 0, nil
		}
	}
	return 0, typeIssue("number", v, "")
}

// coerceFloat reads decimal text, plus unsigned 0x, 0o and 0b integers.
// Digit separators, hex floats and non-finite values are rejected.
func coerceFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	f, err := parseNumberText(s)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		it := csvskema.Issue{Path: "/", Code: csvskema.CodeInvalidType,
			Message: i18n.T("expected", map[string]string{"expected": "number", "got": "string"}),
			Hint:    "cannot parse " + strconv.Quote(s) + " as a number", Value: s, Row: -1, Column: -1,
			Params:  map[string]any{"expected": "number", "got": "string"}}
		if err != nil {
			it.Cause = err
		}
		return 0, csvskema.Issues{it}
	}
	return f, nil
}

func parseNumberText(s string) (float64, error) {
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			u, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return 0, err
			}
			return float64(u), nil
		}
	}
	if strings.ContainsAny(s, "_xX") {
		return 0, &strconv.NumError{Func: "ParseFloat", Num: s, Err: strconv.ErrSyntax}
	}
	return strconv.ParseFloat(s, 64)
}

func (n numberSchema) ParseAny(ctx context.Context, v any) (any, error) { return n.Parse(ctx, v) }

func (n numberSchema) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{Type: "number", Minimum: n.min, Maximum: n.max}
	if n.coerce {
		s.Description = "coerced from text"
	}
	return s, nil
}

// ---------------- int ----------------

type intSchema struct {
	coerce bool
	min    *int
	max    *int
}

func (s intSchema) Coerce() IntBuilder   { s.coerce = true; return s }
func (s intSchema) Min(v int) IntBuilder { s.min = &v; return s }
func (s intSchema) Max(v int) IntBuilder { s.max = &v; return s }

func (s intSchema) Parse(ctx context.Context, v any) (int, error) {
	i, err := s.toInt(v)
	if err != nil {
		return 0, err
	}
	if s.min != nil && i < *s.min {
		return 0, boundIssue(csvskema.CodeTooSmall, "min", float64(*s.min), float64(i))
	}
	if s.max != nil && i > *s.max {
		return 0, boundIssue(csvskema.CodeTooBig, "max", float64(*s.max), float64(i))
	}
	return i, nil
}

func (s intSchema) toInt(v any) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case int32:
		return int(t), nil
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) {
			return 0, typeIssue("integer", v, "value has a fractional part")
		}
		return int(t), nil
	case json.Number:
		i64, err := t.Int64()
		if err != nil {
			return 0, typeIssue("integer", v, err.Error())
		}
		return int(i64), nil
	case string:
		if !s.coerce {
			return 0, typeIssue("integer", v, "use Coerce() to accept numeric text")
		}
		txt := strings.TrimSpace(t)
		if txt == "" {
			return 0, nil
		}
		i64, err := strconv.ParseInt(txt, 10, 0)
		if err != nil {
			return 0, csvskema.Issues{{Path: "/", Code: csvskema.CodeInvalidType,
				Message: i18n.T("expected", map[string]string{"expected": "integer", "got": "string"}),
				Hint:    "cannot parse " + strconv.Quote(txt) + " as an integer", Value: txt, Cause: err, Row: -1, Column: -1}}
		}
		return int(i64), nil
	}
	return 0, typeIssue("integer", v, "")
}

func (s intSchema) ParseAny(ctx context.Context, v any) (any, error) { return s.Parse(ctx, v) }

func (s intSchema) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Type: "integer"}
	if s.min != nil {
		f := float64(*s.min)
		out.Minimum = &f
	}
	if s.max != nil {
		f := float64(*s.max)
		out.Maximum = &f
	}
	if s.coerce {
		out.Description = "coerced from text"
	}
	return out, nil
}

// ---------------- bool ----------------

type boolSchema struct{ coerce bool }

func (b boolSchema) Coerce() BoolBuilder { b.coerce = true; return b }

func (b boolSchema) Parse(ctx context.Context, v any) (bool, error) {
	var out bool
	switch t := v.(type) {
	case bool:
		out = t
	case string:
		if !b.coerce {
			return false, typeIssue("boolean", v, "use Coerce() to accept text")
		}
		// truthiness of the text, not its meaning: "false" is true
		out = t != ""
	case nil:
		if !b.coerce {
			return false, typeIssue("boolean", v, "")
		}
	case float64:
		if !b.coerce {
			return false, typeIssue("boolean", v, "")
		}
		out = t != 0 && !math.IsNaN(t)
	case int:
		if !b.coerce {
			return false, typeIssue("boolean", v, "")
		}
		out = t != 0
	default:
		return false, typeIssue("boolean", v, "")
	}
	return out, nil
}

func (b boolSchema) ParseAny(ctx context.Context, v any) (any, error) { return b.Parse(ctx, v) }

func (b boolSchema) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{Type: "boolean"}
	if b.coerce {
		s.Description = "coerced from text"
	}
	return s, nil
}

// ---- helpers ----

func typeIssue(expected string, v any, hint string) csvskema.Issues {
	got := typeName(v)
	it := csvskema.Issue{
		Path:    "/",
		Code:    csvskema.CodeInvalidType,
		Message: i18n.T("expected", map[string]string{"expected": expected, "got": got}),
		Hint:    hint,
		Params:  map[string]any{"expected": expected, "got": got},
		Row:     -1,
		Column:  -1,
	}
	if s, ok := v.(string); ok {
		it.Value = s
	}
	return csvskema.Issues{it}
}

func boundIssue(code, key string, bound, got float64) csvskema.Issues {
	return csvskema.Issues{{
		Path:    "/",
		Code:    code,
		Message: i18n.T(code, nil),
		Params:  map[string]any{key: bound, "got": got},
		Value:   strconv.FormatFloat(got, 'g', -1, 64),
		Row:     -1,
		Column:  -1,
	}}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, json.Number:
		return "number"
	case []any, []string, csvskema.Row:
		return "array"
	default:
		return "unknown"
	}
}
