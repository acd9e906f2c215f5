package dsl_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	csvskema "github.com/reoring/csvskema"
	g "github.com/reoring/csvskema/dsl"
)

func firstIssue(t *testing.T, err error) csvskema.Issue {
	t.Helper()
	iss, ok := csvskema.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues error, got %v", err)
	}
	return iss[0]
}

func TestStringSchema_Basic(t *testing.T) {
	s := g.String()
	ctx := context.Background()

	v, err := s.Parse(ctx, "hello")
	if err != nil || v != "hello" {
		t.Fatalf("parse ok expected, got v=%v err=%v", v, err)
	}
	// leading/trailing whitespace is the splitter's job, not the schema's
	v, err = s.Parse(ctx, " x ")
	if err != nil || v != " x " {
		t.Fatalf("expected string unchanged, got %q err=%v", v, err)
	}

	_, err = s.Parse(ctx, 1)
	if it := firstIssue(t, err); it.Code != csvskema.CodeInvalidType || it.Params["got"] != "number" {
		t.Fatalf("expected invalid_type got=number, got %+v", it)
	}
}

func TestNumberSchema_StrictRejectsText(t *testing.T) {
	s := g.Number()
	ctx := context.Background()

	for _, in := range []any{1.5, 2, int64(3), json.Number("4.5")} {
		if _, err := s.Parse(ctx, in); err != nil {
			t.Fatalf("expected %T to be accepted, got %v", in, err)
		}
	}
	_, err := s.Parse(ctx, "1")
	it := firstIssue(t, err)
	if it.Code != csvskema.CodeInvalidType || !strings.Contains(it.Hint, "Coerce") || it.Value != "1" {
		t.Fatalf("unexpected issue: %+v", it)
	}
	if _, err := s.Parse(ctx, nil); err == nil {
		t.Fatalf("expected nil to be rejected without Coerce")
	}
}

func TestNumberSchema_Coerce(t *testing.T) {
	s := g.Number().Coerce()
	ctx := context.Background()

	cases := map[string]float64{
		"22":   22,
		" 19 ": 19,
		"":     0,
		"-1.5": -1.5,
		"1e3":  1000,
	}
	for in, want := range cases {
		got, err := s.Parse(ctx, in)
		if err != nil || got != want {
			t.Fatalf("Parse(%q): expected %v, got %v err=%v", in, want, got, err)
		}
	}

	for _, in := range []string{"thirty", "NaN", "Inf", "-Infinity", "12abc"} {
		_, err := s.Parse(ctx, in)
		if it := firstIssue(t, err); it.Code != csvskema.CodeInvalidType {
			t.Fatalf("Parse(%q): expected invalid_type, got %+v", in, it)
		}
	}

	_, err := s.Parse(ctx, "thirty")
	it := firstIssue(t, err)
	if it.Value != "thirty" || it.Cause == nil || !strings.Contains(it.Hint, `"thirty"`) {
		t.Fatalf("expected value, cause and hint, got %+v", it)
	}
	if it.Message != "expected number, got string" || it.Params["expected"] != "number" || it.Params["got"] != "string" {
		t.Fatalf("expected got=string in message and params, got %+v", it)
	}
}

func TestNumberSchema_CoerceLiteralForms(t *testing.T) {
	s := g.Number().Coerce()
	ctx := context.Background()

	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1e3", 1000, true},
		{".5", 0.5, true},
		{"+5", 5, true},
		{"5.", 5, true},
		{"0x10", 16, true},
		{"0XfF", 255, true},
		{"0o17", 15, true},
		{"0b101", 5, true},
		{"1_000", 0, false},
		{"0x1p3", 0, false},
		{"0x1_0", 0, false},
		{"-0x10", 0, false},
		{"0x", 0, false},
		{"0b2", 0, false},
		{"1e", 0, false},
	}
	for _, tc := range cases {
		got, err := s.Parse(ctx, tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("Parse(%q): expected %v, got %v err=%v", tc.in, tc.want, got, err)
			}
			continue
		}
		if it := firstIssue(t, err); it.Code != csvskema.CodeInvalidType || it.Value != tc.in {
			t.Fatalf("Parse(%q): expected invalid_type, got %+v", tc.in, it)
		}
	}
}

func TestNumberSchema_BuilderIsImmutable(t *testing.T) {
	base := g.Number()
	_ = base.Coerce()
	if _, err := base.Parse(context.Background(), "1"); err == nil {
		t.Fatalf("expected Coerce to return a copy")
	}
}

func TestNumberSchema_MinMax(t *testing.T) {
	s := g.Number().Coerce().Min(0).Max(10)
	ctx := context.Background()

	if v, err := s.Parse(ctx, "10"); err != nil || v != 10 {
		t.Fatalf("expected boundary accepted, got v=%v err=%v", v, err)
	}
	_, err := s.Parse(ctx, "11")
	if it := firstIssue(t, err); it.Code != csvskema.CodeTooBig || it.Params["max"] != 10.0 {
		t.Fatalf("expected too_big, got %+v", it)
	}
	_, err = s.Parse(ctx, "-1")
	if it := firstIssue(t, err); it.Code != csvskema.CodeTooSmall || it.Value != "-1" {
		t.Fatalf("expected too_small, got %+v", it)
	}
}

func TestIntSchema(t *testing.T) {
	ctx := context.Background()

	if v, err := g.Int().Parse(ctx, 3.0); err != nil || v != 3 {
		t.Fatalf("expected 3, got v=%v err=%v", v, err)
	}
	if _, err := g.Int().Parse(ctx, 3.5); err == nil {
		t.Fatalf("expected fractional value to fail")
	}
	if _, err := g.Int().Parse(ctx, "3"); err == nil {
		t.Fatalf("expected strict int to reject text")
	}

	c := g.Int().Coerce().Min(1)
	if v, err := c.Parse(ctx, " 42 "); err != nil || v != 42 {
		t.Fatalf("expected 42, got v=%v err=%v", v, err)
	}
	_, err := c.Parse(ctx, "4.2")
	if it := firstIssue(t, err); it.Code != csvskema.CodeInvalidType || it.Cause == nil {
		t.Fatalf("expected invalid_type with cause, got %+v", it)
	}
	_, err = c.Parse(ctx, "0")
	if it := firstIssue(t, err); it.Code != csvskema.CodeTooSmall {
		t.Fatalf("expected too_small, got %+v", it)
	}
}

func TestBoolSchema(t *testing.T) {
	ctx := context.Background()

	if v, err := g.Bool().Parse(ctx, true); err != nil || v != true {
		t.Fatalf("parse ok expected, got v=%v err=%v", v, err)
	}
	if _, err := g.Bool().Parse(ctx, "nope"); err == nil {
		t.Fatalf("expected error for text without Coerce")
	}

	c := g.Bool().Coerce()
	cases := map[string]bool{"tommy": true, "false": true, "0": true, " ": true, "": false}
	for in, want := range cases {
		got, err := c.Parse(ctx, in)
		if err != nil || got != want {
			t.Fatalf("Parse(%q): expected %v, got %v err=%v", in, want, got, err)
		}
	}
	if v, _ := c.Parse(ctx, nil); v {
		t.Fatalf("expected nil to coerce to false")
	}
	if v, _ := c.Parse(ctx, 0.0); v {
		t.Fatalf("expected 0 to coerce to false")
	}
}

func TestEnumSchema(t *testing.T) {
	s := g.Enum("football", "hockey")
	ctx := context.Background()

	if v, err := s.Parse(ctx, "hockey"); err != nil || v != "hockey" {
		t.Fatalf("expected hockey, got v=%v err=%v", v, err)
	}
	_, err := s.Parse(ctx, "rowing")
	it := firstIssue(t, err)
	if it.Code != csvskema.CodeInvalidEnum || it.Hint != "one of football|hockey" || it.Value != "rowing" {
		t.Fatalf("unexpected issue: %+v", it)
	}
}
