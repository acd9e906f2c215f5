package dsl_test

import (
	"context"
	"testing"

	csvskema "github.com/reoring/csvskema"
	g "github.com/reoring/csvskema/dsl"
)

func TestOptional_EmptyFieldIsNil(t *testing.T) {
	s := g.Tuple(g.String(), g.Optional(g.Number().Coerce()))
	ctx := context.Background()

	got, err := s.ValidateRow(ctx, []string{"Bob", ""})
	if err != nil || got[1] != nil {
		t.Fatalf("expected nil for empty optional field, got %#v err=%v", got, err)
	}
	got, err = s.ValidateRow(ctx, []string{"Bob", "7"})
	if err != nil || got[1] != 7.0 {
		t.Fatalf("expected 7, got %#v err=%v", got, err)
	}
	if _, err := s.ValidateRow(ctx, []string{"Bob", "x"}); err == nil {
		t.Fatalf("expected non-empty invalid text to still fail")
	}
}

func TestRefine_CustomIssue(t *testing.T) {
	even := func(v any) bool { return v.(int)%2 == 0 }
	e := g.SchemaOf[int](g.Int().Coerce()).Refine("must be even", even)
	s := g.Tuple(e)
	ctx := context.Background()

	if _, err := s.ValidateRow(ctx, []string{"4"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err := s.ValidateRow(ctx, []string{"3"})
	it := firstIssue(t, err)
	if it.Code != csvskema.CodeCustom || it.Message != "must be even" || it.Value != "3" || it.Path != "/0" {
		t.Fatalf("unexpected issue: %+v", it)
	}

	// parse errors from the wrapped element win over the predicate
	_, err = s.ValidateRow(ctx, []string{"x"})
	if it := firstIssue(t, err); it.Code != csvskema.CodeInvalidType {
		t.Fatalf("expected invalid_type, got %+v", it)
	}

	anon := g.Tuple(g.Refine(g.String(), "", func(v any) bool { return v != "" }))
	_, err = anon.ValidateRow(ctx, []string{""})
	if it := firstIssue(t, err); it.Message != "invalid value" {
		t.Fatalf("expected default custom message, got %q", it.Message)
	}
}

func TestSchemaOf_KeepsOrig(t *testing.T) {
	n := g.Number()
	ad := g.SchemaOf[float64](n)
	if ad.Orig() == nil {
		t.Fatalf("expected original schema")
	}
	var zero g.AnyAdapter
	if v, err := zero.ParseAny(context.Background(), "x"); err != nil || v != "x" {
		t.Fatalf("expected zero adapter to pass through, got %v %v", v, err)
	}
}
