package dsl

import (
	"context"

	csvskema "github.com/reoring/csvskema"
	"github.com/reoring/csvskema/i18n"
	js "github.com/reoring/csvskema/jsonschema"
)

// Elem is one positional element of a Tuple. Every builder in this package
// implements it; SchemaOf adapts any other csvskema.Schema[T].
type Elem interface {
	ParseAny(ctx context.Context, v any) (any, error)
	JSONSchema() (*js.Schema, error)
}

// AnyAdapter adapts Schema[T] to an any-typed element wrapper.
// It keeps the original schema for advanced integrations.
type AnyAdapter struct {
	parse      func(context.Context, any) (any, error)
	jsonSchema func() (*js.Schema, error)
	orig       any
}

// SchemaOf converts an arbitrary Schema[T] into a tuple element.
func SchemaOf[T any](s csvskema.Schema[T]) AnyAdapter {
	return AnyAdapter{
		parse:      func(ctx context.Context, v any) (any, error) { return s.Parse(ctx, v) },
		jsonSchema: s.JSONSchema,
		orig:       s,
	}
}

func adapt(e Elem) AnyAdapter {
	if ad, ok := e.(AnyAdapter); ok {
		return ad
	}
	return AnyAdapter{parse: e.ParseAny, jsonSchema: e.JSONSchema, orig: e}
}

// Orig returns the original underlying schema or builder used to create this adapter.
func (ad AnyAdapter) Orig() any { return ad.orig }

// ParseAny runs the wrapped schema.
func (ad AnyAdapter) ParseAny(ctx context.Context, v any) (any, error) {
	if ad.parse == nil {
		return v, nil
	}
	return ad.parse(ctx, v)
}

// JSONSchema returns the wrapped schema's projection.
func (ad AnyAdapter) JSONSchema() (*js.Schema, error) {
	if ad.jsonSchema == nil {
		return &js.Schema{}, nil
	}
	return ad.jsonSchema()
}

// Optional wraps e so that an empty field yields nil instead of being parsed.
func Optional(e Elem) AnyAdapter {
	ad := adapt(e)
	prev := ad.parse
	out := ad
	out.parse = func(ctx context.Context, v any) (any, error) {
		if v == nil {
			return nil, nil
		}
		if s, ok := v.(string); ok && s == "" {
			return nil, nil
		}
		if prev == nil {
			return v, nil
		}
		return prev(ctx, v)
	}
	return out
}

// Optional enables fluent chaining: dsl.SchemaOf(s).Optional()
func (ad AnyAdapter) Optional() AnyAdapter { return Optional(ad) }

// Refine wraps e with a predicate over the parsed value. A false result is
// reported as a custom issue carrying msg.
func Refine(e Elem, msg string, pred func(v any) bool) AnyAdapter {
	ad := adapt(e)
	prev := ad.parse
	out := ad
	out.parse = func(ctx context.Context, v any) (any, error) {
		val := v
		if prev != nil {
			pv, err := prev(ctx, v)
			if err != nil {
				return nil, err
			}
			val = pv
		}
		if !pred(val) {
			m := msg
			if m == "" {
				m = i18n.T(csvskema.CodeCustom, nil)
			}
			it := csvskema.Issue{Path: "/", Code: csvskema.CodeCustom, Message: m, Row: -1, Column: -1}
			if s, ok := v.(string); ok {
				it.Value = s
			}
			return nil, csvskema.Issues{it}
		}
		return val, nil
	}
	return out
}

// Refine enables fluent chaining: dsl.SchemaOf(s).Refine("must be even", isEven)
func (ad AnyAdapter) Refine(msg string, pred func(v any) bool) AnyAdapter {
	return Refine(ad, msg, pred)
}
