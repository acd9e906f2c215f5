package dsl

import (
	"context"
	"strconv"

	csvskema "github.com/reoring/csvskema"
	"github.com/reoring/csvskema/i18n"
	js "github.com/reoring/csvskema/jsonschema"
)

// TupleSchema validates a fixed-arity row positionally. It implements
// csvskema.RowSchema and csvskema.Schema[[]any].
type TupleSchema struct {
	elems []Elem
	rest  Elem
}

// Tuple returns a tuple schema with one element schema per column.
func Tuple(elems ...Elem) *TupleSchema {
	return &TupleSchema{elems: append([]Elem(nil), elems...)}
}

// Rest returns a copy of t that accepts any number of trailing fields, each
// validated by e.
func (t *TupleSchema) Rest(e Elem) *TupleSchema {
	if t == nil {
		return &TupleSchema{rest: e}
	}
	return &TupleSchema{elems: t.elems, rest: e}
}

// Len returns the number of positional elements.
func (t *TupleSchema) Len() int {
	if t == nil {
		return 0
	}
	return len(t.elems)
}

// ValidateRow implements csvskema.RowSchema. A nil *TupleSchema reports a
// parse_error issue for every row.
func (t *TupleSchema) ValidateRow(ctx context.Context, fields []string) ([]any, error) {
	if t == nil {
		return nil, nilTupleIssue()
	}
	vs := make([]any, len(fields))
	for i, f := range fields {
		vs[i] = f
	}
	return t.parseValues(ctx, vs)
}

// Parse accepts []string, csvskema.Row or []any.
func (t *TupleSchema) Parse(ctx context.Context, v any) ([]any, error) {
	if t == nil {
		return nil, nilTupleIssue()
	}
	switch src := v.(type) {
	case []string:
		return t.ValidateRow(ctx, src)
	case csvskema.Row:
		return t.ValidateRow(ctx, src)
	case []any:
		return t.parseValues(ctx, src)
	default:
		return nil, csvskema.Issues{{Path: "/", Code: csvskema.CodeInvalidType, Message: i18n.T(csvskema.CodeInvalidType, nil),
			Hint: "expected array", Row: -1, Column: -1}}
	}
}

func (t *TupleSchema) parseValues(ctx context.Context, src []any) ([]any, error) {
	n := len(t.elems)
	if len(src) < n {
		return nil, arityIssue(csvskema.CodeTooShort, n, len(src))
	}
	if len(src) > n && t.rest == nil {
		return nil, arityIssue(csvskema.CodeTooLong, n, len(src))
	}
	res := make([]any, len(src))
	var out csvskema.Issues
	for i := range src {
		e := t.rest
		if i < n {
			e = t.elems[i]
		}
		ev, err := e.ParseAny(ctx, src[i])
		if err != nil {
			base := csvskema.Root().Index(i)
			iss, ok := csvskema.AsIssues(err)
			if !ok {
				iss = csvskema.Issues{{Path: "/", Code: csvskema.CodeParseError, Message: err.Error(), Cause: err, Row: -1, Column: -1}}
			}
			rb := csvskema.Rebase(base, iss)
			for k := range rb {
				rb[k].Column = i
			}
			out = csvskema.AppendIssues(out, rb...)
			if csvskema.IsFailFast(ctx) {
				return nil, out
			}
			continue
		}
		res[i] = ev
	}
	if len(out) > 0 {
		return nil, out
	}
	return res, nil
}

func nilTupleIssue() csvskema.Issues {
	return csvskema.Issues{{Path: "/", Code: csvskema.CodeParseError, Message: "nil tuple schema", Row: -1, Column: -1}}
}

func arityIssue(code string, expected, got int) csvskema.Issues {
	data := map[string]string{"expected": strconv.Itoa(expected), "got": strconv.Itoa(got)}
	return csvskema.Issues{{
		Path:    "/",
		Code:    code,
		Message: i18n.T(code, data),
		Params:  map[string]any{"expected": expected, "got": got},
		Row:     -1,
		Column:  -1,
	}}
}

// JSONSchema projects the tuple as a prefixItems array.
func (t *TupleSchema) JSONSchema() (*js.Schema, error) {
	if t == nil {
		return nil, nilTupleIssue()
	}
	items := make([]*js.Schema, 0, len(t.elems))
	for _, e := range t.elems {
		es, err := e.JSONSchema()
		if err != nil {
			return nil, err
		}
		items = append(items, es)
	}
	n := len(t.elems)
	s := &js.Schema{Type: "array", PrefixItems: items, MinItems: &n}
	if t.rest == nil {
		m := n
		s.MaxItems = &m
		s.Items = false
	} else {
		rs, err := t.rest.JSONSchema()
		if err != nil {
			return nil, err
		}
		s.Items = rs
	}
	return s, nil
}
