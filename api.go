package csvskema

import (
	"context"

	js "github.com/reoring/csvskema/jsonschema"
)

// Schema is a typed field schema: it transforms one raw value into T and
// returns Issues when the value is not acceptable.
type Schema[T any] interface {
	// Parse transforms an unknown input into T (Coerce -> Validate -> Refine).
	Parse(ctx context.Context, v any) (T, error)
	// JSONSchema projects the schema into a JSON Schema representation.
	JSONSchema() (*js.Schema, error)
}

// RowSchema validates and transforms one Row. Rejections are reported as an
// Issues error whose paths are relative to the row ("/" for the row itself,
// "/<column>" for a field). Any other error is treated as a parse_error.
type RowSchema interface {
	ValidateRow(ctx context.Context, fields []string) ([]any, error)
}

// RowSchemaFunc adapts a plain function to RowSchema.
type RowSchemaFunc func(ctx context.Context, fields []string) ([]any, error)

// ValidateRow calls f(ctx, fields).
func (f RowSchemaFunc) ValidateRow(ctx context.Context, fields []string) ([]any, error) {
	return f(ctx, fields)
}

// ---- Convenience wrappers (Zod-like entry points) ----

// Parse splits text and validates it against s. A nil s yields the raw table.
func Parse(ctx context.Context, text string, s RowSchema, opts ...ParseOpt) Result {
	return Validate(ctx, Split(text), s, opts...)
}

// ParseFrom reads the whole of src and parses it. The error is non-nil only
// when src could not be read; schema failures are reported in the Result.
func ParseFrom(ctx context.Context, src Source, s RowSchema, opts ...ParseOpt) (Result, error) {
	opt := lastOpt(opts)
	text, err := ReadSource(ctx, src, opt.MaxBytes)
	if err != nil {
		return Result{}, err
	}
	return Validate(ctx, Split(text), s, opts...), nil
}

// ParseFile is ParseFrom over FileSource(path).
func ParseFile(ctx context.Context, path string, s RowSchema, opts ...ParseOpt) (Result, error) {
	return ParseFrom(ctx, FileSource(path), s, opts...)
}

// SafeParse parses text, returning the result together with r.OK().
func SafeParse(ctx context.Context, text string, s RowSchema) (Result, bool) {
	r := Parse(ctx, text, s)
	return r, r.OK()
}

// Is returns true if every row of text conforms to s.
func Is(ctx context.Context, text string, s RowSchema) bool {
	return Parse(ctx, text, s).OK()
}

// ---- Parse-time context options (internal wiring, exported for subpackages) ----

type contextKey int

const (
	_ctxKeyFailFast contextKey = iota
)

// WithFailFast returns a child context that marks fail-fast parsing behavior.
// This is set by Validate based on ParseOpt and consumed by schema implementations.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current parse should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}
