package csvskema

// ResultKind discriminates the variants of a Result.
type ResultKind int

const (
	// KindRaw holds the split Table unchanged (no schema was given).
	KindRaw ResultKind = iota
	// KindTyped holds rows transformed by a RowSchema.
	KindTyped
	// KindFailure holds the Issues describing why a RowSchema rejected the table.
	KindFailure
)

func (k ResultKind) String() string {
	switch k {
	case KindRaw:
		return "raw"
	case KindTyped:
		return "typed"
	case KindFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Result is the outcome of Validate/Parse: exactly one of a raw Table, typed
// rows, or a failure. Callers must check Kind (or OK) before reading rows;
// accessors for a variant the Result does not hold return nil.
type Result struct {
	kind    ResultKind
	raw     Table
	typed   [][]any
	failure Issues
}

// RawResult wraps t as a KindRaw Result.
func RawResult(t Table) Result { return Result{kind: KindRaw, raw: t} }

// TypedResult wraps rows as a KindTyped Result.
func TypedResult(rows [][]any) Result { return Result{kind: KindTyped, typed: rows} }

// FailureResult wraps iss as a KindFailure Result.
func FailureResult(iss Issues) Result { return Result{kind: KindFailure, failure: iss} }

// Kind reports which variant r holds.
func (r Result) Kind() ResultKind { return r.kind }

// OK reports whether r holds rows (raw or typed).
func (r Result) OK() bool { return r.kind != KindFailure }

// Raw returns the raw table for KindRaw results and nil otherwise.
func (r Result) Raw() Table { return r.raw }

// Typed returns the transformed rows for KindTyped results and nil otherwise.
func (r Result) Typed() [][]any { return r.typed }

// Failure returns the issues for KindFailure results and nil otherwise.
func (r Result) Failure() Issues { return r.failure }

// Err returns the failure as an error, or nil when r holds rows.
func (r Result) Err() error {
	if r.kind != KindFailure {
		return nil
	}
	return r.failure
}

// Len returns the row count of a successful result and 0 for failures.
func (r Result) Len() int {
	switch r.kind {
	case KindRaw:
		return len(r.raw)
	case KindTyped:
		return len(r.typed)
	default:
		return 0
	}
}

// Rows returns every row as []any regardless of whether r is raw or typed.
// Raw fields are copied into fresh slices; failures yield nil.
func (r Result) Rows() [][]any {
	switch r.kind {
	case KindTyped:
		return r.typed
	case KindRaw:
		out := make([][]any, len(r.raw))
		for i, row := range r.raw {
			vs := make([]any, len(row))
			for j, f := range row {
				vs[j] = f
			}
			out[i] = vs
		}
		return out
	default:
		return nil
	}
}
