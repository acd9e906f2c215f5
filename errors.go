package csvskema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType = "invalid_type"
	CodeTooShort    = "too_short" // row has fewer fields than the schema expects
	CodeTooLong     = "too_long"  // row has more fields than the schema expects
	CodeTooSmall    = "too_small"
	CodeTooBig      = "too_big"
	CodeInvalidEnum = "invalid_enum"
	CodeCustom      = "custom"
	CodeParseError  = "parse_error"
	CodeCanceled    = "canceled"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /2/1 is row 2, column 1).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, expected type names, etc.
	Cause   error  // Optional: underlying error.
	// Row and Column are zero-based positions in the table (-1 when unknown).
	Row    int
	Column int
	// Value is the raw field text that failed, when a single field is at fault.
	Value string
	// Params carries structured parameters (e.g., {"expected":2, "got":3})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /1/1
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// First returns the first issue and false when the collection is empty.
func (iss Issues) First() (Issue, bool) {
	if len(iss) == 0 {
		return Issue{}, false
	}
	return iss[0], true
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

var (
	// ErrSourceUnavailable marks every failure to obtain raw text from a Source.
	ErrSourceUnavailable = errors.New("csvskema: source unavailable")
	// ErrSourceTooLarge is returned when a Source exceeds ParseOpt.MaxBytes.
	ErrSourceTooLarge = errors.New("csvskema: source exceeds max bytes")
)

// SourceError reports that the named source could not be read. It matches
// ErrSourceUnavailable with errors.Is regardless of the underlying cause.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("csvskema: read %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying Err so SourceError participates in errors.Unwrap.
func (e *SourceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports ErrSourceUnavailable for every SourceError.
func (e *SourceError) Is(target error) bool { return target == ErrSourceUnavailable }
