package csvskema

import (
	"context"
	"strconv"
	"strings"

	"github.com/reoring/csvskema/i18n"
)

// Validate applies s to every row of t.
//
// With a nil s the table is returned unchanged as a KindRaw result. Otherwise
// every row goes through s.ValidateRow; if all rows pass the transformed rows
// are returned in order as KindTyped, and if any row fails the whole call
// yields a single KindFailure result. By default validation stops at the first
// failing row; ParseOpt.CollectAll keeps going and reports every failing row,
// while ParseOpt.FailFast keeps only the first issue.
//
// Issue.Message is rendered by the process-wide i18n translator at the time
// of the call, so i18n.SetLanguage between two calls on the same input
// changes the messages. Code, Path, Row, Column, Value and Params do not
// depend on the language.
func Validate(ctx context.Context, t Table, s RowSchema, opts ...ParseOpt) Result {
	if s == nil {
		return RawResult(t)
	}
	opt := lastOpt(opts)
	if opt.FailFast {
		ctx = WithFailFast(ctx, true)
	}
	out := make([][]any, 0, len(t))
	var failure Issues
	for i, row := range t {
		if err := ctx.Err(); err != nil {
			it := Root().Index(i).Issue(CodeCanceled, err.Error())
			it.Cause = err
			it.Row = i
			return FailureResult(AppendIssues(failure, it))
		}
		vals, err := s.ValidateRow(ctx, row)
		if err != nil {
			failure = AppendIssues(failure, rowIssues(i, row, err)...)
			if opt.FailFast {
				failure = failure[:1]
				break
			}
			if !opt.CollectAll {
				break
			}
			continue
		}
		if failure == nil {
			out = append(out, vals)
		}
	}
	if failure != nil {
		return FailureResult(failure)
	}
	return TypedResult(out)
}

// rowIssues re-roots a row-level error under /<row> and fills Row, Column and
// Value from the table. The column is taken from the first segment of the
// row-relative path.
func rowIssues(i int, row Row, err error) Issues {
	base := Root().Index(i)
	iss, ok := AsIssues(err)
	if !ok || len(iss) == 0 {
		msg := i18n.T(CodeParseError, nil)
		if !ok {
			msg = err.Error()
		}
		it := Root().Issue(CodeParseError, msg)
		it.Cause = err
		iss = Issues{it}
	}
	cols := make([]int, len(iss))
	for k, it := range iss {
		cols[k] = columnOf(it.Path)
	}
	out := Rebase(base, iss)
	for k := range out {
		out[k].Row = i
		out[k].Column = cols[k]
		if c := cols[k]; c >= 0 && c < len(row) && out[k].Value == "" {
			out[k].Value = row[c]
		}
	}
	return out
}

// columnOf returns the leading index of a row-relative pointer, or -1.
func columnOf(path string) int {
	p := strings.TrimPrefix(path, "/")
	if j := strings.IndexByte(p, '/'); j >= 0 {
		p = p[:j]
	}
	n, err := strconv.Atoi(p)
	if err != nil || n < 0 {
		return -1
	}
	return n
}
