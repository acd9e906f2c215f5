// Package render writes parse results for people (Text) and programs (JSON).
package render

import (
	"fmt"
	"io"

	j "github.com/goccy/go-json"

	csvskema "github.com/reoring/csvskema"
	js "github.com/reoring/csvskema/jsonschema"
)

// Document is the JSON shape of a Result. Exactly one of Rows or Issues is
// set; successful results with no rows carry neither.
type Document struct {
	ParseID string     `json:"parse_id,omitempty"`
	Source  string     `json:"source,omitempty"`
	Kind    string     `json:"kind"`
	Rows    [][]any    `json:"rows,omitempty"`
	Issues  []IssueDoc `json:"issues,omitempty"`
}

// IssueDoc is the JSON shape of one csvskema.Issue.
type IssueDoc struct {
	Path    string         `json:"path"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Hint    string         `json:"hint,omitempty"`
	Row     int            `json:"row"`
	Column  int            `json:"column"`
	Value   string         `json:"value,omitempty"`
	Params  map[string]any `json:"params,omitempty"`
}

// NewDocument converts res.
func NewDocument(res csvskema.Result) Document {
	doc := Document{Kind: res.Kind().String()}
	if !res.OK() {
		iss := res.Failure()
		doc.Issues = make([]IssueDoc, 0, len(iss))
		for _, it := range iss {
			doc.Issues = append(doc.Issues, IssueDoc{
				Path:    it.Path,
				Code:    it.Code,
				Message: it.Message,
				Hint:    it.Hint,
				Row:     it.Row,
				Column:  it.Column,
				Value:   it.Value,
				Params:  it.Params,
			})
		}
		return doc
	}
	doc.Rows = res.Rows()
	return doc
}

// Text prints one row per line, or one issue per line for failures.
func Text(w io.Writer, res csvskema.Result) error {
	if !res.OK() {
		for _, it := range res.Failure() {
			if err := textIssue(w, it); err != nil {
				return err
			}
		}
		return nil
	}
	for _, row := range res.Rows() {
		if _, err := fmt.Fprintln(w, row); err != nil {
			return err
		}
	}
	return nil
}

func textIssue(w io.Writer, it csvskema.Issue) error {
	line := fmt.Sprintf("%s at %s: %s", it.Code, it.Path, it.Message)
	if it.Value != "" {
		line += fmt.Sprintf(" (value %q)", it.Value)
	}
	if it.Hint != "" {
		line += " [" + it.Hint + "]"
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

// JSON writes doc as indented JSON followed by a newline.
func JSON(w io.Writer, doc Document) error {
	return encode(w, doc)
}

// Schema writes s as indented JSON.
func Schema(w io.Writer, s *js.Schema) error {
	return encode(w, s)
}

func encode(w io.Writer, v any) error {
	enc := j.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
