package csvskema

import "strings"

// Comma is the only field delimiter recognised by Split.
const Comma = ','

// Split turns raw text into a Table.
//
// Lines are separated by '\n' (a trailing '\r' is dropped so CRLF input splits
// the same as LF input). A single trailing newline does not produce a row, but
// interior blank lines do, each as a Row holding one empty field. Fields are
// separated by Comma and trimmed of surrounding whitespace. Quotes carry no
// meaning: `"a, b"` becomes the two fields `"a` and `b"`.
func Split(text string) Table {
	if text == "" {
		return Table{}
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	t := make(Table, 0, len(lines))
	for _, ln := range lines {
		t = append(t, SplitLine(ln))
	}
	return t
}

// SplitLine splits one physical line into trimmed fields. It always returns at
// least one field.
func SplitLine(line string) Row {
	line = strings.TrimSuffix(line, "\r")
	parts := strings.Split(line, string(Comma))
	row := make(Row, len(parts))
	for i, p := range parts {
		row[i] = strings.TrimSpace(p)
	}
	return row
}
