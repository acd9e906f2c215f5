package csvskema_test

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	csvskema "github.com/reoring/csvskema"
)

func fixture(name string) string { return filepath.Join("testdata", name) }

func TestSplit_Cases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  csvskema.Table
	}{
		{name: "empty", input: "", want: csvskema.Table{}},
		{name: "singleLineNoNewline", input: "a,b", want: csvskema.Table{{"a", "b"}}},
		{name: "trailingNewlineDropped", input: "a,b\nc,d\n", want: csvskema.Table{{"a", "b"}, {"c", "d"}}},
		{name: "crlf", input: "a,b\r\nc,d\r\n", want: csvskema.Table{{"a", "b"}, {"c", "d"}}},
		{name: "interiorBlankLineKept", input: "a\n\nb\n", want: csvskema.Table{{"a"}, {""}, {"b"}}},
		{name: "secondTrailingNewlineYieldsEmptyRow", input: "a\n\n", want: csvskema.Table{{"a"}, {""}}},
		{name: "onlyNewline", input: "\n", want: csvskema.Table{{""}}},
		{name: "whitespaceTrimmed", input: "  a ,\tb\t, c  d \n", want: csvskema.Table{{"a", "b", "c  d"}}},
		{name: "emptyFieldsPreserved", input: ",,\n", want: csvskema.Table{{"", "", ""}}},
		{name: "quotesNotSpecial", input: `x,"a, b"` + "\n", want: csvskema.Table{{"x", `"a`, `b"`}}},
		{name: "raggedRows", input: "a,b,c\nd\ne,f\n", want: csvskema.Table{{"a", "b", "c"}, {"d"}, {"e", "f"}}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := csvskema.Split(tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Split(%q) = %#v, want %#v", tc.input, got, tc.want)
			}
		})
	}
}

func TestSplitLine_AlwaysOneField(t *testing.T) {
	if got := csvskema.SplitLine(""); !reflect.DeepEqual(got, csvskema.Row{""}) {
		t.Fatalf("expected one empty field, got %#v", got)
	}
}

// The fixture tests below read through ParseFile with no schema, so they also
// cover the raw pass-through path.

func parseRaw(t *testing.T, name string) csvskema.Table {
	t.Helper()
	res, err := csvskema.ParseFile(context.Background(), fixture(name), nil)
	if err != nil {
		t.Fatalf("unexpected source error: %v", err)
	}
	if res.Kind() != csvskema.KindRaw {
		t.Fatalf("expected raw result, got %v (%v)", res.Kind(), res.Err())
	}
	return res.Raw()
}

func TestFixture_People(t *testing.T) {
	rows := parseRaw(t, "people.csv")
	want := csvskema.Table{
		{"name", "age"},
		{"Alice", "23"},
		{"Bob", "thirty"}, // no schema, no numeric validation
		{"Charlie", "25"},
		{"Nim", "22"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("got %#v", rows)
	}
}

func TestFixture_SingleField(t *testing.T) {
	rows := parseRaw(t, "single_data.csv")
	want := csvskema.Table{{"tommy"}, {"michael"}, {"timmy"}, {"isaiah"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("got %#v", rows)
	}
}

func TestFixture_WhitespaceTrimmed(t *testing.T) {
	rows := parseRaw(t, "sample_data.csv")
	want := csvskema.Table{
		{"Nim", "22", "football"},
		{"Michael", "19", "basketball"},
		{"Shant", "19", "rowing"},
		{"Timmy", "29", "hockey"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("got %#v", rows)
	}
}

func TestFixture_MissingData(t *testing.T) {
	rows := parseRaw(t, "missing_data.csv")
	want := csvskema.Table{
		{"Alice", "she/her", "23"},
		{"Bob", "he/him", ""},
		{"", "they/them", "25"},
		{"Nim", "", "22"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("got %#v", rows)
	}
}

func TestFixture_WrongDataAccepted(t *testing.T) {
	rows := parseRaw(t, "wrong_data.csv")
	want := csvskema.Table{
		{"completely", "messed", "up", "fields"},
		{"hello", ""},
		{"data", "is", "completely", "missing"},
		{""},
		{"where"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("got %#v", rows)
	}
}

func TestFixture_HeaderIsJustARow(t *testing.T) {
	rows := parseRaw(t, "label.csv")
	want := csvskema.Table{{"bob", "snow"}, {"john", "stark"}, {"alice", "sand"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("got %#v", rows)
	}
}

func TestFixture_QuotedCommaSplits(t *testing.T) {
	rows := parseRaw(t, "comma_incl.csv")
	want := csvskema.Table{
		{"greeting", `"hello`, `friend"`},
		{"farewell", `"goodbye`, `neighbor"`},
		{"phrase", `"arrival`, `departure"`},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("got %#v", rows)
	}
}
