package dsl_test

import (
	"encoding/json"
	"reflect"
	"testing"

	g "github.com/reoring/csvskema/dsl"
)

// normalize marshals v to JSON and unmarshals back into interface{} to remove ordering effects.
func normalize(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out any
	_ = json.Unmarshal(b, &out)
	return out
}

func TestJSONSchema_Primitives(t *testing.T) {
	cases := []struct {
		name string
		elem g.Elem
		want map[string]any
	}{
		{"string", g.String(), map[string]any{"type": "string"}},
		{"boolean", g.Bool(), map[string]any{"type": "boolean"}},
		{"number", g.Number(), map[string]any{"type": "number"}},
		{"coercedNumber", g.Number().Coerce().Min(0), map[string]any{"type": "number", "minimum": 0, "description": "coerced from text"}},
		{"int", g.Int().Max(9), map[string]any{"type": "integer", "maximum": 9}},
		{"enum", g.Enum("a", "b"), map[string]any{"type": "string", "enum": []any{"a", "b"}}},
	}
	for _, tc := range cases {
		s, err := tc.elem.JSONSchema()
		if err != nil {
			t.Fatalf("%s JSONSchema err: %v", tc.name, err)
		}
		got, want := normalize(s), normalize(tc.want)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("%s schema mismatch\n got=%v\nwant=%v", tc.name, got, want)
		}
	}
}

func TestJSONSchema_Tuple(t *testing.T) {
	s, err := g.Tuple(g.String(), g.Number()).JSONSchema()
	if err != nil {
		t.Fatalf("tuple JSONSchema err: %v", err)
	}
	want := map[string]any{
		"type":        "array",
		"prefixItems": []any{map[string]any{"type": "string"}, map[string]any{"type": "number"}},
		"items":       false,
		"minItems":    2,
		"maxItems":    2,
	}
	if got := normalize(s); !reflect.DeepEqual(got, normalize(want)) {
		t.Fatalf("tuple schema mismatch\n got=%v\nwant=%v", got, normalize(want))
	}

	rs, err := g.Tuple(g.String()).Rest(g.Int()).JSONSchema()
	if err != nil {
		t.Fatalf("rest JSONSchema err: %v", err)
	}
	want = map[string]any{
		"type":        "array",
		"prefixItems": []any{map[string]any{"type": "string"}},
		"items":       map[string]any{"type": "integer"},
		"minItems":    1,
	}
	if got := normalize(rs); !reflect.DeepEqual(got, normalize(want)) {
		t.Fatalf("rest schema mismatch\n got=%v\nwant=%v", got, normalize(want))
	}
}
