package dsl

import (
	"fmt"
	"strings"
)

// ElemByName returns the element for a type name as used in run
// configurations. Names follow the zod spelling: "string", "number",
// "coerce.number", "int", "coerce.int", "boolean", "coerce.boolean".
// A trailing "?" wraps the element with Optional.
func ElemByName(name string) (Elem, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	optional := strings.HasSuffix(n, "?")
	n = strings.TrimSuffix(n, "?")

	var e Elem
	switch n {
	case "string", "str":
		e = String()
	case "number", "float":
		e = Number()
	case "coerce.number", "coerce.float":
		e = Number().Coerce()
	case "int", "integer":
		e = Int()
	case "coerce.int", "coerce.integer":
		e = Int().Coerce()
	case "boolean", "bool":
		e = Bool()
	case "coerce.boolean", "coerce.bool":
		e = Bool().Coerce()
	default:
		return nil, fmt.Errorf("dsl: unknown column type %q", name)
	}
	if optional {
		return Optional(e), nil
	}
	return e, nil
}

// FromNames builds a Tuple with one element per type name.
func FromNames(names []string) (*TupleSchema, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("dsl: no column types given")
	}
	elems := make([]Elem, 0, len(names))
	for i, name := range names {
		e, err := ElemByName(name)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		elems = append(elems, e)
	}
	return Tuple(elems...), nil
}
