// Package dsl provides a zod-like positional schema DSL for csvskema rows.
//
// Overview
//   - Primitives: String()/Enum(...), Number(), Int(), Bool(). Number, Int and
//     Bool are strict by default and reject text; chain Coerce() to convert it.
//   - Tuple(elems...): a csvskema.RowSchema matching a row field by field;
//     Rest(elem) accepts extra trailing fields.
//   - AnyAdapter: adapt any csvskema.Schema[T] with SchemaOf[T](s); Optional
//     and Refine wrap any element.
//   - ElemByName/FromNames: build tuples from type names in run configs.
//
// Coercion rules
//   - Number().Coerce(): "" -> 0, numeric text -> float64, other text fails.
//   - Int().Coerce(): "" -> 0, base-10 text -> int, other text fails.
//   - Bool().Coerce(): "" -> false, any other text -> true ("false" included).
//
// Quickstart
//
//	row := g.Tuple(g.String(), g.Number().Coerce())
//	res := csvskema.Parse(ctx, "Alice,23\nBob,thirty\n", row)
//	if !res.OK() {
//	    // res.Failure()[0].Path == "/1/1"
//	}
package dsl
