package csvskema

// Package csvskema provides:
//
// - A line/field splitter for simple comma-separated text (Split/SplitLine)
// - Positional validation and coercion of split rows through a RowSchema (Validate)
// - A tagged Result (raw rows, typed rows, or a failure) that callers must discriminate
// - A stable error model via Issues (JSON Pointer /<row>/<column>, code, message)
//
// Design policy:
// - Keep only public APIs in the root package; schema builders live under dsl/.
// - Quotes are not special: a field written as "a, b" splits into two fields and
//   keeps its quote characters. Full RFC-4180 is out of scope.
// - Schema failures are values (Result.Failure), never panics; source failures
//   are the only errors returned from ParseFrom/ParseFile.
//
// Typical usage:
//
//  row := dsl.Tuple(dsl.String(), dsl.Number().Coerce())
//  res, err := csvskema.ParseFile(ctx, "people.csv", row)
//  if err != nil { /* source unavailable */ }
//  if !res.OK() { /* res.Failure() */ }
//  for _, r := range res.Typed() { ... }
