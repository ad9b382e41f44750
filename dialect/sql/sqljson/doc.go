// Package sqljson compiles portable JSON column operations into
// dialect-specific SQL.
//
// Three expression builders are provided:
//
//   - Object builds a JSON object from key-value pairs.
//   - Set updates or inserts values at key paths inside a JSON value.
//   - Remove deletes key paths from a JSON value.
//
// Key paths address locations inside a JSON document and use the
// reserved "__" separator (PathSep) between segments:
//
//	expr, err := sqljson.Set(sql.Ident("data"),
//	    sqljson.Assignment{Path: "user__name", Value: "John"},
//	)
//	query, args, err := sql.Build(dialect.MySQL, expr)
//	// JSON_SET(`data`, ?, CAST(? AS JSON))
//
// The same expression compiles differently per dialect. MySQL and
// SQLite take all path/value pairs in one native call; PostgreSQL's
// JSONB_SET and Oracle's JSON_TRANSFORM accept a single path per call,
// so multi-path operations compile into nested applications, first
// path innermost:
//
//	query, args, err = sql.Build(dialect.Postgres, expr)
//	// JSONB_SET("data", $1, $2::jsonb)
//
// Compilation fails with quill.UnsupportedError before emitting any
// SQL when the backend lacks the required capability flag, and all
// errors surface synchronously from sql.Build. Expressions are
// immutable after construction and safe for concurrent compilation.
package sqljson
