// Package sql provides SQL compilation primitives and database dialect
// abstraction.
//
// The package is built around two pieces: the Builder, a low-level SQL
// text and argument accumulator that knows the placeholder format and
// identifier quoting of each dialect, and the Expr interface, a
// compilable immutable expression node.
//
// # Compiling Expressions
//
//	import "github.com/cy-suite/quill/dialect"
//
//	query, args, err := sql.Build(dialect.Postgres, expr)
//
// Build selects the capability flags of the dialect. BuildFeatures
// accepts explicit flags, for example when the server version has been
// detected from a live connection:
//
//	query, args, err := sql.BuildFeatures(dialect.Postgres, sql.Features{
//	    HasJSONObjectFunction:     true,
//	    SupportsPartialJSONUpdate: true,
//	    Postgres16:                true,
//	}, expr)
//
// # Expression Primitives
//
//	sql.Ident("data")                    // "data" / `data`
//	sql.Value(30)                        // bound parameter
//	sql.Raw("age + 1")                   // verbatim fragment
//	sql.Cast(expr, sql.TypeJSON)         // CAST(... AS JSON) / ...::jsonb
//	sql.Typed(expr, sql.TypeJSON)        // re-tag the output type
//
// Expressions are immutable value objects. Compilation never mutates a
// node, so the same node may be compiled for several dialects, or by
// several goroutines, concurrently.
//
// # Driver
//
// The Driver type wraps database/sql with the dialect.Driver contract
// and exposes the backend capability flags:
//
//	drv, err := sql.Open(dialect.Postgres, "postgres://...")
//	query, args, err := sql.BuildFeatures(drv.Dialect(), drv.Features(), expr)
//	err = drv.Exec(ctx, query, args, nil)
//
// StatsDriver adds query statistics and slow-query logging on top of a
// Driver.
//
// # Sub-packages
//
//   - sqljson: JSON column expression compilers (JSON object
//     construction, partial update, path removal)
package sql
