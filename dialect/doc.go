// Package dialect provides database dialect abstraction for quill.
//
// This package defines the interfaces and types used for database-specific
// SQL generation, allowing quill to target multiple database backends.
//
// # Supported Dialects
//
// Each dialect is identified by a constant string:
//
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//	dialect.Postgres = "postgres"
//	dialect.Oracle   = "oracle"
//
// MySQL and SQLite share the generic compilation path; Postgres and
// Oracle each have a specialized one.
//
// # Driver Interface
//
// The package defines the Driver interface for database operations:
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// # Sub-packages
//
//   - dialect/sql: SQL builder primitives, capability flags and driver
//   - dialect/sql/sqljson: JSON column expression compilers
package dialect
