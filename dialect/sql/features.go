package sql

import (
	"github.com/cy-suite/quill/dialect"
)

// Features holds the backend capability flags queried during
// expression compilation. A missing required flag causes a hard
// compilation failure, never a silent fallback.
type Features struct {
	// HasJSONObjectFunction reports whether the backend provides a
	// native JSON object construction function.
	HasJSONObjectFunction bool

	// SupportsPartialJSONUpdate reports whether the backend can modify
	// or remove a sub-value inside a JSON column without rewriting the
	// whole document.
	SupportsPartialJSONUpdate bool

	// Postgres16 reports whether the server supports the standard
	// JSON_OBJECT function with a RETURNING clause (PostgreSQL 16+).
	// When false, object construction falls back to
	// JSONB_BUILD_OBJECT.
	Postgres16 bool
}

// DefaultFeatures returns the capability flags assumed for the given
// dialect. Unknown dialects get all-false flags, so any JSON operation
// compiled against them fails with an unsupported-operation error.
func DefaultFeatures(d string) Features {
	switch d {
	case dialect.MySQL, dialect.SQLite, dialect.Oracle:
		return Features{
			HasJSONObjectFunction:     true,
			SupportsPartialJSONUpdate: true,
		}
	case dialect.Postgres:
		return Features{
			HasJSONObjectFunction:     true,
			SupportsPartialJSONUpdate: true,
			// Conservative default. Callers that know the server
			// version can flip this through Builder.SetFeatures.
			Postgres16: false,
		}
	default:
		return Features{}
	}
}
