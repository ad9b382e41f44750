package sqljson

import (
	"errors"

	"github.com/lib/pq"

	"github.com/cy-suite/quill"
	"github.com/cy-suite/quill/dialect"
	"github.com/cy-suite/quill/dialect/sql"
)

// RemoveExpr compiles an ordered sequence of key paths to remove from
// a JSON value. As with SetExpr, backends with single-path native
// operations apply the paths left to right, first path innermost.
type RemoveExpr struct {
	target sql.Expr
	paths  []string
}

// Remove returns an expression that removes the given paths from the
// JSON value produced by target. At least one path is required.
//
//	sqljson.Remove(sql.Ident("data"), "a__b", "c")
func Remove(target sql.Expr, paths ...string) (*RemoveExpr, error) {
	if len(paths) == 0 {
		return nil, errors.New("sqljson: Remove requires at least one path")
	}
	return &RemoveExpr{
		target: target,
		paths:  append([]string(nil), paths...),
	}, nil
}

// Type reports the JSON output type.
func (r *RemoveExpr) Type() sql.Type {
	return sql.TypeJSON
}

// Append compiles the removal for the builder's dialect, checking the
// partial-update capability flag before emitting any text.
func (r *RemoveExpr) Append(b *sql.Builder) {
	if !b.Features().SupportsPartialJSONUpdate {
		b.AddError(quill.NewUnsupportedError("JSONRemove()", b.Dialect()))
		return
	}
	switch b.Dialect() {
	case dialect.Postgres:
		r.postgres(b)
	case dialect.Oracle:
		r.oracle(b)
	default:
		r.defaultSQL(b)
	}
}

// defaultSQL emits a single JSON_REMOVE call with all paths.
func (r *RemoveExpr) defaultSQL(b *sql.Builder) {
	b.WriteString("JSON_REMOVE(")
	r.target.Append(b)
	for _, path := range r.paths {
		b.Comma()
		b.Arg(CompilePath(SplitPath(path)))
	}
	b.WriteByte(')')
}

// postgres emits a left-associative chain of the "#-" delete-path
// operator, one application per path, paths bound as text[]
// parameters.
func (r *RemoveExpr) postgres(b *sql.Builder) {
	r.target.Append(b)
	for _, path := range r.paths {
		b.WriteString(" #- ")
		b.Arg(pq.Array(SplitPath(path)))
	}
}

// oracle emits nested JSON_TRANSFORM calls with a REMOVE clause per
// path, built with the same iterative fold as SetExpr.
func (r *RemoveExpr) oracle(b *sql.Builder) {
	for range r.paths {
		b.WriteString("JSON_TRANSFORM(")
	}
	r.target.Append(b)
	for _, path := range r.paths {
		b.WriteString(", REMOVE ")
		appendOraclePath(b, SplitPath(path))
		b.WriteByte(')')
	}
}

var _ sql.Expr = (*RemoveExpr)(nil)
