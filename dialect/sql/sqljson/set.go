package sqljson

import (
	"errors"

	"github.com/lib/pq"

	"github.com/cy-suite/quill"
	"github.com/cy-suite/quill/dialect"
	"github.com/cy-suite/quill/dialect/sql"
)

// Assignment is a single key-path update: the value to store at the
// location named by Path. Value is either a literal, serialized as
// JSON-formatted text at compile time, or an sql.Expr sub-expression.
type Assignment struct {
	Path  string
	Value any
}

// SetExpr compiles an ordered sequence of path-value assignments into
// the backend's partial JSON update call. Insertion order matters:
// backends with single-path update functions apply the assignments
// left to right, first assignment innermost.
type SetExpr struct {
	target      sql.Expr
	assignments []Assignment
	typ         sql.Type
}

// Set returns an expression that updates the given paths inside the
// JSON value produced by target. At least one assignment is required.
//
//	sqljson.Set(sql.Ident("data"), sqljson.Assignment{Path: "a__b", Value: 5})
func Set(target sql.Expr, assignments ...Assignment) (*SetExpr, error) {
	if len(assignments) == 0 {
		return nil, errors.New("sqljson: Set requires at least one path-value assignment")
	}
	return &SetExpr{
		target:      target,
		assignments: append([]Assignment(nil), assignments...),
		typ:         sql.TypeJSON,
	}, nil
}

// WithType returns a copy of the expression with a different declared
// output type. The receiver is left unchanged.
func (s *SetExpr) WithType(t sql.Type) *SetExpr {
	c := *s
	c.typ = t
	return &c
}

// Type reports the declared output type, JSON unless overridden.
func (s *SetExpr) Type() sql.Type {
	return s.typ
}

// Append compiles the update call for the builder's dialect. The
// partial-update capability flag is checked up front on every path,
// before any text is emitted.
func (s *SetExpr) Append(b *sql.Builder) {
	if !b.Features().SupportsPartialJSONUpdate {
		b.AddError(quill.NewUnsupportedError("JSONSet()", b.Dialect()))
		return
	}
	switch b.Dialect() {
	case dialect.Postgres:
		s.postgres(b)
	case dialect.Oracle:
		s.oracle(b)
	default:
		s.defaultSQL(b)
	}
}

// defaultSQL emits a single JSON_SET call. The native function takes
// arbitrarily many interleaved path/value arguments, so no nesting is
// needed.
func (s *SetExpr) defaultSQL(b *sql.Builder) {
	b.WriteString("JSON_SET(")
	s.target.Append(b)
	for _, a := range s.assignments {
		b.Comma()
		b.Arg(CompilePath(SplitPath(a.Path)))
		b.Comma()
		appendValue(b, a.Value)
	}
	b.WriteByte(')')
}

// postgres emits nested JSONB_SET calls, one per assignment, since the
// native function accepts a single path per call. The nesting is built
// by an iterative fold rather than recursion, so a pathological pair
// count cannot grow the stack. Paths are bound as text[] parameters,
// never inlined.
func (s *SetExpr) postgres(b *sql.Builder) {
	for range s.assignments {
		b.WriteString("JSONB_SET(")
	}
	s.target.Append(b)
	for _, a := range s.assignments {
		b.Comma()
		b.Arg(pq.Array(SplitPath(a.Path)))
		b.Comma()
		appendValuePostgres(b, a.Value)
		b.WriteByte(')')
	}
}

// oracle emits nested JSON_TRANSFORM calls with the same one-path
// limitation and fold as the Postgres path. Path literals are inlined
// with alternative quoting; literal values carry the FORMAT JSON
// clause instead of a cast.
func (s *SetExpr) oracle(b *sql.Builder) {
	for range s.assignments {
		b.WriteString("JSON_TRANSFORM(")
	}
	s.target.Append(b)
	for _, a := range s.assignments {
		b.WriteString(", SET ")
		appendOraclePath(b, SplitPath(a.Path))
		b.WriteString(" = ")
		appendValueOracle(b, a.Value)
		b.WriteByte(')')
	}
}

var _ sql.Expr = (*SetExpr)(nil)
