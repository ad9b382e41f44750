package sql

import (
	"github.com/cy-suite/quill/dialect"
)

// Type is the declared output type of an expression. It drives the
// value coercion rules during compilation: only JSON-typed expressions
// may be passed to backends that require JSON-formatted input without
// an explicit conversion.
type Type uint8

// Output types.
const (
	// TypeGeneric is the default output type of an expression.
	TypeGeneric Type = iota
	// TypeJSON marks an expression whose result is a JSON value.
	TypeJSON
	// TypeText marks an expression whose result is character data.
	TypeText
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case TypeJSON:
		return "json"
	case TypeText:
		return "text"
	default:
		return "generic"
	}
}

// Expr is a compilable SQL expression. Implementations are immutable
// value objects: Append must not mutate the receiver, so distinct
// builders may compile the same expression concurrently.
type Expr interface {
	// Append writes the expression to the builder. Compilation errors
	// are recorded with Builder.AddError.
	Append(*Builder)
	// Type reports the declared output type of the expression.
	Type() Type
}

type value struct {
	v   any
	typ Type
}

// Value returns an expression that binds the given literal as a query
// argument.
func Value(v any) Expr {
	return value{v: v}
}

// TypedValue returns a literal argument with a declared output type.
func TypedValue(v any, t Type) Expr {
	return value{v: v, typ: t}
}

func (e value) Append(b *Builder) { b.Arg(e.v) }

func (e value) Type() Type { return e.typ }

type ident struct {
	name string
}

// Ident returns an expression referencing the given column or
// identifier, quoted per dialect.
func Ident(name string) Expr {
	return ident{name: name}
}

func (e ident) Append(b *Builder) { b.Ident(e.name) }

func (e ident) Type() Type { return TypeGeneric }

type raw struct {
	s string
}

// Raw returns an expression that writes the given SQL fragment
// verbatim. The fragment is trusted; no quoting or escaping applies.
func Raw(s string) Expr {
	return raw{s: s}
}

func (e raw) Append(b *Builder) { b.WriteString(e.s) }

func (e raw) Type() Type { return TypeGeneric }

type typed struct {
	e   Expr
	typ Type
}

// Typed re-tags the given expression with a declared output type
// without changing its SQL.
func Typed(e Expr, t Type) Expr {
	return typed{e: e, typ: t}
}

func (e typed) Append(b *Builder) { e.e.Append(b) }

func (e typed) Type() Type { return e.typ }

type cast struct {
	e   Expr
	typ Type
}

// Cast returns an expression that converts the given expression to the
// SQL type backing t. Postgres uses the "::" cast operator; other
// dialects use a CAST call.
func Cast(e Expr, t Type) Expr {
	return cast{e: e, typ: t}
}

func (e cast) Append(b *Builder) {
	switch {
	case b.Dialect() == dialect.Postgres:
		e.e.Append(b)
		b.WriteString("::" + dbType(b.Dialect(), e.typ))
	case b.Dialect() == dialect.SQLite && e.typ == TypeJSON:
		// SQLite CAST works by type affinity, and "JSON" has NUMERIC
		// affinity, so CAST(? AS JSON) coerces non-numeric text to 0.
		// The JSON function parses the text instead.
		b.WriteString("JSON(")
		e.e.Append(b)
		b.WriteByte(')')
	default:
		b.WriteString("CAST(")
		e.e.Append(b)
		b.WriteString(" AS " + dbType(b.Dialect(), e.typ) + ")")
	}
}

func (e cast) Type() Type { return e.typ }

// dbType maps an output type to the dialect's SQL type name.
func dbType(d string, t Type) string {
	switch d {
	case dialect.Postgres:
		if t == TypeJSON {
			return "jsonb"
		}
		return "text"
	case dialect.MySQL:
		if t == TypeJSON {
			return "JSON"
		}
		return "CHAR"
	default:
		if t == TypeJSON {
			return "JSON"
		}
		return "TEXT"
	}
}
