package sql

import (
	"errors"
	"strconv"
	"strings"

	"github.com/cy-suite/quill/dialect"
)

// Builder is the base query builder. It accumulates SQL text and bound
// arguments, renders placeholders and quotes identifiers according to
// the configured dialect, and collects compilation errors for deferred
// reporting.
type Builder struct {
	sb       strings.Builder
	dialect  string
	features Features
	args     []any
	total    int
	errs     []error
}

// NewBuilder returns a builder for the given dialect with the
// dialect's default capability flags.
func NewBuilder(dialect string) *Builder {
	return &Builder{dialect: dialect, features: DefaultFeatures(dialect)}
}

// SetFeatures overrides the capability flags used during compilation.
// It is used when the flags are detected from a live connection rather
// than taken from the dialect defaults.
func (b *Builder) SetFeatures(f Features) *Builder {
	b.features = f
	return b
}

// Dialect returns the dialect of the builder.
func (b *Builder) Dialect() string {
	return b.dialect
}

// Features returns the capability flags of the builder.
func (b *Builder) Features() Features {
	return b.features
}

// WriteString appends the string s to the query.
func (b *Builder) WriteString(s string) *Builder {
	b.sb.WriteString(s)
	return b
}

// WriteByte appends the byte c to the query.
func (b *Builder) WriteByte(c byte) *Builder {
	b.sb.WriteByte(c)
	return b
}

// Comma appends a comma separator to the query.
func (b *Builder) Comma() *Builder {
	return b.WriteString(", ")
}

// Wrap gets a callback, and wraps its output with parentheses.
func (b *Builder) Wrap(f func(*Builder)) *Builder {
	b.WriteByte('(')
	f(b)
	b.WriteByte(')')
	return b
}

// Quote quotes the given identifier with the dialect's quote character.
func (b *Builder) Quote(ident string) string {
	quote := `"`
	if b.dialect == dialect.MySQL {
		quote = "`"
	}
	return quote + ident + quote
}

// Ident appends the given identifier, quoted.
func (b *Builder) Ident(s string) *Builder {
	return b.WriteString(b.Quote(s))
}

// Arg binds the given value as a query argument and appends the
// dialect's placeholder to the query: "?" by default, "$n" on Postgres
// and ":n" on Oracle.
func (b *Builder) Arg(v any) *Builder {
	b.total++
	b.args = append(b.args, v)
	switch b.dialect {
	case dialect.Postgres:
		b.WriteString("$" + strconv.Itoa(b.total))
	case dialect.Oracle:
		b.WriteString(":" + strconv.Itoa(b.total))
	default:
		b.WriteByte('?')
	}
	return b
}

// Args binds the given values in order.
func (b *Builder) Args(vs ...any) *Builder {
	for i, v := range vs {
		if i > 0 {
			b.Comma()
		}
		b.Arg(v)
	}
	return b
}

// Join appends the given expression to the query.
func (b *Builder) Join(e Expr) *Builder {
	e.Append(b)
	return b
}

// AddError records a compilation error. The error is surfaced by Err
// after compilation finishes; the builder keeps accepting writes so a
// single pass can report all errors.
func (b *Builder) AddError(err error) *Builder {
	if err != nil {
		b.errs = append(b.errs, err)
	}
	return b
}

// Err returns the errors recorded during compilation, joined.
func (b *Builder) Err() error {
	return errors.Join(b.errs...)
}

// String returns the accumulated SQL text.
func (b *Builder) String() string {
	return b.sb.String()
}

// Query returns the accumulated SQL text and its bound arguments.
func (b *Builder) Query() (string, []any) {
	return b.sb.String(), b.args
}

// Build compiles the given expression for the given dialect using the
// dialect's default capability flags. It returns the SQL text and the
// bound arguments, or the first compilation error. No SQL text is
// returned on error.
func Build(dialect string, e Expr) (string, []any, error) {
	return BuildFeatures(dialect, DefaultFeatures(dialect), e)
}

// BuildFeatures compiles the given expression with explicit capability
// flags.
func BuildFeatures(dialect string, f Features, e Expr) (string, []any, error) {
	b := NewBuilder(dialect).SetFeatures(f)
	e.Append(b)
	if err := b.Err(); err != nil {
		return "", nil, err
	}
	query, args := b.Query()
	return query, args, nil
}
