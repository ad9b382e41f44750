package sqljson

import (
	"fmt"

	"github.com/cy-suite/quill"
	"github.com/cy-suite/quill/dialect"
	"github.com/cy-suite/quill/dialect/sql"
)

// ObjectExpr compiles a sequence of key-value pairs into a single JSON
// object construction call. The pairs are stored flattened as
// alternating key and value expressions; the children count is always
// even.
type ObjectExpr struct {
	exprs []sql.Expr
}

// Object returns an expression that builds a JSON object from the
// given alternating key-value arguments. Keys must be strings; values
// may be literals or sql.Expr sub-expressions. Pairing is strict: an
// odd argument count is a construction error rather than a silent
// truncation.
//
//	sqljson.Object("name", "John", "age", 30)
func Object(kv ...any) (*ObjectExpr, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("sqljson: Object requires alternating key-value arguments, got %d", len(kv))
	}
	exprs := make([]sql.Expr, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("sqljson: Object key at position %d must be a string, got %T", i, kv[i])
		}
		exprs = append(exprs, sql.TypedValue(key, sql.TypeText), objectValue(kv[i+1]))
	}
	return &ObjectExpr{exprs: exprs}, nil
}

// objectValue lifts a value argument into an expression. Unlike the
// update compilers, object values are passed as plain scalars; the
// construction function does its own typing.
func objectValue(v any) sql.Expr {
	if e, ok := v.(sql.Expr); ok {
		return e
	}
	return sql.Value(v)
}

// Type reports the JSON output type.
func (o *ObjectExpr) Type() sql.Type {
	return sql.TypeJSON
}

// Append compiles the object construction call for the builder's
// dialect. The capability flag is checked before any text is emitted.
func (o *ObjectExpr) Append(b *sql.Builder) {
	if !b.Features().HasJSONObjectFunction {
		b.AddError(quill.NewUnsupportedError("JSONObject()", b.Dialect()))
		return
	}
	switch b.Dialect() {
	case dialect.Postgres:
		o.postgres(b)
	case dialect.Oracle:
		o.native(b, "CLOB")
	default:
		o.defaultSQL(b)
	}
}

// defaultSQL emits JSON_OBJECT with each pair joined by the VALUE
// keyword. The key is parenthesized so it cannot merge with an
// adjacent cast operator.
func (o *ObjectExpr) defaultSQL(b *sql.Builder) {
	b.WriteString("JSON_OBJECT(")
	o.join(b, nil)
	b.WriteByte(')')
}

// native emits JSON_OBJECT with an explicit RETURNING clause.
func (o *ObjectExpr) native(b *sql.Builder, returning string) {
	b.WriteString("JSON_OBJECT(")
	o.join(b, nil)
	if len(o.exprs) > 0 {
		b.WriteByte(' ')
	}
	b.WriteString("RETURNING " + returning + ")")
}

// postgres casts every key to text. JSONB_BUILD_OBJECT requires it,
// and JSON_OBJECT on PostgreSQL 16+ requires it with server-side
// bindings; it is done in both branches for consistency.
func (o *ObjectExpr) postgres(b *sql.Builder) {
	key := func(e sql.Expr) sql.Expr { return sql.Cast(e, sql.TypeText) }
	if b.Features().Postgres16 {
		b.WriteString("JSON_OBJECT(")
		o.join(b, key)
		if len(o.exprs) > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("RETURNING JSONB)")
		return
	}
	b.WriteString("JSONB_BUILD_OBJECT(")
	for i, e := range o.exprs {
		if i > 0 {
			b.Comma()
		}
		if i%2 == 0 {
			e = key(e)
		}
		e.Append(b)
	}
	b.WriteByte(')')
}

// join writes the pairs as "(key) VALUE value", applying the optional
// key wrapper.
func (o *ObjectExpr) join(b *sql.Builder, key func(sql.Expr) sql.Expr) {
	for i := 0; i < len(o.exprs); i += 2 {
		if i > 0 {
			b.Comma()
		}
		k := o.exprs[i]
		if key != nil {
			k = key(k)
		}
		b.Wrap(k.Append)
		b.WriteString(" VALUE ")
		o.exprs[i+1].Append(b)
	}
}

var _ sql.Expr = (*ObjectExpr)(nil)
