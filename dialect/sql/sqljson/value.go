package sqljson

import (
	"encoding/json"
	"fmt"

	"github.com/cy-suite/quill/dialect/sql"
)

// jsonText serializes a literal update value to JSON-formatted text.
// A nil literal serializes to the JSON "null" text, which keeps the
// key present with a null value; it is never sent as SQL NULL, which
// would be a different thing entirely.
func jsonText(v any) (string, error) {
	text, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("sqljson: cannot encode value %v: %w", v, err)
	}
	return string(text), nil
}

// appendValue writes a generic-path update value: literals are
// JSON-encoded, bound as a parameter and cast so the backend treats
// the text as a JSON document; sub-expressions pass through unchanged.
func appendValue(b *sql.Builder, v any) {
	if e, ok := v.(sql.Expr); ok {
		e.Append(b)
		return
	}
	text, err := jsonText(v)
	if err != nil {
		b.AddError(err)
		return
	}
	sql.Cast(sql.TypedValue(text, sql.TypeJSON), sql.TypeJSON).Append(b)
}

// appendValuePostgres writes an update value for JSONB_SET, which only
// accepts jsonb input. Sub-expressions with a non-JSON output type are
// converted with TO_JSONB, since the "::jsonb" cast works only on
// JSON-formatted strings. Literals are JSON-encoded and cast; a nil
// literal becomes the typed jsonb null.
func appendValuePostgres(b *sql.Builder, v any) {
	if e, ok := v.(sql.Expr); ok {
		if e.Type() != sql.TypeJSON {
			b.WriteString("TO_JSONB(")
			e.Append(b)
			b.WriteByte(')')
			return
		}
		e.Append(b)
		return
	}
	text, err := jsonText(v)
	if err != nil {
		b.AddError(err)
		return
	}
	sql.Cast(sql.TypedValue(text, sql.TypeJSON), sql.TypeJSON).Append(b)
}

// appendValueOracle writes an update value for JSON_TRANSFORM.
// Literals are bound as JSON-encoded text followed by the FORMAT JSON
// clause, which makes Oracle treat the preceding value as a JSON
// document without an explicit cast.
func appendValueOracle(b *sql.Builder, v any) {
	if e, ok := v.(sql.Expr); ok {
		e.Append(b)
		return
	}
	text, err := jsonText(v)
	if err != nil {
		b.AddError(err)
		return
	}
	b.Arg(text)
	b.WriteString(" FORMAT JSON")
}
