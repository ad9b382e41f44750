package sqljson

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cy-suite/quill/dialect/sql"
)

// PathSep is the reserved separator splitting a key path into
// segments, e.g. "user__address__city". A segment can never contain
// the separator itself: the path string is split on every occurrence.
const PathSep = "__"

// oracleDelim delimits inlined Oracle path literals inside the
// alternative quoting form q'...'. The character is a noncharacter
// code point that cannot appear in well-formed key names; compilation
// fails if a path contains it.
const oracleDelim = "￿"

// SplitPath splits a key path on the reserved separator into its
// ordered segments.
func SplitPath(path string) []string {
	return strings.Split(path, PathSep)
}

// CompilePath compiles ordered path segments into a "$"-rooted JSON
// path expression as understood by MySQL, SQLite and Oracle. String
// segments are quoted as JSON strings; integer segments become array
// indices:
//
//	CompilePath([]string{"a", "b"}) // $."a"."b"
//	CompilePath([]string{"a", "0"}) // $."a"[0]
func CompilePath(segments []string) string {
	var sb strings.Builder
	sb.WriteByte('$')
	for _, seg := range segments {
		if idx, err := strconv.Atoi(seg); err == nil {
			sb.WriteString("[" + strconv.Itoa(idx) + "]")
			continue
		}
		quoted, _ := json.Marshal(seg)
		sb.WriteByte('.')
		sb.Write(quoted)
	}
	return sb.String()
}

// appendOraclePath writes the compiled path as an inlined Oracle
// string literal using alternative quoting, e.g. q'<path>' with the
// rare delimiter. The path text is rejected if it contains the
// delimiter, since it cannot be escaped inside this quoting form.
func appendOraclePath(b *sql.Builder, segments []string) {
	path := CompilePath(segments)
	if strings.Contains(path, oracleDelim) {
		b.AddError(fmt.Errorf("sqljson: path %q contains the Oracle quote delimiter", path))
		return
	}
	b.WriteString("q'" + oracleDelim + path + oracleDelim + "'")
}
