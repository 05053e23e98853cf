// Package sqlfmt formats a SQL statement with its bound arguments inlined,
// for debug logging and tracing only — never for execution. Grounded on
// the teacher package's gdb_func.go FormatSqlWithArgs, generalized to also
// recognize PostgreSQL's $n placeholder style alongside the `?` style
// used by MySQL/SQLite/Firebird (spec.md §4.5: placeholders are not
// normalized across backends, but a debug formatter may recognize both).
package sqlfmt

import (
	"reflect"
	"time"

	"github.com/gogf/gf/text/gregex"
	"github.com/gogf/gf/text/gstr"
	"github.com/gogf/gf/util/gconv"
)

var placeholderPattern = `(\?|\$\d+)`

// WithArgs substitutes each placeholder in sql with a printable rendering
// of the corresponding positional argument, purely for human-readable
// debug output.
func WithArgs(sql string, args []interface{}) string {
	index := -1
	out, _ := gregex.ReplaceStringFunc(placeholderPattern, sql, func(string) string {
		index++
		if index >= len(args) {
			return "?"
		}
		return render(args[index])
	})
	return out
}

func render(v interface{}) string {
	if v == nil {
		return "null"
	}
	rv := reflect.ValueOf(v)
	kind := rv.Kind()
	if kind == reflect.Ptr {
		if rv.IsNil() {
			return "null"
		}
		rv = rv.Elem()
		kind = rv.Kind()
	}
	switch kind {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		if t, ok := v.(time.Time); ok {
			return "'" + t.Format("2006-01-02 15:04:05") + "'"
		}
		return "'" + gstr.QuoteMeta(gconv.String(v), `'`) + "'"
	case reflect.Struct:
		if t, ok := v.(time.Time); ok {
			return "'" + t.Format("2006-01-02 15:04:05") + "'"
		}
		return gconv.String(v)
	default:
		return gconv.String(v)
	}
}
