package sqlq

import (
	"encoding/json"
	"fmt"
	"math"
	r "reflect"
	"strconv"
	"strings"
	"time"
)

const timeLiteralLayout = `2006-01-02 15:04:05`

/*
Converts an arbitrary value to its SQL literal text. When `quoted` is true,
text-like forms are wrapped in single quotes, and numerals are rendered as
quoted numeral text.

Rules:

• nil, empty string, and the case-insensitive string "null" become `NULL`.

• Strings pass through unquoted unless `quoted` is set.

• Integers render as numerals; quoted numeral text when `quoted` is set.

• Floats render as numerals; NaN collapses to `NULL` regardless of `quoted`.

• Booleans render as `true`/`false`, never quoted.

• Maps, slices, arrays and non-time structs serialize to JSON text, wrapped
in quotes when `quoted` is set.

• `time.Time` passes through as an opaque unquoted literal; callers needing
an engine-specific representation must pre-format to string.

• Anything else degrades to its plain text form, quoted only on request.

No dialect-specific escaping is performed; values containing quotes are the
caller's responsibility.
*/
func Literal(val any, quoted bool) string {
	return string(AppendLiteral(nil, val, quoted))
}

// Appends the SQL literal text of the given value. See `Literal`.
func AppendLiteral(text []byte, val any, quoted bool) []byte {
	switch val := val.(type) {
	case nil:
		return appendNull(text)

	case string:
		if val == `` || strings.EqualFold(val, `null`) {
			return appendNull(text)
		}
		if quoted {
			return appendQuoted(text, val)
		}
		return append(text, val...)

	case bool:
		return strconv.AppendBool(text, val)

	case int:
		return appendIntLiteral(text, int64(val), quoted)
	case int8:
		return appendIntLiteral(text, int64(val), quoted)
	case int16:
		return appendIntLiteral(text, int64(val), quoted)
	case int32:
		return appendIntLiteral(text, int64(val), quoted)
	case int64:
		return appendIntLiteral(text, val, quoted)
	case uint:
		return appendUintLiteral(text, uint64(val), quoted)
	case uint8:
		return appendUintLiteral(text, uint64(val), quoted)
	case uint16:
		return appendUintLiteral(text, uint64(val), quoted)
	case uint32:
		return appendUintLiteral(text, uint64(val), quoted)
	case uint64:
		return appendUintLiteral(text, val, quoted)

	case float32:
		return appendFloatLiteral(text, float64(val), quoted)
	case float64:
		return appendFloatLiteral(text, val, quoted)

	case time.Time:
		return append(text, val.Format(timeLiteralLayout)...)

	default:
		return appendAnyLiteral(text, val, quoted)
	}
}

/*
Converts an arbitrary value to an explicit-cast SQL literal:
`CAST(<literal> AS <TYPE>)`. Text maps to TEXT, integers to INTEGER, floats
to FLOAT, booleans to BOOLEAN, JSON-like values to JSONB; anything else
defaults to TEXT. NaN collapses to NULL inside the cast, consistently with
`Literal`.
*/
func CastLiteral(val any) string {
	return string(AppendCastLiteral(nil, val))
}

// Appends the explicit-cast literal text of the given value. See
// `CastLiteral`.
func AppendCastLiteral(text []byte, val any) []byte {
	switch val := val.(type) {
	case string:
		return appendCast(text, quoteText(val), `TEXT`)

	case bool:
		return appendCast(text, strconv.FormatBool(val), `BOOLEAN`)

	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return appendCast(text, fmt.Sprint(val), `INTEGER`)

	case float32:
		return AppendCastLiteral(text, float64(val))
	case float64:
		if math.IsNaN(val) {
			return appendCast(text, `NULL`, `FLOAT`)
		}
		return appendCast(text, strconv.FormatFloat(val, 'f', -1, 64), `FLOAT`)

	default:
		switch kindOf(val) {
		case r.Map, r.Slice, r.Array, r.Struct:
			return appendCast(text, quoteText(string(jsonText(val))), `JSONB`)
		}
		return appendCast(text, quoteText(fmt.Sprint(val)), `TEXT`)
	}
}

func appendCast(text []byte, body, typ string) []byte {
	text = append(text, `CAST(`...)
	text = append(text, body...)
	text = append(text, ` AS `...)
	text = append(text, typ...)
	return append(text, `)`...)
}

func appendNull(text []byte) []byte { return append(text, `NULL`...) }

func appendQuoted(text []byte, val string) []byte {
	text = append(text, quoteSingle)
	text = append(text, val...)
	return append(text, quoteSingle)
}

func quoteText(val string) string { return string(appendQuoted(nil, val)) }

func appendIntLiteral(text []byte, val int64, quoted bool) []byte {
	if quoted {
		text = append(text, quoteSingle)
		text = strconv.AppendInt(text, val, 10)
		return append(text, quoteSingle)
	}
	return strconv.AppendInt(text, val, 10)
}

func appendUintLiteral(text []byte, val uint64, quoted bool) []byte {
	if quoted {
		text = append(text, quoteSingle)
		text = strconv.AppendUint(text, val, 10)
		return append(text, quoteSingle)
	}
	return strconv.AppendUint(text, val, 10)
}

// NaN collapses to `NULL` unconditionally; quoting wraps only the numeral
// form.
func appendFloatLiteral(text []byte, val float64, quoted bool) []byte {
	if math.IsNaN(val) {
		return appendNull(text)
	}
	if quoted {
		text = append(text, quoteSingle)
		text = strconv.AppendFloat(text, val, 'f', -1, 64)
		return append(text, quoteSingle)
	}
	return strconv.AppendFloat(text, val, 'f', -1, 64)
}

func appendAnyLiteral(text []byte, val any, quoted bool) []byte {
	switch kindOf(val) {
	case r.Map, r.Slice, r.Array, r.Struct:
		out := jsonText(val)
		if quoted {
			text = append(text, quoteSingle)
			text = append(text, out...)
			return append(text, quoteSingle)
		}
		return append(text, out...)
	}

	// Unknown types degrade to their plain text form, quoted only on
	// request.
	if quoted {
		return appendQuoted(text, fmt.Sprint(val))
	}
	return append(text, fmt.Sprint(val)...)
}

func jsonText(val any) []byte {
	out, err := json.Marshal(val)
	if err != nil {
		panic(ErrInvalidInput{Err{`encoding literal as JSON`, err}})
	}
	return out
}
