package schema

import (
	"encoding/json"
	"strings"
	"time"
)

// Coerce converts a raw decoded value into kind's semantic type.
//
// Date and datetime fields arrive as Unix timestamps (integer or float
// seconds), so those are converted to time.Time; a value that is already
// a time.Time passes through, which is what merged update views carry.
// Every other kind is an identity conversion guarded by a strict type
// check — no numeric widening, so an integer token is rejected where a
// float is expected.
func Coerce(raw any, kind Kind) (any, bool) {
	switch kind {
	case KindDate, KindDatetime:
		if t, ok := raw.(time.Time); ok {
			return t, true
		}
		return timestampToTime(raw)
	default:
		if !Matches(raw, kind) {
			return nil, false
		}
		return raw, true
	}
}

// Matches reports whether v's runtime type already satisfies kind.
// JSON bodies are decoded with json.Number, so the integer/float split
// is decided by the number token itself: "4" is an integer, "4.0" a float.
func Matches(v any, kind Kind) bool {
	switch kind {
	case KindInt:
		_, ok := AsInt(v)
		return ok
	case KindFloat:
		switch n := v.(type) {
		case float64:
			return true
		case json.Number:
			return isFloatToken(n.String())
		}
		return false
	case KindString:
		_, ok := v.(string)
		return ok
	case KindBool:
		_, ok := v.(bool)
		return ok
	case KindDate, KindDatetime:
		_, ok := v.(time.Time)
		return ok
	}
	return false
}

// AsInt extracts an integer from a raw decoded value. A json.Number
// qualifies only when its token has no fraction or exponent.
func AsInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		if isFloatToken(n.String()) {
			return 0, false
		}
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// AsFloat extracts a float from a raw decoded value holding a float token.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		if !isFloatToken(n.String()) {
			return 0, false
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// TypeName names v's runtime type the way clients see it in error
// messages: the JSON vocabulary, not Go type names.
func TypeName(v any) string {
	switch n := v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		if isFloatToken(n.String()) {
			return "float"
		}
		return "integer"
	case int, int64:
		return "integer"
	case float64:
		return "float"
	case []any:
		return "list"
	case map[string]any:
		return "object"
	case time.Time:
		return "datetime"
	}
	return "unknown"
}

func isFloatToken(s string) bool {
	return strings.ContainsAny(s, ".eE")
}

// timestampToTime converts integer or float Unix seconds to a time.Time,
// rejecting non-numeric input and timestamps outside the representable
// calendar range.
func timestampToTime(raw any) (any, bool) {
	var t time.Time
	switch n := raw.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			t = time.Unix(i, 0).UTC()
		} else if f, err := n.Float64(); err == nil {
			t = floatToTime(f)
		} else {
			return nil, false
		}
	case int64:
		t = time.Unix(n, 0).UTC()
	case int:
		t = time.Unix(int64(n), 0).UTC()
	case float64:
		t = floatToTime(n)
	default:
		return nil, false
	}
	if y := t.Year(); y < 1 || y > 9999 {
		return nil, false
	}
	return t, true
}

func floatToTime(f float64) time.Time {
	sec := int64(f)
	nsec := int64((f - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC()
}
