package filter

import (
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
)

// Kind identifies which branch of the Value union is set.
type Kind int

const (
	KindAbsent  Kind = iota
	KindString       // raw text, may itself hold JSON
	KindLiteral      // number, bool or any other non-text scalar in string form
	KindList
)

// Value is a filter as it arrives from storage or a request body:
// absent, a single string, a scalar, or a list of further values.
// It is only ever read by Normalize.
type Value struct {
	kind  Kind
	text  string
	items []Value
}

// Absent returns the empty filter.
func Absent() Value { return Value{} }

// String returns a text filter. The text is kept verbatim so that
// JSON-encoded arrays stored as strings can be detected later.
func String(s string) Value { return Value{kind: KindString, text: s} }

// Literal returns a non-text scalar already rendered as a string.
func Literal(s string) Value { return Value{kind: KindLiteral, text: s} }

// List returns a list filter.
func List(items ...Value) Value {
	return Value{kind: KindList, items: items}
}

// Strings is a convenience for List(String(s0), String(s1), ...).
func Strings(ss ...string) Value {
	items := make([]Value, len(ss))
	for i, s := range ss {
		items[i] = String(s)
	}
	return List(items...)
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Items returns the list elements, or nil for non-list values.
func (v Value) Items() []Value { return v.items }

// Text returns the scalar text, or "" for absent and list values.
func (v Value) Text() string { return v.text }

// FromAny converts a decoded JSON or TOML value into a Value.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Absent()
	case Value:
		return t
	case string:
		return String(t)
	case json.Number:
		return Literal(t.String())
	case float64:
		return Literal(strconv.FormatFloat(t, 'f', -1, 64))
	case float32:
		return Literal(strconv.FormatFloat(float64(t), 'f', -1, 32))
	case int:
		return Literal(strconv.Itoa(t))
	case int64:
		return Literal(strconv.FormatInt(t, 10))
	case bool:
		return Literal(strconv.FormatBool(t))
	case []string:
		return Strings(t...)
	case []Value:
		return List(t...)
	case []any:
		items := make([]Value, len(t))
		for i, e := range t {
			items[i] = FromAny(e)
		}
		return List(items...)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return Absent()
		}
		return Literal(string(b))
	}
}

// FromColumn maps a nullable text column to a Value.
func FromColumn(ns sql.NullString) Value {
	if !ns.Valid {
		return Absent()
	}
	return String(ns.String)
}

// Column is the inverse of FromColumn. Lists are stored as JSON arrays,
// strings are stored verbatim.
func (v Value) Column() sql.NullString {
	switch v.kind {
	case KindAbsent:
		return sql.NullString{}
	case KindString, KindLiteral:
		return sql.NullString{String: v.text, Valid: true}
	default:
		b, _ := json.Marshal(v)
		return sql.NullString{String: string(b), Valid: true}
	}
}

// String form used when a non-text element has to be coerced.
// Lists render comma-joined.
func (v Value) coerce() string {
	switch v.kind {
	case KindList:
		parts := make([]string, 0, len(v.items))
		for _, it := range v.items {
			parts = append(parts, it.coerce())
		}
		return strings.Join(parts, ",")
	default:
		return v.text
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindAbsent:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.text)
	case KindLiteral:
		if json.Valid([]byte(v.text)) {
			return []byte(v.text), nil
		}
		return json.Marshal(v.text)
	default:
		items := v.items
		if items == nil {
			items = []Value{}
		}
		return json.Marshal(items)
	}
}

func (v *Value) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(b)))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return err
	}
	*v = FromAny(x)
	return nil
}
