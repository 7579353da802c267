package filter

import (
	"encoding/json"
	"strings"
)

// Normalize flattens a filter into its terms: trimmed, non-empty strings in
// source order, duplicates kept. An empty result means the filter is not
// applied. It never fails; text that is not valid JSON is taken literally.
func Normalize(v Value) []string {
	switch v.kind {
	case KindAbsent:
		return []string{}
	case KindList:
		return clean(flatten(v.items))
	case KindString:
		s := strings.TrimSpace(v.text)
		if s == "" {
			return []string{}
		}
		parsed, ok := parseJSON(s)
		if !ok {
			return clean([]Value{String(s)})
		}
		if parsed.kind == KindList {
			return clean(flatten(parsed.items))
		}
		return clean([]Value{parsed})
	default:
		return clean([]Value{v})
	}
}

// NormalizeAll normalizes each value and concatenates the terms.
func NormalizeAll(vs []Value) []string {
	out := []string{}
	for _, v := range vs {
		out = append(out, Normalize(v)...)
	}
	return out
}

// flatten splices nested lists in place, one level only.
func flatten(items []Value) []Value {
	out := make([]Value, 0, len(items))
	for _, it := range items {
		if it.kind == KindList {
			out = append(out, it.items...)
			continue
		}
		out = append(out, it)
	}
	return out
}

func clean(items []Value) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.kind == KindAbsent {
			continue
		}
		if s := strings.TrimSpace(it.coerce()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseJSON(s string) (Value, bool) {
	if !json.Valid([]byte(s)) {
		return Value{}, false
	}
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return Value{}, false
	}
	return FromAny(x), true
}
