// Package extract reads fields out of untyped webhook payloads.
//
// Providers send loosely shaped JSON, so fields are looked up by an ordered
// list of candidates and the first usable value wins. A candidate is either a
// plain top-level key ("customer_email") or an RFC 6901 JSON Pointer
// ("/customer/email").
package extract

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/qri-io/jsonpointer"
)

// Lookup returns the value at a key or JSON Pointer. Scalars have no fields.
func Lookup(doc any, path string) (any, bool) {
	switch doc.(type) {
	case map[string]any, []any:
	default:
		return nil, false
	}
	ptr, err := jsonpointer.Parse(pointer(path))
	if err != nil {
		return nil, false
	}
	v, err := ptr.Eval(doc)
	// jsonpointer returns (nil, nil) for missing keys
	if err != nil || v == nil {
		return nil, false
	}
	return v, true
}

// First returns the first truthy value among the candidates.
func First(doc any, paths ...string) (any, bool) {
	for _, p := range paths {
		if v, ok := Lookup(doc, p); ok && Truthy(v) {
			return v, true
		}
	}
	return nil, false
}

// FirstString returns the first non-blank string among the candidates,
// trimmed. Non-string values are skipped.
func FirstString(doc any, paths ...string) string {
	for _, p := range paths {
		if v, ok := Lookup(doc, p); ok {
			if s, ok := v.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					return s
				}
			}
		}
	}
	return ""
}

// FirstText is like FirstString but also accepts numbers, rendered in decimal.
func FirstText(doc any, paths ...string) string {
	for _, p := range paths {
		if v, ok := Lookup(doc, p); ok && Truthy(v) {
			if s := strings.TrimSpace(Text(v)); s != "" {
				return s
			}
		}
	}
	return ""
}

// Truthy reports whether v counts as present: nil, false, "" and zero are not.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0
	case int:
		return t != 0
	}
	return true
}

// Text renders scalar values as strings. Objects and arrays render as "".
func Text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func pointer(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + strings.NewReplacer("~", "~0", "/", "~1").Replace(path)
}
