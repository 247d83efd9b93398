package extract

import (
	"net/url"
	"strings"
)

// FormDocument converts a urlencoded body into the same shape a JSON body
// decodes to. Bracketed keys nest: "data[email]=a" becomes {"data":{"email":"a"}}.
// Only the first value of a repeated key is kept.
func FormDocument(values url.Values) map[string]any {
	doc := make(map[string]any, len(values))
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		set(doc, splitKey(key), vals[0])
	}
	return doc
}

func splitKey(key string) []string {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return []string{key}
	}
	parts := []string{key[:open]}
	for _, seg := range strings.Split(key[open+1:len(key)-1], "][") {
		parts = append(parts, seg)
	}
	return parts
}

func set(doc map[string]any, path []string, value string) {
	for _, seg := range path[:len(path)-1] {
		child, ok := doc[seg].(map[string]any)
		if !ok {
			child = map[string]any{}
			doc[seg] = child
		}
		doc = child
	}
	doc[path[len(path)-1]] = value
}
