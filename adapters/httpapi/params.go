package httpapi

import (
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// RawParams builds the raw parameter map the evaluator consumes from
// an HTTP request: query string values merged with a JSON object body.
// Raw values are strings, arrays of strings, or nested maps of same;
// typing them is the schema's job, not the transport's.
func RawParams(r *http.Request, body []byte) (map[string]any, error) {
	raw := make(map[string]any)

	for key, vals := range r.URL.Query() {
		switch len(vals) {
		case 0:
		case 1:
			raw[key] = vals[0]
		default:
			raw[key] = append([]string(nil), vals...)
		}
	}

	if len(body) > 0 {
		if !gjson.ValidBytes(body) {
			return nil, fmt.Errorf("body is not valid JSON")
		}
		doc := gjson.ParseBytes(body)
		if !doc.IsObject() {
			return nil, fmt.Errorf("body must be a JSON object")
		}
		// Body keys win over query keys.
		mergeObject(raw, doc)
	}

	return raw, nil
}

func mergeObject(dst map[string]any, obj gjson.Result) {
	obj.ForEach(func(key, value gjson.Result) bool {
		if v, ok := rawValue(value); ok {
			dst[key.String()] = v
		}
		return true
	})
}

// rawValue flattens a JSON value into the raw shapes the engine
// accepts. Scalars keep their literal string form so coercion sees
// exactly what the client wrote; null means absent.
func rawValue(v gjson.Result) (any, bool) {
	switch v.Type {
	case gjson.Null:
		return nil, false
	case gjson.String:
		return v.String(), true
	case gjson.Number, gjson.True, gjson.False:
		return v.Raw, true
	default:
		if v.IsObject() {
			sub := make(map[string]any)
			mergeObject(sub, v)
			return sub, true
		}
		if v.IsArray() {
			var items []string
			for _, item := range v.Array() {
				if item.Type == gjson.String {
					items = append(items, item.String())
				} else {
					items = append(items, item.Raw)
				}
			}
			return items, true
		}
		return v.String(), true
	}
}
