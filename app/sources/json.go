package sources

import (
	"fmt"
	"strconv"
)

// JSON payloads are decoded into map[string]any first; the helpers below
// walk that loosely-typed shape so the adapters can map it into the
// canonical type without upstream structure leaking further.

// jsonObject returns the object value under key, or nil.
func jsonObject(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	obj, _ := m[key].(map[string]any)
	return obj
}

// jsonList probes the given keys in priority order and returns the first
// array value. An absent or non-array value yields nil.
func jsonList(m map[string]any, keys ...string) []any {
	for _, key := range keys {
		if list, ok := m[key].([]any); ok {
			return list
		}
	}
	return nil
}

// jsonString renders a scalar field as a string. Numbers are common where
// the API docs promise strings, so both are accepted.
func jsonString(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return fmt.Sprintf("%v", v)
	default:
		return ""
	}
}
