package rawdoc

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Row is one loosely typed row object of a section.
type Row map[string]interface{}

// AsRow returns v as a Row when it is an object.
func AsRow(v interface{}) (Row, bool) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, false
	}
	return Row(m), true
}

// Value returns the value of the first of keys present with a non-nil value.
func (r Row) Value(keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// Has reports whether any of keys holds a non-nil value.
func (r Row) Has(keys ...string) bool {
	return r.Value(keys...) != nil
}

// String returns the first present key as trimmed text. Numbers are rendered
// in their source form.
func (r Row) String(keys ...string) string {
	switch v := r.Value(keys...).(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
