package core

import (
	"bytes"
	"encoding/json"
)

// Equal reports whether a and b serialize to the same JSON. encoding/json
// sorts map keys, so the encoding is canonical for plain data.
//
// Values that cannot be serialized are never equal, not even to themselves.
func Equal(a, b any) bool {
	da, err := json.Marshal(a)
	if err != nil {
		return false
	}
	db, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(da, db)
}

// ScalarEqual compares two JSON tree leaves. json.Number values are compared
// by their literal text, as the serialization would.
func ScalarEqual(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case json.Number:
		bv, ok := b.(json.Number)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		return Equal(a, b)
	}
}
