package core

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind classifies a JSON tree node.
type Kind int

const (
	KindNull Kind = iota
	KindScalar
	KindObject
	KindArray
)

// KindOf returns the Kind of a JSON tree node. Anything that is not nil, an
// object or an array is treated as a scalar.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case map[string]any:
		return KindObject
	case []any:
		return KindArray
	default:
		return KindScalar
	}
}

// ToTree converts v into a plain JSON tree (map[string]any, []any,
// json.Number, string, bool and nil) by round-tripping it through
// encoding/json. Numbers are kept as json.Number so integers do not lose
// precision.
func ToTree(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return DecodeTree(data)
}

// DecodeTree decodes raw JSON into a JSON tree.
func DecodeTree(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	return tree, nil
}

// FromTree decodes a JSON tree back into a value of type T.
func FromTree[T any](tree any) (T, error) {
	var t T
	data, err := json.Marshal(tree)
	if err != nil {
		return t, fmt.Errorf("marshal tree: %w", err)
	}
	if err := json.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("unmarshal state: %w", err)
	}
	return t, nil
}
