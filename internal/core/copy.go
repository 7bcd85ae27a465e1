package core

import (
	"fmt"

	clone "github.com/huandu/go-clone/generic"
	"github.com/mitchellh/copystructure"
)

// CloneTree returns a deep copy of a JSON tree. JSON trees never contain
// cycles, which copystructure does not support.
func CloneTree(tree any) (any, error) {
	if tree == nil {
		return nil, nil
	}
	dst, err := copystructure.Copy(tree)
	if err != nil {
		return nil, fmt.Errorf("clone tree: %w", err)
	}
	return dst, nil
}

// MustCloneTree is like CloneTree but panics on failure.
func MustCloneTree(tree any) any {
	dst, err := CloneTree(tree)
	if err != nil {
		panic(err)
	}
	return dst
}

// Copy creates a deep copy of an arbitrary typed value. Unlike CloneTree it
// handles cyclic references and unexported fields. A nil interface value is
// returned as is.
func Copy[T any](src T) T {
	if any(src) == nil {
		return src
	}
	return clone.Clone(src)
}
