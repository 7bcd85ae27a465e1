package history

import (
	"github.com/Mayur-Pagote/README-Design-Kit-sub001/internal/core"
	"github.com/Mayur-Pagote/README-Design-Kit-sub001/patch"
)

// Copy creates a deep copy of src. It correctly handles cyclic references and
// unexported fields.
func Copy[T any](src T) T {
	return core.Copy(src)
}

// Equal reports whether a and b have the same JSON serialization.
func Equal[T any](a, b T) bool {
	return core.Equal(a, b)
}

// Diff compares two values and returns a patch that transforms the JSON form
// of a into the JSON form of b. It returns a nil patch if they are equal.
func Diff[T any](a, b T) (patch.Patch, error) {
	ta, err := core.ToTree(a)
	if err != nil {
		return nil, err
	}
	tb, err := core.ToTree(b)
	if err != nil {
		return nil, err
	}
	return patch.Diff(ta, tb), nil
}

// Apply applies p to the JSON form of v and decodes the result into a new
// value. v is not modified.
func Apply[T any](v T, p patch.Patch) (T, error) {
	var zero T

	tree, err := core.ToTree(v)
	if err != nil {
		return zero, err
	}
	out, err := p.Apply(tree)
	if err != nil {
		return zero, err
	}
	return core.FromTree[T](out)
}
