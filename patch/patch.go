package patch

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Mayur-Pagote/README-Design-Kit-sub001/internal/core"
)

var (
	// ErrPathNotFound is returned when a change addresses a missing key or
	// an intermediate value that does not exist.
	ErrPathNotFound = errors.New("path not found")

	// ErrIndexOutOfRange is returned when a change addresses an array index
	// past the end of the array.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNotContainer is returned when a path walks through a scalar.
	ErrNotContainer = errors.New("not a container")

	// ErrInvalidChange is returned for records with an unknown type.
	ErrInvalidChange = errors.New("invalid change")
)

// Patch is an ordered list of change records. A nil or empty Patch means
// "no difference".
type Patch []Record

// Empty reports whether the patch has no changes.
func (p Patch) Empty() bool {
	return len(p) == 0
}

// Apply applies the patch to a deep copy of state and returns the copy. The
// input tree is never modified.
func (p Patch) Apply(state any) (any, error) {
	return Apply(state, p)
}

func (p Patch) String() string {
	if len(p) == 0 {
		return "<empty>"
	}
	lines := make([]string, len(p))
	for i, r := range p {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}

// Apply applies p to a deep copy of state, change by change, and returns the
// copy.
func Apply(state any, p Patch) (any, error) {
	root, err := core.CloneTree(state)
	if err != nil {
		return nil, err
	}

	for i, r := range p {
		root, err = applyRecord(root, r)
		if err != nil {
			return nil, fmt.Errorf("change %d (%s %s): %w", i, r.Type, label(r.Path), err)
		}
	}
	return root, nil
}

func applyRecord(root any, r Record) (any, error) {
	if !r.Type.valid() {
		return nil, fmt.Errorf("%w: unknown change type %q", ErrInvalidChange, r.Type)
	}

	if len(r.Path) == 0 {
		if r.Type == Remove {
			return nil, nil
		}
		return core.CloneTree(r.Value)
	}
	return update(root, r.Path, r)
}

// update walks node along path and applies r at the final segment. It
// returns the (possibly new) node so that array splices propagate to the
// parent container.
func update(node any, path Path, r Record) (any, error) {
	part := path[0]
	if len(path) == 1 {
		return applyAt(node, part, r)
	}

	switch n := node.(type) {
	case map[string]any:
		key := part.MapKey()
		child, ok := n[key]
		if !ok {
			return nil, fmt.Errorf("%w: key %q", ErrPathNotFound, key)
		}
		child, err := update(child, path[1:], r)
		if err != nil {
			return nil, err
		}
		n[key] = child
		return n, nil
	case []any:
		idx, err := part.SliceIndex()
		if err != nil {
			return nil, err
		}
		if idx >= len(n) {
			return nil, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, idx, len(n))
		}
		child, err := update(n[idx], path[1:], r)
		if err != nil {
			return nil, err
		}
		n[idx] = child
		return n, nil
	default:
		return nil, fmt.Errorf("%w: cannot traverse %T at %q", ErrNotContainer, node, part)
	}
}

func applyAt(parent any, part Key, r Record) (any, error) {
	switch n := parent.(type) {
	case map[string]any:
		key := part.MapKey()
		if r.Type == Remove {
			if _, ok := n[key]; !ok {
				return nil, fmt.Errorf("%w: key %q", ErrPathNotFound, key)
			}
			delete(n, key)
			return n, nil
		}
		v, err := core.CloneTree(r.Value)
		if err != nil {
			return nil, err
		}
		n[key] = v
		return n, nil

	case []any:
		idx, err := part.SliceIndex()
		if err != nil {
			return nil, err
		}
		if r.Type == Remove {
			if idx >= len(n) {
				return nil, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, idx, len(n))
			}
			return append(n[:idx], n[idx+1:]...), nil
		}
		v, err := core.CloneTree(r.Value)
		if err != nil {
			return nil, err
		}
		switch {
		case idx < len(n):
			n[idx] = v
			return n, nil
		case idx == len(n):
			return append(n, v), nil
		default:
			return nil, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, idx, len(n))
		}

	default:
		return nil, fmt.Errorf("%w: cannot set %q on %T", ErrNotContainer, part, parent)
	}
}

// ToJSONPatch returns an RFC 6902 representation of the patch.
func (p Patch) ToJSONPatch() ([]byte, error) {
	return p.toJSONPatch(false)
}

// ToCheckedJSONPatch is like ToJSONPatch but precedes every replace and
// remove with a "test" operation on the value being overwritten, so a
// consumer rejects the patch if the document has drifted.
func (p Patch) ToCheckedJSONPatch() ([]byte, error) {
	return p.toJSONPatch(true)
}

func (p Patch) toJSONPatch(withTests bool) ([]byte, error) {
	ops := make([]Operation, 0, len(p))
	for _, r := range p {
		pointer := r.Path.Pointer()

		if withTests && r.Type != Create {
			old, err := json.Marshal(r.OldValue)
			if err != nil {
				return nil, err
			}
			ops = append(ops, Operation{Op: OperationTypeTest, Path: pointer, Value: old})
		}

		switch r.Type {
		case Create:
			v, err := json.Marshal(r.Value)
			if err != nil {
				return nil, err
			}
			ops = append(ops, Operation{Op: OperationTypeAdd, Path: pointer, Value: v})
		case Change:
			v, err := json.Marshal(r.Value)
			if err != nil {
				return nil, err
			}
			ops = append(ops, Operation{Op: OperationTypeReplace, Path: pointer, Value: v})
		case Remove:
			ops = append(ops, Operation{Op: OperationTypeRemove, Path: pointer})
		default:
			return nil, fmt.Errorf("%w: unknown change type %q", ErrInvalidChange, r.Type)
		}
	}
	return json.Marshal(ops)
}
