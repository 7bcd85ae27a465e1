package patch

import (
	"sort"

	"github.com/Mayur-Pagote/README-Design-Kit-sub001/internal/core"
)

// Diff compares two JSON trees and returns a Patch that transforms a into b,
// so that Apply(a, Diff(a, b)) is equal to b.
//
// Objects are compared key by key (in sorted key order). Arrays are compared
// index by index with no move detection: elements past the end of b are
// removed from the highest index down, elements past the end of a are created
// in ascending order. A reordered array therefore shows up as per-index
// changes. Values of different kinds at the same path are replaced whole.
//
// If a and b are equal, it returns nil.
func Diff(a, b any) Patch {
	var p Patch
	diffRecursive(nil, a, b, &p)
	return p
}

func diffRecursive(path Path, a, b any, p *Patch) {
	ka, kb := core.KindOf(a), core.KindOf(b)

	switch {
	case ka == core.KindObject && kb == core.KindObject:
		diffObject(path, a.(map[string]any), b.(map[string]any), p)
	case ka == core.KindArray && kb == core.KindArray:
		diffArray(path, a.([]any), b.([]any), p)
	case ka == kb && core.ScalarEqual(a, b):
		// Same leaf.
	default:
		*p = append(*p, Record{
			Path:     path,
			Type:     Change,
			Value:    core.MustCloneTree(b),
			OldValue: core.MustCloneTree(a),
		})
	}
}

func diffObject(path Path, a, b map[string]any, p *Patch) {
	for _, k := range sortedKeys(a) {
		vb, ok := b[k]
		if !ok {
			*p = append(*p, Record{
				Path:     path.Append(core.KeyPart(k)),
				Type:     Remove,
				OldValue: core.MustCloneTree(a[k]),
			})
			continue
		}
		diffRecursive(path.Append(core.KeyPart(k)), a[k], vb, p)
	}

	for _, k := range sortedKeys(b) {
		if _, ok := a[k]; ok {
			continue
		}
		*p = append(*p, Record{
			Path:  path.Append(core.KeyPart(k)),
			Type:  Create,
			Value: core.MustCloneTree(b[k]),
		})
	}
}

func diffArray(path Path, a, b []any, p *Patch) {
	common := len(a)
	if len(b) < common {
		common = len(b)
	}

	for i := 0; i < common; i++ {
		diffRecursive(path.Append(core.IndexPart(i)), a[i], b[i], p)
	}

	// Highest index first so each removal leaves the lower indices in place.
	for i := len(a) - 1; i >= len(b); i-- {
		*p = append(*p, Record{
			Path:     path.Append(core.IndexPart(i)),
			Type:     Remove,
			OldValue: core.MustCloneTree(a[i]),
		})
	}

	for i := len(a); i < len(b); i++ {
		*p = append(*p, Record{
			Path:  path.Append(core.IndexPart(i)),
			Type:  Create,
			Value: core.MustCloneTree(b[i]),
		})
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
