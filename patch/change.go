package patch

import (
	"encoding/json"
	"fmt"

	"github.com/Mayur-Pagote/README-Design-Kit-sub001/internal/core"
)

// ChangeType is the kind of a single Change.
type ChangeType string

const (
	Create ChangeType = "CREATE"
	Change ChangeType = "CHANGE"
	Remove ChangeType = "REMOVE"
)

func (t ChangeType) valid() bool {
	switch t {
	case Create, Change, Remove:
		return true
	}
	return false
}

// Key is one segment of a Path: an object key or an array index.
type Key = core.PathPart

// Path locates a value inside a JSON tree. The empty path is the root.
type Path = core.Path

// K returns a Key addressing an object member.
func K(name string) Key { return core.KeyPart(name) }

// I returns a Key addressing an array element.
func I(index int) Key { return core.IndexPart(index) }

// ParsePointer parses an RFC 6901 JSON Pointer into a Path.
func ParsePointer(pointer string) Path { return core.ParsePointer(pointer) }

// Record is a single path-addressed change. Value is set for Create and
// Change; OldValue is set for Change and Remove.
type Record struct {
	Path     Path       `json:"path"`
	Type     ChangeType `json:"type"`
	Value    any        `json:"value,omitempty"`
	OldValue any        `json:"oldValue,omitempty"`
}

type recordJSON struct {
	Path     Path            `json:"path"`
	Type     ChangeType      `json:"type"`
	Value    json.RawMessage `json:"value,omitempty"`
	OldValue json.RawMessage `json:"oldValue,omitempty"`
}

// UnmarshalJSON decodes values as JSON trees so numbers come back as
// json.Number, matching what Diff produces.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if !raw.Type.valid() {
		return fmt.Errorf("%w: unknown change type %q", ErrInvalidChange, raw.Type)
	}

	out := Record{Path: raw.Path, Type: raw.Type}
	if len(raw.Value) > 0 {
		v, err := core.DecodeTree(raw.Value)
		if err != nil {
			return err
		}
		out.Value = v
	}
	if len(raw.OldValue) > 0 {
		v, err := core.DecodeTree(raw.OldValue)
		if err != nil {
			return err
		}
		out.OldValue = v
	}
	*r = out
	return nil
}

func (r Record) String() string {
	switch r.Type {
	case Create:
		return fmt.Sprintf("+ %s: %s", label(r.Path), formatValue(r.Value))
	case Change:
		return fmt.Sprintf("~ %s: %s -> %s", label(r.Path), formatValue(r.OldValue), formatValue(r.Value))
	case Remove:
		return fmt.Sprintf("- %s", label(r.Path))
	default:
		return fmt.Sprintf("? %s", label(r.Path))
	}
}

// label renders a path for humans; the root has no pointer text of its own.
func label(p Path) string {
	if len(p) == 0 {
		return "(root)"
	}
	return p.String()
}

func formatValue(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	const max = 60
	if len(data) > max {
		return string(data[:max-3]) + "..."
	}
	return string(data)
}

// OperationType is an RFC 6902 operation name.
type OperationType string

const (
	OperationTypeAdd     OperationType = "add"
	OperationTypeRemove  OperationType = "remove"
	OperationTypeReplace OperationType = "replace"
	OperationTypeTest    OperationType = "test"
)

// Operation is a single RFC 6902 JSON Patch operation.
type Operation struct {
	Op    OperationType   `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"` // Used for "add", "replace", "test"
}
