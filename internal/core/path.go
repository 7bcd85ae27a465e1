package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// PathPart is a single segment of a Path. It addresses either an object key
// or an array index.
type PathPart struct {
	Key     string
	Index   int
	IsIndex bool
}

// KeyPart returns a PathPart addressing the object key k.
func KeyPart(k string) PathPart {
	return PathPart{Key: k}
}

// IndexPart returns a PathPart addressing the array index i.
func IndexPart(i int) PathPart {
	return PathPart{Key: strconv.Itoa(i), Index: i, IsIndex: true}
}

func (p PathPart) Equals(other PathPart) bool {
	if p.IsIndex != other.IsIndex {
		return false
	}
	if p.IsIndex {
		return p.Index == other.Index
	}
	return p.Key == other.Key
}

// MapKey returns the object key this part addresses. Index parts are
// rendered in decimal so pointer-parsed paths still address objects.
func (p PathPart) MapKey() string {
	if p.Key == "" && p.IsIndex {
		return strconv.Itoa(p.Index)
	}
	return p.Key
}

// SliceIndex returns the array index this part addresses.
func (p PathPart) SliceIndex() (int, error) {
	if p.IsIndex {
		return p.Index, nil
	}
	idx, err := strconv.Atoi(p.Key)
	if err != nil || idx < 0 {
		return 0, fmt.Errorf("invalid array index: %q", p.Key)
	}
	return idx, nil
}

func (p PathPart) String() string {
	if p.IsIndex {
		return strconv.Itoa(p.Index)
	}
	return p.Key
}

// MarshalJSON encodes index parts as JSON numbers and key parts as JSON
// strings, so the distinction survives a round trip.
func (p PathPart) MarshalJSON() ([]byte, error) {
	if p.IsIndex {
		return []byte(strconv.Itoa(p.Index)), nil
	}
	return json.Marshal(p.Key)
}

func (p *PathPart) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var k string
		if err := json.Unmarshal(data, &k); err != nil {
			return err
		}
		*p = KeyPart(k)
		return nil
	}

	idx, err := strconv.Atoi(string(data))
	if err != nil || idx < 0 {
		return fmt.Errorf("invalid path segment %s", data)
	}
	*p = IndexPart(idx)
	return nil
}

// Path locates a value inside a JSON tree. The empty path is the root.
type Path []PathPart

// Append returns a new Path with part added at the end. The receiver is never
// modified, so sibling paths built from the same parent do not alias.
func (p Path) Append(part PathPart) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, part)
}

func (p Path) Equals(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if !p[i].Equals(other[i]) {
			return false
		}
	}
	return true
}

// String renders the path as an RFC 6901 JSON Pointer. The root is "";
// "/" addresses the key "".
func (p Path) String() string {
	var b strings.Builder
	for _, part := range p {
		b.WriteByte('/')
		if part.IsIndex {
			b.WriteString(strconv.Itoa(part.Index))
		} else {
			b.WriteString(EscapeKey(part.Key))
		}
	}
	return b.String()
}

// Pointer is String under the name RFC 6902 documents use.
func (p Path) Pointer() string {
	return p.String()
}

// ParsePointer parses a JSON Pointer. Numeric tokens are parsed as index
// parts; they still address object keys when the container is an object.
func ParsePointer(pointer string) Path {
	if pointer == "" {
		return nil
	}

	var tokens []string
	if strings.HasPrefix(pointer, "/") {
		tokens = strings.Split(pointer, "/")[1:]
	} else {
		tokens = strings.Split(pointer, "/")
	}

	parts := make(Path, len(tokens))
	for i, token := range tokens {
		token = UnescapeKey(token)
		if idx, err := strconv.Atoi(token); err == nil && idx >= 0 {
			parts[i] = PathPart{Key: token, Index: idx, IsIndex: true}
		} else {
			parts[i] = PathPart{Key: token}
		}
	}
	return parts
}

func EscapeKey(key string) string {
	key = strings.ReplaceAll(key, "~", "~0")
	key = strings.ReplaceAll(key, "/", "~1")
	return key
}

func UnescapeKey(key string) string {
	key = strings.ReplaceAll(key, "~1", "/")
	key = strings.ReplaceAll(key, "~0", "~")
	return key
}
