package record

import (
    "errors"
    "strings"
)

// Record is one decoded pipeline value: a JSON or YAML object whose nested
// values are maps, slices or scalars.
type Record map[string]any

// Path addresses a nested field as an ordered list of map keys.
type Path []string

var (
    // ErrEmptyPath is returned by Set when the path has no segments.
    ErrEmptyPath = errors.New("record: empty path")
    // ErrNilRecord is returned by Set on a nil record.
    ErrNilRecord = errors.New("record: nil record")
    // ErrPathConflict is returned by Set when an intermediate value exists
    // but is not a map.
    ErrPathConflict = errors.New("record: path crosses a non-object value")
)

// ParsePath splits a dotted field path such as "document.md_content".
// Empty segments are dropped, so "a..b" and ".a.b." both yield [a b].
func ParsePath(s string) Path {
    parts := strings.Split(strings.TrimSpace(s), ".")
    p := make(Path, 0, len(parts))
    for _, part := range parts {
        if part = strings.TrimSpace(part); part != "" {
            p = append(p, part)
        }
    }
    return p
}

func (p Path) String() string { return strings.Join(p, ".") }

// Lookup resolves p against r. The boolean is false when any segment is
// missing or an intermediate value is not an object; it never panics.
func (r Record) Lookup(p Path) (any, bool) {
    if len(p) == 0 || r == nil {
        return nil, false
    }
    var cur any = map[string]any(r)
    for _, key := range p {
        next, ok := child(cur, key)
        if !ok {
            return nil, false
        }
        cur = next
    }
    return cur, true
}

// LookupString is Lookup restricted to non-empty strings. Any other value,
// including an empty string, is reported as absent.
func (r Record) LookupString(p Path) (string, bool) {
    v, ok := r.Lookup(p)
    if !ok {
        return "", false
    }
    s, ok := v.(string)
    if !ok || s == "" {
        return "", false
    }
    return s, true
}

// Set stores v at p, creating intermediate objects as needed.
func (r Record) Set(p Path, v any) error {
    if len(p) == 0 {
        return ErrEmptyPath
    }
    if r == nil {
        return ErrNilRecord
    }
    cur := map[string]any(r)
    for _, key := range p[:len(p)-1] {
        next, exists := cur[key]
        if !exists || next == nil {
            m := map[string]any{}
            cur[key] = m
            cur = m
            continue
        }
        switch m := next.(type) {
        case map[string]any:
            cur = m
        case Record:
            cur = m
        default:
            return ErrPathConflict
        }
    }
    cur[p[len(p)-1]] = v
    return nil
}

func child(v any, key string) (any, bool) {
    switch m := v.(type) {
    case map[string]any:
        c, ok := m[key]
        return c, ok
    case Record:
        c, ok := m[key]
        return c, ok
    case map[any]any:
        c, ok := m[key]
        return c, ok
    }
    return nil, false
}
