package record

// Clone returns a deep structural copy of r. Maps and slices are copied
// recursively; scalars are shared since they are immutable. Cloning a nil
// record yields an empty one.
func (r Record) Clone() Record {
    out := make(Record, len(r))
    for k, v := range r {
        out[k] = cloneValue(v)
    }
    return out
}

func cloneValue(v any) any {
    switch t := v.(type) {
    case map[string]any:
        m := make(map[string]any, len(t))
        for k, c := range t {
            m[k] = cloneValue(c)
        }
        return m
    case Record:
        return t.Clone()
    case map[any]any:
        m := make(map[any]any, len(t))
        for k, c := range t {
            m[k] = cloneValue(c)
        }
        return m
    case []any:
        if t == nil {
            return t
        }
        s := make([]any, len(t))
        for i, c := range t {
            s[i] = cloneValue(c)
        }
        return s
    case []byte:
        if t == nil {
            return t
        }
        return append([]byte(nil), t...)
    default:
        return v
    }
}
