package codec

import (
    "bufio"
    "bytes"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "path/filepath"
    "strings"

    "golang.org/x/net/html/charset"
    "golang.org/x/text/transform"
    yaml "gopkg.in/yaml.v3"

    "github.com/hyperifyio/imagerefs/internal/record"
)

// Format names a record stream encoding.
type Format string

const (
    FormatJSON   Format = "json"   // array of objects
    FormatNDJSON Format = "ndjson" // one object per line
    FormatYAML   Format = "yaml"   // sequence of mappings
)

var (
    // ErrNotObject is returned when a stream element is not an object.
    ErrNotObject = errors.New("codec: element is not an object")
    // ErrUnknownCharset is returned when the input charset label is not recognized.
    ErrUnknownCharset = errors.New("codec: unknown charset")
)

// ParseFormat normalizes a user supplied format name. Empty yields "".
func ParseFormat(s string) (Format, error) {
    switch strings.ToLower(strings.TrimSpace(s)) {
    case "":
        return "", nil
    case "json":
        return FormatJSON, nil
    case "ndjson", "jsonl", "jsonlines":
        return FormatNDJSON, nil
    case "yaml", "yml":
        return FormatYAML, nil
    }
    return "", fmt.Errorf("codec: unknown format %q", s)
}

// DetectFormat picks a format from the file extension, defaulting to JSON
// for stdio ("-") and unknown extensions.
func DetectFormat(path string) Format {
    switch strings.ToLower(filepath.Ext(path)) {
    case ".ndjson", ".jsonl":
        return FormatNDJSON
    case ".yaml", ".yml":
        return FormatYAML
    }
    return FormatJSON
}

// Decode reads all records from r. When charsetLabel is non-empty the input
// is transcoded to UTF-8 first (WHATWG Encoding labels, e.g.
// "latin1", "windows-1252", "utf-16le").
func Decode(r io.Reader, f Format, charsetLabel string) ([]record.Record, error) {
    if label := strings.TrimSpace(charsetLabel); label != "" {
        enc, name := charset.Lookup(label)
        if enc == nil {
            return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, label)
        }
        if !strings.EqualFold(name, "utf-8") {
            r = transform.NewReader(r, enc.NewDecoder())
        }
    }
    switch f {
    case FormatNDJSON:
        return decodeNDJSON(r)
    case FormatYAML:
        return decodeYAML(r)
    default:
        return decodeJSON(r)
    }
}

func decodeJSON(r io.Reader) ([]record.Record, error) {
    var raw []any
    dec := json.NewDecoder(r)
    if err := dec.Decode(&raw); err != nil {
        if errors.Is(err, io.EOF) {
            return nil, nil
        }
        return nil, fmt.Errorf("parse json: %w", err)
    }
    return toRecords(raw)
}

func decodeNDJSON(r io.Reader) ([]record.Record, error) {
    scanner := bufio.NewScanner(r)
    scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
    var out []record.Record
    line := 0
    for scanner.Scan() {
        line++
        b := bytes.TrimSpace(scanner.Bytes())
        if len(b) == 0 {
            continue
        }
        var v any
        if err := json.Unmarshal(b, &v); err != nil {
            return nil, fmt.Errorf("parse ndjson line %d: %w", line, err)
        }
        rec, ok := asRecord(v)
        if !ok {
            return nil, fmt.Errorf("line %d: %w", line, ErrNotObject)
        }
        out = append(out, rec)
    }
    if err := scanner.Err(); err != nil {
        return nil, fmt.Errorf("read ndjson: %w", err)
    }
    return out, nil
}

func decodeYAML(r io.Reader) ([]record.Record, error) {
    var raw []any
    if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
        if errors.Is(err, io.EOF) {
            return nil, nil
        }
        return nil, fmt.Errorf("parse yaml: %w", err)
    }
    for i := range raw {
        raw[i] = stringKeys(raw[i])
    }
    return toRecords(raw)
}

func toRecords(raw []any) ([]record.Record, error) {
    out := make([]record.Record, 0, len(raw))
    for i, v := range raw {
        rec, ok := asRecord(v)
        if !ok {
            return nil, fmt.Errorf("element %d: %w", i, ErrNotObject)
        }
        out = append(out, rec)
    }
    return out, nil
}

func asRecord(v any) (record.Record, bool) {
    switch m := v.(type) {
    case map[string]any:
        return record.Record(m), true
    case map[any]any:
        rec := make(record.Record, len(m))
        for k, c := range m {
            ks, ok := k.(string)
            if !ok {
                return nil, false
            }
            rec[ks] = c
        }
        return rec, true
    }
    return nil, false
}

// stringKeys rewrites YAML mappings with non-string keys (map[any]any) into
// map[string]any, recursively, so every decoded record can be written as JSON.
func stringKeys(v any) any {
    switch t := v.(type) {
    case map[any]any:
        m := make(map[string]any, len(t))
        for k, c := range t {
            m[fmt.Sprint(k)] = stringKeys(c)
        }
        return m
    case map[string]any:
        for k, c := range t {
            t[k] = stringKeys(c)
        }
        return t
    case []any:
        for i, c := range t {
            t[i] = stringKeys(c)
        }
        return t
    }
    return v
}

// Options tunes Encode.
type Options struct {
    // Indent pretty-prints JSON arrays with the given prefix per level.
    Indent string
}

// Encode writes recs to w in format f.
func Encode(w io.Writer, f Format, recs []record.Record, opts Options) error {
    if recs == nil {
        recs = []record.Record{}
    }
    switch f {
    case FormatNDJSON:
        enc := json.NewEncoder(w)
        enc.SetEscapeHTML(false)
        for i, r := range recs {
            if err := enc.Encode(r); err != nil {
                return fmt.Errorf("encode ndjson record %d: %w", i, err)
            }
        }
        return nil
    case FormatYAML:
        enc := yaml.NewEncoder(w)
        enc.SetIndent(2)
        if err := enc.Encode(recs); err != nil {
            return fmt.Errorf("encode yaml: %w", err)
        }
        return enc.Close()
    default:
        enc := json.NewEncoder(w)
        enc.SetEscapeHTML(false)
        if opts.Indent != "" {
            enc.SetIndent("", opts.Indent)
        }
        if err := enc.Encode(recs); err != nil {
            return fmt.Errorf("encode json: %w", err)
        }
        return nil
    }
}
