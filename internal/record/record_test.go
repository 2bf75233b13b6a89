package record

import (
    "errors"
    "reflect"
    "testing"
)

func TestParsePath_DropsEmptySegments(t *testing.T) {
    got := ParsePath(" .document..md_content. ")
    want := Path{"document", "md_content"}
    if !reflect.DeepEqual(got, want) {
        t.Fatalf("ParsePath=%v, want %v", got, want)
    }
    if len(ParsePath("")) != 0 {
        t.Fatalf("expected empty path for empty string")
    }
    if got.String() != "document.md_content" {
        t.Fatalf("String=%q", got.String())
    }
}

func TestLookup_NestedAndAbsent(t *testing.T) {
    r := Record{
        "document": map[string]any{"md_content": "![a](x.png)"},
        "flat":     "value",
        "yaml":     map[any]any{"inner": "deep"},
    }
    if v, ok := r.Lookup(ParsePath("document.md_content")); !ok || v != "![a](x.png)" {
        t.Fatalf("expected nested value, got %v ok=%v", v, ok)
    }
    if v, ok := r.Lookup(ParsePath("yaml.inner")); !ok || v != "deep" {
        t.Fatalf("expected yaml-style map lookup, got %v ok=%v", v, ok)
    }
    if _, ok := r.Lookup(ParsePath("missing.md_content")); ok {
        t.Fatalf("expected absent parent to report false")
    }
    if _, ok := r.Lookup(ParsePath("flat.md_content")); ok {
        t.Fatalf("expected non-object intermediate to report false")
    }
    if _, ok := r.Lookup(nil); ok {
        t.Fatalf("expected empty path to report false")
    }
    var nilRec Record
    if _, ok := nilRec.Lookup(ParsePath("document")); ok {
        t.Fatalf("expected nil record to report false")
    }
}

func TestLookupString_OnlyNonEmptyStrings(t *testing.T) {
    r := Record{"doc": map[string]any{"s": "text", "empty": "", "num": 5.0, "null": nil}}
    if s, ok := r.LookupString(Path{"doc", "s"}); !ok || s != "text" {
        t.Fatalf("expected text, got %q ok=%v", s, ok)
    }
    for _, key := range []string{"empty", "num", "null", "missing"} {
        if _, ok := r.LookupString(Path{"doc", key}); ok {
            t.Fatalf("expected %s to be absent", key)
        }
    }
}

func TestSet_CreatesIntermediateObjects(t *testing.T) {
    r := Record{"json": map[string]any{"id": 1.0}}
    if err := r.Set(ParsePath("json.meta.imageName"), "x.png"); err != nil {
        t.Fatalf("Set error: %v", err)
    }
    if v, ok := r.Lookup(ParsePath("json.meta.imageName")); !ok || v != "x.png" {
        t.Fatalf("expected value after Set, got %v ok=%v", v, ok)
    }
    if v, _ := r.Lookup(ParsePath("json.id")); v != 1.0 {
        t.Fatalf("sibling field lost: %v", v)
    }
}

func TestSet_Errors(t *testing.T) {
    r := Record{"flat": "value"}
    if err := r.Set(nil, 1); !errors.Is(err, ErrEmptyPath) {
        t.Fatalf("expected ErrEmptyPath, got %v", err)
    }
    if err := r.Set(ParsePath("flat.child"), 1); !errors.Is(err, ErrPathConflict) {
        t.Fatalf("expected ErrPathConflict, got %v", err)
    }
    if r["flat"] != "value" {
        t.Fatalf("conflicting Set must not modify the record")
    }
}

func TestSet_NilRecord(t *testing.T) {
    var r Record
    if err := r.Set(ParsePath("imageName"), "x.png"); !errors.Is(err, ErrNilRecord) {
        t.Fatalf("expected ErrNilRecord, got %v", err)
    }
    if err := r.Set(nil, "x.png"); !errors.Is(err, ErrEmptyPath) {
        t.Fatalf("expected ErrEmptyPath for empty path on nil record, got %v", err)
    }
}

func TestClone_IsDeepAndEqual(t *testing.T) {
    src := Record{
        "document": map[string]any{"md_content": "x", "tags": []any{"a", map[string]any{"k": "v"}}},
        "yaml":     map[any]any{1: "one"},
        "n":        3.0,
        "blob":     []byte("ab"),
    }
    c := src.Clone()
    if !reflect.DeepEqual(src, c) {
        t.Fatalf("clone differs from source:\n%v\n%v", src, c)
    }

    c["document"].(map[string]any)["md_content"] = "changed"
    c["document"].(map[string]any)["tags"].([]any)[1].(map[string]any)["k"] = "changed"
    c["yaml"].(map[any]any)[1] = "changed"
    c["blob"].([]byte)[0] = 'z'

    if src["document"].(map[string]any)["md_content"] != "x" {
        t.Fatalf("nested map shared with clone")
    }
    if src["document"].(map[string]any)["tags"].([]any)[1].(map[string]any)["k"] != "v" {
        t.Fatalf("map inside slice shared with clone")
    }
    if src["yaml"].(map[any]any)[1] != "one" {
        t.Fatalf("yaml map shared with clone")
    }
    if string(src["blob"].([]byte)) != "ab" {
        t.Fatalf("byte slice shared with clone")
    }
}

func TestClone_Nil(t *testing.T) {
    var r Record
    c := r.Clone()
    if c == nil || len(c) != 0 {
        t.Fatalf("expected empty non-nil clone, got %#v", c)
    }
}
