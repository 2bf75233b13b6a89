package codec

import (
    "bytes"
    "errors"
    "strings"
    "testing"

    "github.com/hyperifyio/imagerefs/internal/record"
)

func TestDecode_JSONArray(t *testing.T) {
    in := `[{"document":{"md_content":"![a](x.png)"}},{}]`
    recs, err := Decode(strings.NewReader(in), FormatJSON, "")
    if err != nil {
        t.Fatalf("Decode error: %v", err)
    }
    if len(recs) != 2 {
        t.Fatalf("expected 2 records, got %d", len(recs))
    }
    if s, ok := recs[0].LookupString(record.ParsePath("document.md_content")); !ok || s != "![a](x.png)" {
        t.Fatalf("unexpected first record: %v", recs[0])
    }
}

func TestDecode_EmptyInputYieldsNoRecords(t *testing.T) {
    for _, f := range []Format{FormatJSON, FormatNDJSON, FormatYAML} {
        recs, err := Decode(strings.NewReader(""), f, "")
        if err != nil || len(recs) != 0 {
            t.Fatalf("%s: expected no records, got %d err=%v", f, len(recs), err)
        }
    }
}

func TestDecode_NDJSONSkipsBlankLines(t *testing.T) {
    in := "{\"id\":1}\n\n  \n{\"id\":2}\n"
    recs, err := Decode(strings.NewReader(in), FormatNDJSON, "")
    if err != nil {
        t.Fatalf("Decode error: %v", err)
    }
    if len(recs) != 2 || recs[1]["id"] != 2.0 {
        t.Fatalf("unexpected records: %v", recs)
    }
}

func TestDecode_NDJSONReportsLine(t *testing.T) {
    _, err := Decode(strings.NewReader("{\"id\":1}\n{oops\n"), FormatNDJSON, "")
    if err == nil || !strings.Contains(err.Error(), "line 2") {
        t.Fatalf("expected line number in error, got %v", err)
    }
}

func TestDecode_YAMLSequence(t *testing.T) {
    in := "- document:\n    md_content: \"![a](x.png)\"\n- title: other\n"
    recs, err := Decode(strings.NewReader(in), FormatYAML, "")
    if err != nil {
        t.Fatalf("Decode error: %v", err)
    }
    if len(recs) != 2 {
        t.Fatalf("expected 2 records, got %d", len(recs))
    }
    if _, ok := recs[0].LookupString(record.ParsePath("document.md_content")); !ok {
        t.Fatalf("expected nested yaml field, got %v", recs[0])
    }
}

func TestDecode_YAMLNonStringKeysEncodeAsJSON(t *testing.T) {
    in := "- meta:\n    1: one\n    true: t\n  list:\n    - 2: two\n"
    recs, err := Decode(strings.NewReader(in), FormatYAML, "")
    if err != nil {
        t.Fatalf("Decode error: %v", err)
    }
    var b bytes.Buffer
    if err := Encode(&b, FormatJSON, recs, Options{}); err != nil {
        t.Fatalf("Encode error: %v", err)
    }
    want := `[{"list":[{"2":"two"}],"meta":{"1":"one","true":"t"}}]`
    if got := strings.TrimSpace(b.String()); got != want {
        t.Fatalf("json=%s, want %s", got, want)
    }
}

func TestDecode_NonObjectElement(t *testing.T) {
    _, err := Decode(strings.NewReader(`[{}, "text"]`), FormatJSON, "")
    if !errors.Is(err, ErrNotObject) {
        t.Fatalf("expected ErrNotObject, got %v", err)
    }
    if !strings.Contains(err.Error(), "element 1") {
        t.Fatalf("expected element index in error, got %v", err)
    }
}

func TestDecode_Latin1Charset(t *testing.T) {
    // "café" with é encoded as a single ISO-8859-1 byte
    in := []byte("[{\"document\":{\"md_content\":\"![caf\xe9](caf\xe9.png)\"}}]")
    recs, err := Decode(bytes.NewReader(in), FormatJSON, "latin1")
    if err != nil {
        t.Fatalf("Decode error: %v", err)
    }
    s, _ := recs[0].LookupString(record.ParsePath("document.md_content"))
    if s != "![café](café.png)" {
        t.Fatalf("unexpected decoded text %q", s)
    }
}

func TestDecode_UnknownCharset(t *testing.T) {
    _, err := Decode(strings.NewReader("[]"), FormatJSON, "no-such-charset")
    if !errors.Is(err, ErrUnknownCharset) {
        t.Fatalf("expected ErrUnknownCharset, got %v", err)
    }
}

func TestEncode_Formats(t *testing.T) {
    recs := []record.Record{{"imageName": "x.png"}, {"imageName": "<y>.png"}}

    var js bytes.Buffer
    if err := Encode(&js, FormatJSON, recs, Options{}); err != nil {
        t.Fatalf("Encode json: %v", err)
    }
    if got := strings.TrimSpace(js.String()); got != `[{"imageName":"x.png"},{"imageName":"<y>.png"}]` {
        t.Fatalf("unexpected json %q", got)
    }

    var nd bytes.Buffer
    if err := Encode(&nd, FormatNDJSON, recs, Options{}); err != nil {
        t.Fatalf("Encode ndjson: %v", err)
    }
    if lines := strings.Split(strings.TrimSpace(nd.String()), "\n"); len(lines) != 2 {
        t.Fatalf("expected 2 ndjson lines, got %q", nd.String())
    }

    var ym bytes.Buffer
    if err := Encode(&ym, FormatYAML, recs, Options{}); err != nil {
        t.Fatalf("Encode yaml: %v", err)
    }
    if !strings.Contains(ym.String(), "imageName: x.png") {
        t.Fatalf("unexpected yaml %q", ym.String())
    }
}

func TestEncode_EmptyJSONIsArray(t *testing.T) {
    var b bytes.Buffer
    if err := Encode(&b, FormatJSON, nil, Options{Indent: "  "}); err != nil {
        t.Fatalf("Encode error: %v", err)
    }
    if got := strings.TrimSpace(b.String()); got != "[]" {
        t.Fatalf("expected empty array, got %q", got)
    }
}

func TestParseAndDetectFormat(t *testing.T) {
    if f, err := ParseFormat("JSONL"); err != nil || f != FormatNDJSON {
        t.Fatalf("ParseFormat jsonl=%q err=%v", f, err)
    }
    if _, err := ParseFormat("xml"); err == nil {
        t.Fatalf("expected error for unknown format")
    }
    if DetectFormat("items.yml") != FormatYAML || DetectFormat("items.jsonl") != FormatNDJSON || DetectFormat("-") != FormatJSON {
        t.Fatalf("DetectFormat mismatch")
    }
}
