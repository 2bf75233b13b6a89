package imageref

import (
    "github.com/rs/zerolog/log"

    "github.com/hyperifyio/imagerefs/internal/record"
)

const (
    // DefaultSource is the field holding the Markdown document body.
    DefaultSource = "document.md_content"
    // DefaultTarget is the attribute added to each output record.
    DefaultTarget = "imageName"
)

// Stats counts what one Extract pass saw.
type Stats struct {
    Records     int // input records
    WithoutText int // records with no resolvable body
    WithImages  int // records contributing at least one output
    References  int // output records produced
    Skipped     int // references dropped because the target path conflicted
}

// Extractor fans each input record out into one copy per image reference
// found in its document body.
type Extractor struct {
    Source  record.Path
    Target  record.Path
    Scanner Scanner

    // HTMLSource is consulted only when Source is absent; its value is
    // converted to Markdown before scanning. Empty disables the fallback.
    HTMLSource record.Path
    Converter  Converter
}

// New returns an Extractor reading DefaultSource and writing DefaultTarget.
func New() *Extractor {
    return &Extractor{
        Source:  record.ParsePath(DefaultSource),
        Target:  record.ParsePath(DefaultTarget),
        Scanner: PatternScanner{},
    }
}

// Extract returns one record per image reference, ordered by input record and
// then by position within its text. Inputs are never modified and records
// without a body contribute nothing.
func (e *Extractor) Extract(records []record.Record) []record.Record {
    out, _ := e.ExtractWithStats(records)
    return out
}

// ExtractWithStats is Extract plus counters for the pass.
func (e *Extractor) ExtractWithStats(records []record.Record) ([]record.Record, Stats) {
    st := Stats{Records: len(records)}
    out := make([]record.Record, 0, len(records))
    for i, rec := range records {
        text, ok := e.body(rec)
        if !ok {
            st.WithoutText++
            continue
        }
        names := e.scanner().Names(text)
        if len(names) == 0 {
            continue
        }
        emitted := 0
        for _, name := range names {
            item := rec.Clone()
            if err := item.Set(e.target(), name); err != nil {
                st.Skipped++
                log.Debug().Err(err).Int("record", i).Str("target", e.target().String()).Msg("cannot set image reference")
                continue
            }
            out = append(out, item)
            emitted++
        }
        if emitted > 0 {
            st.WithImages++
            st.References += emitted
        }
    }
    return out, st
}

func (e *Extractor) body(rec record.Record) (string, bool) {
    src := e.Source
    if len(src) == 0 {
        src = record.ParsePath(DefaultSource)
    }
    if text, ok := rec.LookupString(src); ok {
        return text, true
    }
    if len(e.HTMLSource) == 0 || e.Converter == nil {
        return "", false
    }
    html, ok := rec.LookupString(e.HTMLSource)
    if !ok {
        return "", false
    }
    md, err := e.Converter.ToMarkdown(html)
    if err != nil {
        log.Debug().Err(err).Str("field", e.HTMLSource.String()).Msg("html conversion failed")
        return "", false
    }
    return md, md != ""
}

func (e *Extractor) scanner() Scanner {
    if e.Scanner == nil {
        return PatternScanner{}
    }
    return e.Scanner
}

func (e *Extractor) target() record.Path {
    if len(e.Target) == 0 {
        return record.ParsePath(DefaultTarget)
    }
    return e.Target
}

// Reference is one image reference and the index of the input record it was
// found in.
type Reference struct {
    Record int
    Name   string
}

// References lists what Extract would emit without copying any records.
func (e *Extractor) References(records []record.Record) []Reference {
    var out []Reference
    for i, rec := range records {
        text, ok := e.body(rec)
        if !ok {
            continue
        }
        for _, name := range e.scanner().Names(text) {
            out = append(out, Reference{Record: i, Name: name})
        }
    }
    return out
}
