package app

import (
    "fmt"
    "strings"

    "github.com/hyperifyio/imagerefs/internal/imageref"
)

// buildSummaryMarkdown renders the references grouped by input record. Each
// non-empty reference becomes a Markdown link so the PDF writer can make it
// clickable.
func buildSummaryMarkdown(inputCount int, refs []imageref.Reference) string {
    var b strings.Builder
    b.WriteString("# Image references\n\n")
    fmt.Fprintf(&b, "Input records: %d\n\n", inputCount)
    fmt.Fprintf(&b, "References: %d\n", len(refs))
    current := -1
    n := 0
    for _, r := range refs {
        if r.Record != current {
            current = r.Record
            n = 0
            fmt.Fprintf(&b, "\n## Record %d\n\n", r.Record+1)
        }
        n++
        name := strings.TrimSpace(r.Name)
        switch {
        case name == "":
            fmt.Fprintf(&b, "%d. (empty)\n", n)
        case strings.ContainsAny(name, "[]()"):
            fmt.Fprintf(&b, "%d. %s\n", n, name)
        default:
            fmt.Fprintf(&b, "%d. [%s](%s)\n", n, name, name)
        }
    }
    return b.String()
}
