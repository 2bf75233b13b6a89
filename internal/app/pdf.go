package app

import (
    "bufio"
    "regexp"
    "strings"

    "github.com/jung-kurt/gofpdf"
)

var summaryLinkRe = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// summaryPDF lays out the Markdown produced by buildSummaryMarkdown: headings,
// plain lines and list items whose link targets stay clickable.
type summaryPDF struct {
    doc *gofpdf.Fpdf
    tr  func(string) string
}

func newSummaryPDF() *summaryPDF {
    doc := gofpdf.New("P", "mm", "A4", "")
    doc.SetFont("Helvetica", "", 11)
    doc.AddPage()
    // core fonts are cp1252; translate so non-ASCII names survive
    return &summaryPDF{doc: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}
}

func (p *summaryPDF) heading(level int, text string) {
    size := 14.0
    if level > 1 {
        size = 12.0
    }
    p.doc.SetFont("Helvetica", "B", size)
    p.doc.CellFormat(0, 8, p.tr(text), "", 1, "L", false, 0, "")
    p.doc.SetFont("Helvetica", "", 11)
}

func (p *summaryPDF) line(s string) {
    pos := 0
    for _, m := range summaryLinkRe.FindAllStringSubmatchIndex(s, -1) {
        if m[0] > pos {
            p.doc.Write(5, p.tr(s[pos:m[0]]))
        }
        p.doc.WriteLinkString(5, p.tr(s[m[2]:m[3]]), s[m[4]:m[5]])
        pos = m[1]
    }
    if pos < len(s) {
        p.doc.Write(5, p.tr(s[pos:]))
    }
    p.doc.Ln(6)
}

// writeSummaryPDF renders the summary Markdown to outPath.
func writeSummaryPDF(markdown string, outPath string) error {
    p := newSummaryPDF()
    scanner := bufio.NewScanner(strings.NewReader(markdown))
    for scanner.Scan() {
        s := strings.TrimSpace(scanner.Text())
        switch {
        case s == "":
            p.doc.Ln(3)
        case strings.HasPrefix(s, "#"):
            text := strings.TrimLeft(s, "#")
            if text = strings.TrimSpace(text); text != "" {
                p.heading(len(s)-len(strings.TrimLeft(s, "#")), text)
            }
        default:
            p.line(s)
        }
    }
    if err := scanner.Err(); err != nil {
        return err
    }
    return p.doc.OutputFileAndClose(outPath)
}
