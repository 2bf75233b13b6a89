package imageref

import "regexp"

// imagePattern matches ![alt](target) and captures the target. Both segments
// are non-greedy and stop at line terminators (\n, \r, U+2028, U+2029), so
// nested or escaped brackets are matched as written rather than balanced.
var imagePattern = regexp.MustCompile(`!\[[^\n\r\x{2028}\x{2029}]*?\]\(([^\n\r\x{2028}\x{2029}]*?)\)`)

// Scanner finds image references in document text.
// Implementations can swap matching tactics without changing callers.
type Scanner interface {
    // Names returns the captured targets in order of appearance.
    // Implementations should be deterministic and avoid side effects.
    Names(text string) []string
}

// PatternScanner uses the Markdown image pattern.
type PatternScanner struct{}

func (PatternScanner) Names(text string) []string {
    return Names(text)
}

// Names returns every non-overlapping Markdown image target in text, left to
// right. Empty targets and duplicates are kept.
func Names(text string) []string {
    if text == "" {
        return nil
    }
    matches := imagePattern.FindAllStringSubmatch(text, -1)
    if len(matches) == 0 {
        return nil
    }
    out := make([]string, 0, len(matches))
    for _, m := range matches {
        out = append(out, m[1])
    }
    return out
}
