package imageref

import (
    "strings"

    "github.com/JohannesKaufmann/html-to-markdown/v2/converter"
    "github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
    "github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
)

// Converter turns an alternate document body into Markdown.
type Converter interface {
    ToMarkdown(body string) (string, error)
}

// HTMLConverter renders HTML as CommonMark so <img> elements become
// Markdown image links.
type HTMLConverter struct {
    conv *converter.Converter
}

// NewHTMLConverter builds a converter with the base and commonmark plugins.
func NewHTMLConverter() *HTMLConverter {
    return &HTMLConverter{
        conv: converter.NewConverter(
            converter.WithPlugins(
                base.NewBasePlugin(),
                commonmark.NewCommonmarkPlugin(),
            ),
        ),
    }
}

func (h *HTMLConverter) ToMarkdown(body string) (string, error) {
    if strings.TrimSpace(body) == "" {
        return "", nil
    }
    return h.conv.ConvertString(body)
}
