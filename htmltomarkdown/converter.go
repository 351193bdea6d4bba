// Package htmltomarkdown converts post content HTML to Markdown for
// the text export path.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/threadbook/threadbook"
)

// Ensure Converter implements threadbook.Converter at compile time.
var _ threadbook.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert post HTML to Markdown.
// Forum posts are br-separated prose with occasional emphasis and
// images; the commonmark plugin covers all of it.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown. Empty input is
// EINVALID rather than an empty document, so callers notice posts
// whose content block produced nothing.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", threadbook.Errorf(threadbook.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return result, nil
}
