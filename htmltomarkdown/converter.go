// Package htmltomarkdown provides a generic commonmark conversion
// engine for the renderer. It suits ordinary content pages; the
// directory-tuned formatter in the render package remains the default
// for dealer listings.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/wpextract"
	"github.com/fwojciec/wpextract/normalize"
)

// Ensure Converter implements wpextract.Converter at compile time.
var _ wpextract.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert page HTML to Markdown.
// Page-builder shortcodes are removed before conversion so they don't
// surface as literal bracket noise in the output.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms page HTML into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", wpextract.Errorf(wpextract.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(normalize.CleanShortcodes(html))
	if err != nil {
		return "", err
	}

	return result, nil
}
