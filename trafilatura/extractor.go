// Package trafilatura extracts main content from full HTML documents.
// It is used on the sitemap-crawl path, where pages arrive as complete
// documents with navigation and footer chrome that the REST API path
// never sees.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/wpextract"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements wpextract.ContentExtractor at compile time.
var _ wpextract.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to isolate the main content of a page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes a raw HTML document and returns the main content
// with boilerplate removed, plus the document title.
func (e *Extractor) Extract(rawHTML string) (*wpextract.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, wpextract.Errorf(wpextract.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &wpextract.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
