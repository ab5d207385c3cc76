package wpextract

import (
	"context"
	"strings"
)

// Page represents one piece of WordPress content as returned by the REST
// API: the rendered HTML body plus the metadata needed for extraction and
// output naming.
type Page struct {
	// Type is the REST base of the content type ("pages", "posts", or a
	// custom post type's rest_base).
	Type string

	ID    int
	Slug  string
	Title string

	// URL is the canonical link to the page.
	URL string

	// HTML is the rendered content body. It may contain page-builder
	// shortcodes that survived WordPress rendering.
	HTML string
}

// FileName returns the output filename for this page with the given
// extension, e.g. "pages-dealers.txt". The type prefix disambiguates slug
// collisions across content types.
func (p *Page) FileName(ext string) string {
	slug := p.Slug
	if slug == "" {
		slug = "untitled"
	}
	return p.Type + "-" + slug + ext
}

// Validate returns an error if the page cannot be processed.
func (p *Page) Validate() error {
	if p.Type == "" {
		return Errorf(EINVALID, "page type required")
	}
	if strings.TrimSpace(p.HTML) == "" && strings.TrimSpace(p.Title) == "" {
		return Errorf(EINVALID, "page has no content")
	}
	return nil
}

// RenderedPage holds the three textual renderings of one page plus the
// merged business records extracted from it. All three renderings are
// pure functions of the page's HTML, title and URL together with the
// merged business set; none depends on another rendering's output.
type RenderedPage struct {
	RawText      string
	PrettyText   string
	MarkdownText string
	Businesses   []*Business
}

// Content is the input handed to extraction strategies: the raw markup
// and the cleaned plain-text derivation of the same page. Strategies pick
// whichever form their patterns operate on.
type Content struct {
	// HTML is the page body as delivered, shortcodes included.
	HTML string

	// Text is the enhanced, shortcode-cleaned plain text.
	Text string
}

// Strategy is one entity-extraction strategy. Implementations are pure:
// they never fail, never mutate the content, and return an empty slice
// when the structure they look for is absent.
type Strategy interface {
	// Name identifies the strategy; it doubles as the Source tag on the
	// businesses it produces.
	Name() string

	// Extract returns zero or more candidate businesses found in content.
	Extract(content *Content) []*Business
}

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the document at url. The context controls timeout
	// and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// ExtractResult holds the main content extracted from a full HTML
// document (as opposed to a REST-rendered body, which is content-only
// already).
type ExtractResult struct {
	// Title is the document title from page metadata.
	Title string

	// ContentHTML is the main content with boilerplate (nav, footer,
	// sidebar) removed.
	ContentHTML string
}

// ContentExtractor extracts main content from full HTML documents.
type ContentExtractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown. It is the pluggable markdown
// engine for the renderer: the directory-tuned walker is the default and
// a generic commonmark conversion is the alternative.
type Converter interface {
	Convert(html string) (string, error)
}

// PageWriter persists a page's renderings under a site directory.
type PageWriter interface {
	WritePage(ctx context.Context, site string, page *Page, rendered *RenderedPage) error
}
