package render

import (
	"github.com/fwojciec/wpextract"
)

// Renderer assembles the three renderings of a page. By default the
// markdown rendering uses the directory-tuned line formatter; an
// alternative Converter engine can be plugged in for generic content.
type Renderer struct {
	conv wpextract.Converter
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithConverter sets an HTML to Markdown engine to use instead of the
// directory-tuned formatter. If the engine fails on a page the renderer
// falls back to the formatter for that page.
func WithConverter(c wpextract.Converter) Option {
	return func(r *Renderer) {
		r.conv = c
	}
}

// NewRenderer creates a new Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces all three renderings of a page using the already
// merged business set.
func (r *Renderer) Render(page *wpextract.Page, businesses []*wpextract.Business) *wpextract.RenderedPage {
	rendered := &wpextract.RenderedPage{
		RawText:    Raw(page.Title, page.HTML),
		PrettyText: Pretty(page.Title, page.HTML, businesses),
		Businesses: businesses,
	}
	if r.conv != nil {
		if md, err := r.conv.Convert(page.HTML); err == nil {
			rendered.MarkdownText = md
			return rendered
		}
	}
	rendered.MarkdownText = Markdown(page.Title, page.URL, page.HTML, businesses)
	return rendered
}
