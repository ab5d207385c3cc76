package wordpress

import (
	"html"

	"github.com/fwojciec/wpextract"
)

// restItem is the wire shape of one REST content item. Title and content
// arrive pre-rendered under a nested "rendered" key.
type restItem struct {
	ID      int      `json:"id"`
	Slug    string   `json:"slug"`
	Link    string   `json:"link"`
	Title   rendered `json:"title"`
	Content rendered `json:"content"`
}

type rendered struct {
	Rendered string `json:"rendered"`
}

func (i *restItem) toPage(restBase string) *wpextract.Page {
	return &wpextract.Page{
		Type:  restBase,
		ID:    i.ID,
		Slug:  i.Slug,
		Title: html.UnescapeString(i.Title.Rendered),
		URL:   i.Link,
		HTML:  i.Content.Rendered,
	}
}

// mediaItem is the wire shape of one media library attachment.
type mediaItem struct {
	ID        int    `json:"id"`
	Slug      string `json:"slug"`
	SourceURL string `json:"source_url"`
	MimeType  string `json:"mime_type"`
}

// Media describes one downloadable media attachment.
type Media struct {
	ID        int
	Slug      string
	SourceURL string
	MimeType  string
}
