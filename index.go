package wpextract

import (
	"context"
	"time"
)

// Site represents one WordPress site that has been dumped at least once.
type Site struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the site contains invalid fields.
func (s *Site) Validate() error {
	if s.URL == "" {
		return Errorf(EINVALID, "site URL required")
	}
	return nil
}

// PageRecord is the index entry for one dumped page. The content hash
// lets a re-run skip pages whose content has not changed.
type PageRecord struct {
	ID          string    `json:"id"`
	SiteID      string    `json:"siteId"`
	Type        string    `json:"type"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	SourceURL   string    `json:"sourceUrl"`
	ContentHash string    `json:"contentHash"`
	Businesses  int       `json:"businesses"`
	DumpedAt    time.Time `json:"dumpedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *PageRecord) Validate() error {
	if r.SiteID == "" {
		return Errorf(EINVALID, "page record site ID required")
	}
	if r.Type == "" {
		return Errorf(EINVALID, "page record type required")
	}
	return nil
}

// IndexService records dumped sites and pages so that repeat runs can
// detect unchanged content and downstream tools can query what exists.
type IndexService interface {
	// EnsureSite returns the site with the given URL, creating it first
	// if necessary.
	EnsureSite(ctx context.Context, name, url string) (*Site, error)

	// UpsertPage inserts or updates the index entry for a page keyed by
	// (site, type, slug). It reports whether the stored content hash
	// changed, i.e. whether the page content is new or modified.
	UpsertPage(ctx context.Context, rec *PageRecord) (changed bool, err error)

	// FindPagesBySite returns all index entries for a site, ordered by
	// type then slug.
	FindPagesBySite(ctx context.Context, siteID string) ([]*PageRecord, error)

	// SaveBusinesses replaces the stored business records for a page.
	SaveBusinesses(ctx context.Context, pageID string, businesses []*Business) error

	// FindBusinessesByPage returns the stored business records for a page
	// in insertion order.
	FindBusinessesByPage(ctx context.Context, pageID string) ([]*Business, error)
}
