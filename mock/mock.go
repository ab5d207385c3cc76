// Package mock provides function-field mock implementations of the
// domain interfaces for tests.
package mock

import (
	"context"

	"github.com/fwojciec/wpextract"
)

var _ wpextract.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of wpextract.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ wpextract.Strategy = (*Strategy)(nil)

// Strategy is a mock implementation of wpextract.Strategy.
type Strategy struct {
	NameFn    func() string
	ExtractFn func(content *wpextract.Content) []*wpextract.Business
}

func (s *Strategy) Name() string {
	return s.NameFn()
}

func (s *Strategy) Extract(content *wpextract.Content) []*wpextract.Business {
	return s.ExtractFn(content)
}

var _ wpextract.Converter = (*Converter)(nil)

// Converter is a mock implementation of wpextract.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ wpextract.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of wpextract.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*wpextract.ExtractResult, error)
}

func (e *ContentExtractor) Extract(html string) (*wpextract.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ wpextract.PageWriter = (*PageWriter)(nil)

// PageWriter is a mock implementation of wpextract.PageWriter.
type PageWriter struct {
	WritePageFn func(ctx context.Context, site string, page *wpextract.Page, rendered *wpextract.RenderedPage) error
}

func (w *PageWriter) WritePage(ctx context.Context, site string, page *wpextract.Page, rendered *wpextract.RenderedPage) error {
	return w.WritePageFn(ctx, site, page, rendered)
}

var _ wpextract.IndexService = (*IndexService)(nil)

// IndexService is a mock implementation of wpextract.IndexService.
type IndexService struct {
	EnsureSiteFn           func(ctx context.Context, name, url string) (*wpextract.Site, error)
	UpsertPageFn           func(ctx context.Context, rec *wpextract.PageRecord) (bool, error)
	FindPagesBySiteFn      func(ctx context.Context, siteID string) ([]*wpextract.PageRecord, error)
	SaveBusinessesFn       func(ctx context.Context, pageID string, businesses []*wpextract.Business) error
	FindBusinessesByPageFn func(ctx context.Context, pageID string) ([]*wpextract.Business, error)
}

func (s *IndexService) EnsureSite(ctx context.Context, name, url string) (*wpextract.Site, error) {
	return s.EnsureSiteFn(ctx, name, url)
}

func (s *IndexService) UpsertPage(ctx context.Context, rec *wpextract.PageRecord) (bool, error) {
	return s.UpsertPageFn(ctx, rec)
}

func (s *IndexService) FindPagesBySite(ctx context.Context, siteID string) ([]*wpextract.PageRecord, error) {
	return s.FindPagesBySiteFn(ctx, siteID)
}

func (s *IndexService) SaveBusinesses(ctx context.Context, pageID string, businesses []*wpextract.Business) error {
	return s.SaveBusinessesFn(ctx, pageID, businesses)
}

func (s *IndexService) FindBusinessesByPage(ctx context.Context, pageID string) ([]*wpextract.Business, error) {
	return s.FindBusinessesByPageFn(ctx, pageID)
}
