package dump

import (
	"context"
	"net/url"
	"path"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/wpextract"
	"github.com/fwojciec/wpextract/fs"
	"golang.org/x/sync/errgroup"
)

// URLDiscoverer lists page URLs for a site whose REST API is disabled.
// *wordpress.Sitemap implements it.
type URLDiscoverer interface {
	DiscoverURLs(ctx context.Context) ([]string, error)
}

// DumpFromSitemap dumps a site by crawling its sitemap URLs instead of
// the REST API. Each document is fetched whole, reduced to its main
// content, and then run through the same extraction and rendering
// pipeline as REST content. No media pass runs on this path since the
// media library is a REST resource.
func (d *Dumper) DumpFromSitemap(ctx context.Context, discoverer URLDiscoverer, fetcher wpextract.Fetcher, extractor wpextract.ContentExtractor, progress ProgressFunc) (*Result, error) {
	urls, err := discoverer.DiscoverURLs(ctx)
	if err != nil {
		return nil, err
	}

	siteName := hostOf(d.Source.BaseURL())
	var site *wpextract.Site
	if d.Index != nil {
		site, err = d.Index.EnsureSite(ctx, siteName, d.Source.BaseURL())
		if err != nil {
			return nil, err
		}
	}

	total := len(urls)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	concurrency := d.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	resultCh := make(chan pageResult, total)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, pageURL := range urls {
			i, pageURL := i, pageURL
			g.Go(func() error {
				resultCh <- d.crawlPage(gctx, site, siteName, fetcher, extractor, i, pageURL)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]pageResult, total)
	result := &Result{Site: siteName}
	for res := range resultCh {
		completed.Add(1)
		results[res.position] = res

		if res.err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					URL:       res.page.URL,
					Error:     res.err,
				})
			}
			continue
		}
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       res.page.URL,
			})
		}
	}

	index := &fs.Index{Site: siteName, GeneratedAt: time.Now().Unix()}
	var allBusinesses []*wpextract.Business
	for _, res := range results {
		if res.err != nil {
			continue
		}
		result.Pages++
		if !res.changed {
			result.Unchanged++
		}
		allBusinesses = append(allBusinesses, res.businesses...)
		index.Items = append(index.Items, fs.IndexItem{
			Type:       res.page.Type,
			ID:         res.page.ID,
			Slug:       res.page.Slug,
			Title:      res.page.Title,
			Link:       res.page.URL,
			RawFile:    path.Join("raw_pages", res.page.FileName(".txt")),
			PrettyFile: path.Join("pretty_pages", res.page.FileName(".txt")),
		})
	}

	merged := wpextract.MergeBusinesses(allBusinesses)
	result.Businesses = len(merged)
	if len(merged) > 0 {
		if err := d.Writer.WriteBusinessCSV(ctx, siteName, merged); err != nil {
			return nil, err
		}
	}

	if err := d.Writer.WriteIndex(ctx, siteName, index); err != nil {
		return nil, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return result, nil
}

// crawlPage fetches one URL, isolates its main content, and runs the
// standard per-page pipeline on the result.
func (d *Dumper) crawlPage(ctx context.Context, site *wpextract.Site, siteName string, fetcher wpextract.Fetcher, extractor wpextract.ContentExtractor, position int, pageURL string) pageResult {
	page := &wpextract.Page{Type: "pages", Slug: slugOf(pageURL), URL: pageURL}
	res := pageResult{position: position, page: page, changed: true}

	html, err := fetcher.Fetch(ctx, pageURL)
	if err != nil {
		res.err = err
		return res
	}

	extracted, err := extractor.Extract(html)
	if err != nil {
		res.err = err
		return res
	}

	page.Title = extracted.Title
	if page.Title == "" {
		page.Title = page.Slug
	}
	page.HTML = extracted.ContentHTML

	return d.processPage(ctx, site, siteName, position, page)
}

// slugOf derives a filename slug from a page URL's last path segment.
func slugOf(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "index"
	}
	trimmed := strings.Trim(parsed.Path, "/")
	if trimmed == "" {
		return "index"
	}
	segments := strings.Split(trimmed, "/")
	return segments[len(segments)-1]
}
