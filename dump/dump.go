// Package dump orchestrates a full-site dump: content discovery over the
// WordPress REST API, per-page extraction and rendering, persistence of
// the three renderings, the dump manifest, the business CSV, and the
// media library.
package dump

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/wpextract"
	"github.com/fwojciec/wpextract/bloom"
	"github.com/fwojciec/wpextract/extract"
	"github.com/fwojciec/wpextract/fs"
	"github.com/fwojciec/wpextract/goquery"
	"github.com/fwojciec/wpextract/normalize"
	"github.com/fwojciec/wpextract/render"
	"github.com/fwojciec/wpextract/wordpress"
	"golang.org/x/sync/errgroup"
)

// Source lists and retrieves site content. *wordpress.Client implements
// it.
type Source interface {
	BaseURL() string
	Probe(ctx context.Context) (string, error)
	Types(ctx context.Context, includeAll bool) (map[string]string, error)
	Items(ctx context.Context, restBase string) ([]*wpextract.Page, error)
	Media(ctx context.Context) ([]*wordpress.Media, error)
	Download(ctx context.Context, url string) ([]byte, error)
}

// Writer persists dump output. *fs.Writer implements it.
type Writer interface {
	wpextract.PageWriter
	WriteMedia(ctx context.Context, site, name string, data []byte) (string, error)
	MediaExists(site, name string) bool
	WriteIndex(ctx context.Context, site string, index *fs.Index) error
	WriteBusinessCSV(ctx context.Context, site string, businesses []*wpextract.Business) error
}

// Result holds the outcome of a dump operation.
type Result struct {
	Site       string
	Pages      int
	Unchanged  int
	Failed     int
	Media      int
	Businesses int
}

// ProgressEvent reports progress during a dump operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting dump progress.
type ProgressFunc func(event ProgressEvent)

// Bloom filter sizing for media URL deduplication.
const (
	mediaExpectedURLs      = 10000
	mediaFalsePositiveRate = 0.01
)

// Dumper coordinates a full-site dump.
type Dumper struct {
	Source   Source
	Writer   Writer
	Index    wpextract.IndexService
	Pipeline *extract.Pipeline
	Renderer *render.Renderer

	// Concurrency bounds the number of pages processed at once.
	Concurrency int

	// AllTypes includes discovered custom post types besides pages and
	// posts.
	AllTypes bool

	// SkipMedia disables the media download pass.
	SkipMedia bool
}

// NewDumper creates a Dumper with the default extraction cascade and
// renderer. The index service is optional; without it every page is
// treated as changed.
func NewDumper(source Source, writer Writer) *Dumper {
	return &Dumper{
		Source:      source,
		Writer:      writer,
		Pipeline:    extract.NewPipeline(goquery.NewListings(), extract.NewSections(), extract.NewLines()),
		Renderer:    render.NewRenderer(),
		Concurrency: 4,
	}
}

// pageResult holds the outcome of processing a single page.
type pageResult struct {
	position   int
	page       *wpextract.Page
	rendered   *wpextract.RenderedPage
	businesses []*wpextract.Business
	changed    bool
	err        error
}

// DumpSite dumps every page of the site behind the Source, writes the
// manifest and business CSV, and downloads media unless disabled. The
// progress callback, if provided, receives events as the dump proceeds.
func (d *Dumper) DumpSite(ctx context.Context, progress ProgressFunc) (*Result, error) {
	siteName, err := d.Source.Probe(ctx)
	if err != nil {
		return nil, err
	}
	if siteName == "" {
		siteName = hostOf(d.Source.BaseURL())
	}

	var site *wpextract.Site
	if d.Index != nil {
		site, err = d.Index.EnsureSite(ctx, siteName, d.Source.BaseURL())
		if err != nil {
			return nil, err
		}
	}

	pages, err := d.collectPages(ctx)
	if err != nil {
		return nil, err
	}

	total := len(pages)
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
		for i, page := range pages {
			i, page := i, page
			g.Go(func() error {
				resultCh <- d.processPage(gctx, site, siteName, i, page)
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

	if !d.SkipMedia {
		saved, mediaEntries := d.downloadMedia(ctx, siteName, progress)
		result.Media = saved
		index.Media = mediaEntries
	}

	if err := d.Writer.WriteIndex(ctx, siteName, index); err != nil {
		return nil, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return result, nil
}

// collectPages lists every item of every content type. Restricted
// content types are skipped rather than failing the run.
func (d *Dumper) collectPages(ctx context.Context) ([]*wpextract.Page, error) {
	types, err := d.Source.Types(ctx, d.AllTypes)
	if err != nil {
		if !wordpress.Restricted(err) {
			return nil, err
		}
		types = map[string]string{"pages": "pages", "posts": "posts"}
	}

	bases := make([]string, 0, len(types))
	for base := range types {
		bases = append(bases, base)
	}
	sort.Strings(bases)

	var pages []*wpextract.Page
	for _, base := range bases {
		items, err := d.Source.Items(ctx, base)
		if err != nil {
			if wordpress.Restricted(err) {
				continue
			}
			return nil, fmt.Errorf("listing %s: %w", base, err)
		}
		pages = append(pages, items...)
	}
	return pages, nil
}

// processPage runs the full per-page pipeline: extraction cascade,
// rendering, index upsert, and file writes. Unchanged pages keep their
// existing files.
func (d *Dumper) processPage(ctx context.Context, site *wpextract.Site, siteName string, position int, page *wpextract.Page) pageResult {
	res := pageResult{position: position, page: page, changed: true}

	content := &wpextract.Content{
		HTML: page.HTML,
		Text: normalize.CleanShortcodes(normalize.EnhanceToText(page.HTML)),
	}
	res.businesses = d.Pipeline.Extract(content)

	if d.Index != nil && site != nil {
		rec := &wpextract.PageRecord{
			SiteID:      site.ID,
			Type:        page.Type,
			Slug:        page.Slug,
			Title:       page.Title,
			SourceURL:   page.URL,
			ContentHash: ContentHash(page.HTML),
			Businesses:  len(res.businesses),
		}
		changed, err := d.Index.UpsertPage(ctx, rec)
		if err != nil {
			res.err = err
			return res
		}
		res.changed = changed
		if err := d.Index.SaveBusinesses(ctx, rec.ID, res.businesses); err != nil {
			res.err = err
			return res
		}
		if !changed {
			return res
		}
	}

	res.rendered = d.Renderer.Render(page, res.businesses)
	if err := d.Writer.WritePage(ctx, siteName, page, res.rendered); err != nil {
		res.err = err
	}
	return res
}

// downloadMedia fetches the media library, deduplicating source URLs
// with a Bloom filter and renaming filename collisions. Failures skip
// the file, not the run.
func (d *Dumper) downloadMedia(ctx context.Context, siteName string, progress ProgressFunc) (int, []fs.IndexMedia) {
	media, err := d.Source.Media(ctx)
	if err != nil {
		return 0, nil
	}

	seen := bloom.NewFilter(mediaExpectedURLs, mediaFalsePositiveRate)
	usedNames := make(map[string]bool)
	var saved int
	var entries []fs.IndexMedia

	for _, m := range media {
		if m.SourceURL == "" || seen.Seen(m.SourceURL) {
			continue
		}

		name := mediaFileName(m, usedNames)
		usedNames[name] = true

		if d.Writer.MediaExists(siteName, name) {
			entries = append(entries, fs.IndexMedia{ID: m.ID, File: path.Join("images", name), SourceURL: m.SourceURL})
			continue
		}

		data, err := d.Source.Download(ctx, m.SourceURL)
		if err != nil {
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, URL: m.SourceURL, Error: err})
			}
			continue
		}
		if _, err := d.Writer.WriteMedia(ctx, siteName, name, data); err != nil {
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, URL: m.SourceURL, Error: err})
			}
			continue
		}
		saved++
		entries = append(entries, fs.IndexMedia{ID: m.ID, File: path.Join("images", name), SourceURL: m.SourceURL})
	}

	return saved, entries
}

// mediaFileName derives the local filename for a media item from its
// source URL, appending the attachment ID when the name is taken.
func mediaFileName(m *wordpress.Media, used map[string]bool) string {
	parsed, err := url.Parse(m.SourceURL)
	base := ""
	if err == nil {
		base = path.Base(parsed.Path)
	}
	if base == "" || base == "." || base == "/" {
		base = fmt.Sprintf("media-%d", m.ID)
	}
	if !used[base] {
		return base
	}
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s-%d%s", stem, m.ID, ext)
}

// ContentHash computes an xxhash fingerprint of page content for change
// detection.
func ContentHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}

// hostOf extracts the hostname from a URL for use as a fallback site
// name.
func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return rawURL
	}
	return parsed.Host
}
