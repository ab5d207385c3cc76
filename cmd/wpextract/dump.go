package main

import (
	"fmt"

	"github.com/fwojciec/wpextract"
	"github.com/fwojciec/wpextract/dump"
)

// Run executes the dump command.
func (c *DumpCmd) Run(deps *Dependencies) error {
	progress := func(event dump.ProgressEvent) {
		switch event.Type {
		case dump.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d pages\n", event.Total)
		case dump.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	result, err := deps.Dumper.DumpSite(deps.Ctx, progress)

	// A site without the REST API gets the sitemap crawl instead.
	if wpextract.ErrorCode(err) == wpextract.EUNAVAILABLE && deps.Sitemap != nil {
		fmt.Fprintln(deps.Stdout, "REST API unavailable, crawling the sitemap instead")
		result, err = deps.Dumper.DumpFromSitemap(deps.Ctx, deps.Sitemap, deps.Fetcher, deps.Extractor, progress)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wpextract.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Dumped %q: %d pages (%d unchanged, %d failed), %d media files, %d businesses\n",
		result.Site, result.Pages, result.Unchanged, result.Failed, result.Media, result.Businesses)
	return nil
}
