package analyze

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/wpextract"
)

// FileStats pairs one dumped text file with its statistics.
type FileStats struct {
	Name     string
	Category string
	Stats    *TextStats
}

// SiteReport aggregates statistics over every page of a dumped site.
type SiteReport struct {
	Site           string
	Files          []FileStats
	ContentTypes   map[string]int
	TotalWords     int
	TotalChars     int
	AvgReadability float64
	Phones         []string
	Emails         []string
	URLs           []string
}

// Site analyzes a dumped site directory. The pretty renderings are
// preferred since shortcode noise skews word statistics; raw renderings
// are the fallback for dumps made without them.
func Site(dir string) (*SiteReport, error) {
	contentDir := filepath.Join(dir, "pretty_pages")
	if _, err := os.Stat(contentDir); err != nil {
		contentDir = filepath.Join(dir, "raw_pages")
		if _, err := os.Stat(contentDir); err != nil {
			return nil, wpextract.Errorf(wpextract.ENOTFOUND, "no page renderings under %s", dir)
		}
	}

	paths, err := filepath.Glob(filepath.Join(contentDir, "*.txt"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	report := &SiteReport{
		Site:         filepath.Base(dir),
		ContentTypes: make(map[string]int),
	}

	var readabilitySum float64
	var phones, emails, urls []string
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}

		stats := Text(string(data))
		name := filepath.Base(p)
		report.Files = append(report.Files, FileStats{
			Name:     name,
			Category: fileCategory(name),
			Stats:    stats,
		})
		report.ContentTypes[fileCategory(name)]++
		report.TotalWords += stats.WordCount
		report.TotalChars += stats.CharCount
		readabilitySum += stats.Readability
		phones = append(phones, stats.Phones...)
		emails = append(emails, stats.Emails...)
		urls = append(urls, stats.URLs...)
	}

	if len(report.Files) > 0 {
		report.AvgReadability = readabilitySum / float64(len(report.Files))
	}
	report.Phones = unique(phones)
	report.Emails = unique(emails)
	report.URLs = unique(urls)

	return report, nil
}

// fileCategory reads the content type prefix out of a dump filename like
// "pages-dealers.txt".
func fileCategory(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if idx := strings.Index(stem, "-"); idx > 0 {
		return stem[:idx]
	}
	return "unknown"
}
