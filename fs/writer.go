// Package fs persists dump output to the local filesystem: the three
// text renderings of each page, downloaded media, the dump index, and a
// CSV of extracted business records.
package fs

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fwojciec/wpextract"
)

// Ensure Writer implements wpextract.PageWriter at compile time.
var _ wpextract.PageWriter = (*Writer)(nil)

var (
	siteNameStripPattern    = regexp.MustCompile(`[^\w\s-]`)
	siteNameCollapsePattern = regexp.MustCompile(`[-\s]+`)
)

// CleanSiteName turns a site title into a directory name: punctuation
// removed, whitespace runs collapsed to single dashes.
func CleanSiteName(name string) string {
	name = siteNameStripPattern.ReplaceAllString(name, "")
	return siteNameCollapsePattern.ReplaceAllString(strings.TrimSpace(name), "-")
}

// Writer saves pages under baseDir/<site>/ with one subdirectory per
// rendering: raw_pages, pretty_pages and markdown_pages, plus images for
// media and index.json / business_data.csv at the site root.
type Writer struct {
	baseDir string
}

// NewWriter creates a Writer rooted at baseDir.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// SiteDir returns the output directory for a site name.
func (w *Writer) SiteDir(site string) string {
	return filepath.Join(w.baseDir, CleanSiteName(site))
}

// WritePage saves all three renderings of one page.
func (w *Writer) WritePage(ctx context.Context, site string, page *wpextract.Page, rendered *wpextract.RenderedPage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := page.Validate(); err != nil {
		return err
	}

	siteDir := w.SiteDir(site)
	outputs := []struct {
		dir  string
		name string
		text string
	}{
		{"raw_pages", page.FileName(".txt"), rendered.RawText},
		{"pretty_pages", page.FileName(".txt"), rendered.PrettyText},
		{"markdown_pages", page.FileName(".md"), rendered.MarkdownText},
	}
	for _, out := range outputs {
		dir := filepath.Join(siteDir, out.dir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, out.name), []byte(out.text), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// WriteMedia saves one downloaded media file under images/ and returns
// the path written. Existing files are left alone so interrupted dumps
// can resume without re-downloading.
func (w *Writer) WriteMedia(ctx context.Context, site, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir := filepath.Join(w.SiteDir(site), "images")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	dest := filepath.Join(dir, name)
	if _, err := os.Stat(dest); err == nil {
		return dest, nil
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", err
	}
	return dest, nil
}

// MediaExists reports whether a media file was already downloaded.
func (w *Writer) MediaExists(site, name string) bool {
	_, err := os.Stat(filepath.Join(w.SiteDir(site), "images", name))
	return err == nil
}

// Index is the dump manifest written to index.json.
type Index struct {
	Site        string       `json:"site"`
	GeneratedAt int64        `json:"generated_at"`
	Items       []IndexItem  `json:"items"`
	Media       []IndexMedia `json:"media"`
}

// IndexItem records one dumped page in the manifest.
type IndexItem struct {
	Type       string `json:"type"`
	ID         int    `json:"id"`
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	Link       string `json:"link"`
	RawFile    string `json:"raw_file"`
	PrettyFile string `json:"pretty_file"`
}

// IndexMedia records one downloaded media file in the manifest.
type IndexMedia struct {
	ID        int    `json:"id"`
	File      string `json:"file"`
	SourceURL string `json:"source_url"`
}

// WriteIndex saves the dump manifest as pretty-printed JSON.
func (w *Writer) WriteIndex(ctx context.Context, site string, index *Index) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	siteDir := w.SiteDir(site)
	if err := os.MkdirAll(siteDir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(siteDir, "index.json"), data, 0o644)
}

// csvHeader is the business_data.csv column order.
var csvHeader = []string{
	"name", "address", "address_url", "phone", "website_url",
	"services", "extra_locations", "source",
}

// WriteBusinessCSV saves the extracted business records as CSV, one row
// per business, extra locations JSON-encoded into their cell.
func (w *Writer) WriteBusinessCSV(ctx context.Context, site string, businesses []*wpextract.Business) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	siteDir := w.SiteDir(site)
	if err := os.MkdirAll(siteDir, 0o755); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(siteDir, "business_data.csv"))
	if err != nil {
		return err
	}

	if err := EncodeBusinessCSV(f, businesses); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// EncodeBusinessCSV writes business records in the business_data.csv
// column order to w, header included.
func EncodeBusinessCSV(w io.Writer, businesses []*wpextract.Business) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, b := range businesses {
		extras := ""
		if len(b.ExtraLocations) > 0 {
			encoded, err := json.Marshal(b.ExtraLocations)
			if err != nil {
				return err
			}
			extras = string(encoded)
		}
		row := []string{
			b.Name, b.Address, b.AddressURL, b.Phone, b.WebsiteURL,
			b.ServiceList(), extras, b.Source,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
