package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/fwojciec/wpextract"
	"github.com/fwojciec/wpextract/analyze"
	"github.com/fwojciec/wpextract/fs"
	"github.com/fwojciec/wpextract/normalize"
)

// pageOutput is the JSON document produced by the page command.
type pageOutput struct {
	Title      string                `json:"title"`
	Type       string                `json:"type"`
	Slug       string                `json:"slug"`
	URL        string                `json:"url"`
	Text       string                `json:"text"`
	Markdown   string                `json:"markdown"`
	Businesses []*wpextract.Business `json:"businesses"`
}

// Run executes the page command.
func (c *PageCmd) Run(deps *Dependencies) error {
	page, err := c.resolve(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wpextract.ErrorMessage(err))
		return err
	}

	content := &wpextract.Content{
		HTML: page.HTML,
		Text: normalize.CleanShortcodes(normalize.EnhanceToText(page.HTML)),
	}
	businesses := deps.Pipeline.Extract(content)
	rendered := deps.Renderer.Render(page, businesses)

	out := deps.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		defer f.Close()
		out = f
	}

	switch c.Format {
	case "csv":
		err = fs.EncodeBusinessCSV(out, businesses)
	default:
		err = writePageJSON(out, page, rendered)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if c.Output != "" {
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", c.Output)
	}

	if c.Detailed {
		return c.writeDetailed(deps, page, rendered)
	}
	return nil
}

// resolve retrieves the page over the REST API, falling back to a direct
// fetch with main-content extraction when the API has no matching slug.
func (c *PageCmd) resolve(deps *Dependencies) (*wpextract.Page, error) {
	slug := pageSlug(c.URL)

	page, err := deps.Client.PageBySlug(deps.Ctx, slug)
	if err == nil {
		return page, nil
	}
	if deps.Fetcher == nil || deps.Extractor == nil {
		return nil, err
	}

	html, ferr := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if ferr != nil {
		return nil, err
	}
	res, xerr := deps.Extractor.Extract(html)
	if xerr != nil {
		return nil, err
	}

	title := res.Title
	if title == "" {
		title = slug
	}
	return &wpextract.Page{
		Type:  "pages",
		Slug:  slug,
		Title: title,
		URL:   c.URL,
		HTML:  res.ContentHTML,
	}, nil
}

// writeDetailed writes the per-section CSV files next to the main output.
func (c *PageCmd) writeDetailed(deps *Dependencies, page *wpextract.Page, rendered *wpextract.RenderedPage) error {
	stem := page.FileName("")
	if c.Output != "" {
		stem = strings.TrimSuffix(c.Output, ".json")
		stem = strings.TrimSuffix(stem, ".csv")
	}

	stats := analyze.Text(rendered.PrettyText)
	headings := analyze.Headings(rendered.PrettyText)
	seo := analyze.SEO(page.HTML, page.URL)

	sections := []struct {
		name  string
		write func(w io.Writer) error
	}{
		{"summary", func(w io.Writer) error {
			return writeCSVRows(w, []string{"metric", "value"}, [][]string{
				{"title", page.Title},
				{"url", page.URL},
				{"word_count", strconv.Itoa(stats.WordCount)},
				{"char_count", strconv.Itoa(stats.CharCount)},
				{"sentence_count", strconv.Itoa(stats.SentenceCount)},
				{"avg_sentence_length", fmt.Sprintf("%.1f", stats.AvgSentenceLength)},
				{"readability", fmt.Sprintf("%.1f", stats.Readability)},
				{"heading_count", strconv.Itoa(headings.Total)},
				{"valid_heading_hierarchy", strconv.FormatBool(headings.ValidHierarchy)},
				{"internal_links", strconv.Itoa(len(seo.InternalLinks))},
				{"external_links", strconv.Itoa(len(seo.ExternalLinks))},
				{"images", strconv.Itoa(seo.TotalImages)},
				{"images_missing_alt", strconv.Itoa(seo.ImagesMissingAlt)},
			})
		}},
		{"headings", func(w io.Writer) error {
			rows := make([][]string, 0, len(headings.Headings))
			for _, h := range headings.Headings {
				rows = append(rows, []string{strconv.Itoa(h.Level), h.Text})
			}
			return writeCSVRows(w, []string{"level", "text"}, rows)
		}},
		{"links", func(w io.Writer) error {
			var rows [][]string
			for _, l := range seo.InternalLinks {
				rows = append(rows, []string{"internal", l.URL, l.Anchor})
			}
			for _, l := range seo.ExternalLinks {
				rows = append(rows, []string{"external", l.URL, l.Anchor})
			}
			return writeCSVRows(w, []string{"scope", "url", "anchor"}, rows)
		}},
		{"businesses", func(w io.Writer) error {
			return fs.EncodeBusinessCSV(w, rendered.Businesses)
		}},
	}

	for _, section := range sections {
		name := stem + "-" + section.name + ".csv"
		f, err := os.Create(name)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		if err := section.write(f); err != nil {
			f.Close()
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", name)
	}
	return nil
}

func writePageJSON(w io.Writer, page *wpextract.Page, rendered *wpextract.RenderedPage) error {
	doc := pageOutput{
		Title:      page.Title,
		Type:       page.Type,
		Slug:       page.Slug,
		URL:        page.URL,
		Text:       rendered.PrettyText,
		Markdown:   rendered.MarkdownText,
		Businesses: rendered.Businesses,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func writeCSVRows(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// siteBase reduces a page URL to its site root.
func siteBase(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", wpextract.Errorf(wpextract.EINVALID, "invalid page URL %q", rawURL)
	}
	return u.Scheme + "://" + u.Host, nil
}

// pageSlug returns the last non-empty path segment of a page URL.
func pageSlug(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "index"
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return "index"
}
