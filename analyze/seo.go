package analyze

import (
	"html"
	"net/url"
	"regexp"
	"strings"
)

var (
	titleTagPattern = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	metaDescPattern = regexp.MustCompile(`(?i)<meta[^>]*name=["']description["'][^>]*content=["']([^"']*)["'][^>]*>`)
	linkTagPattern  = regexp.MustCompile(`(?is)<a[^>]*href=["']([^"']*)["'][^>]*>(.*?)</a>`)
	imgTagPattern   = regexp.MustCompile(`(?i)<img[^>]*>`)
	imgAltPattern   = regexp.MustCompile(`(?i)alt=["']([^"']*)["']`)
	htmlTagPattern  = regexp.MustCompile(`<[^>]+>`)
	htmlHeadingPat  = regexp.MustCompile(`(?is)<h([1-6])[^>]*>(.*?)</h[1-6]>`)
)

// Optimal length bounds for title and meta description.
const (
	titleMinLength = 30
	titleMaxLength = 60
	descMinLength  = 120
	descMaxLength  = 160
)

// Link is one anchor found in a document.
type Link struct {
	URL    string
	Anchor string
}

// SEOReport holds the basic SEO signals read from one raw HTML document.
type SEOReport struct {
	Title            string
	TitleLength      int
	TitleOptimal     bool
	MetaDescription  string
	MetaDescLength   int
	MetaDescOptimal  bool
	WordCount        int
	Headings         *HeadingReport
	InternalLinks    []Link
	ExternalLinks    []Link
	TotalImages      int
	ImagesWithAlt    int
	ImagesMissingAlt int
}

// SEO analyzes a raw HTML document. The base URL decides which links
// count as internal; with an empty base URL no link split is attempted.
func SEO(rawHTML, baseURL string) *SEOReport {
	report := &SEOReport{}

	if m := titleTagPattern.FindStringSubmatch(rawHTML); m != nil {
		report.Title = html.UnescapeString(strings.TrimSpace(m[1]))
		report.TitleLength = len(report.Title)
		report.TitleOptimal = report.TitleLength >= titleMinLength && report.TitleLength <= titleMaxLength
	}

	if m := metaDescPattern.FindStringSubmatch(rawHTML); m != nil {
		report.MetaDescription = html.UnescapeString(strings.TrimSpace(m[1]))
		report.MetaDescLength = len(report.MetaDescription)
		report.MetaDescOptimal = report.MetaDescLength >= descMinLength && report.MetaDescLength <= descMaxLength
	}

	text := html.UnescapeString(htmlTagPattern.ReplaceAllString(rawHTML, " "))
	report.WordCount = len(strings.Fields(text))
	report.Headings = htmlHeadings(rawHTML)

	if domain := hostname(baseURL); domain != "" {
		for _, m := range linkTagPattern.FindAllStringSubmatch(rawHTML, -1) {
			href := m[1]
			anchor := html.UnescapeString(strings.TrimSpace(htmlTagPattern.ReplaceAllString(m[2], "")))
			link := Link{URL: href, Anchor: anchor}

			if strings.HasPrefix(href, "http") && !strings.Contains(href, domain) {
				report.ExternalLinks = append(report.ExternalLinks, link)
			} else {
				report.InternalLinks = append(report.InternalLinks, link)
			}
		}
	}

	for _, tag := range imgTagPattern.FindAllString(rawHTML, -1) {
		report.TotalImages++
		if imgAltPattern.MatchString(tag) {
			report.ImagesWithAlt++
		} else {
			report.ImagesMissingAlt++
		}
	}

	return report
}

// htmlHeadings builds a heading report directly from HTML heading tags.
func htmlHeadings(rawHTML string) *HeadingReport {
	report := &HeadingReport{}
	for _, m := range htmlHeadingPat.FindAllStringSubmatch(rawHTML, -1) {
		level := int(m[1][0] - '0')
		text := html.UnescapeString(strings.TrimSpace(htmlTagPattern.ReplaceAllString(m[2], "")))
		report.Headings = append(report.Headings, Heading{Level: level, Text: text})
		report.Counts[level-1]++
		report.Total++
	}
	report.ValidHierarchy = validHierarchy(report.Counts)
	return report
}

// hostname extracts the host from a URL, or returns "" when there is
// none.
func hostname(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Host
}
