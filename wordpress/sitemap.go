package wordpress

import (
	"bufio"
	"context"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/wpextract"
)

// Sitemap discovers page URLs from a WordPress site's sitemap. Stock
// WordPress serves /wp-sitemap.xml as a sitemap index; robots.txt is
// consulted first in case a plugin moved it.
type Sitemap struct {
	client *Client
}

// NewSitemap creates a Sitemap discoverer sharing the client's pacing
// and credentials.
func NewSitemap(client *Client) *Sitemap {
	return &Sitemap{client: client}
}

// DiscoverURLs returns every page URL the site's sitemaps list,
// deduplicated, in document order. A site without any sitemap yields an
// empty slice, not an error.
func (s *Sitemap) DiscoverURLs(ctx context.Context) ([]string, error) {
	sitemaps := s.fromRobots(ctx)
	if len(sitemaps) == 0 {
		for _, path := range []string{"/wp-sitemap.xml", "/sitemap.xml"} {
			candidate := s.client.BaseURL() + path
			if s.exists(ctx, candidate) {
				sitemaps = []string{candidate}
				break
			}
		}
	}
	if len(sitemaps) == 0 {
		return []string{}, nil
	}

	var all []string
	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	for _, sm := range sitemaps {
		urls, err := s.walk(ctx, sm, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range urls {
			if !seenURLs[u] {
				seenURLs[u] = true
				all = append(all, u)
			}
		}
	}
	return all, nil
}

// fromRobots collects Sitemap: directives from robots.txt. Any fetch or
// parse problem just means no directives.
func (s *Sitemap) fromRobots(ctx context.Context) []string {
	body, err := s.client.get(ctx, s.client.BaseURL()+"/robots.txt")
	if err != nil {
		return nil
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			if u := strings.TrimSpace(line[len("sitemap:"):]); u != "" {
				sitemaps = append(sitemaps, u)
			}
		}
	}
	return sitemaps
}

func (s *Sitemap) exists(ctx context.Context, target string) bool {
	body, err := s.client.get(ctx, target)
	if err != nil {
		return false
	}
	body.Close()
	return true
}

// walk parses one sitemap document, recursing through sitemap indexes.
func (s *Sitemap) walk(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.client.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, wpextract.Errorf(wpextract.EINTERNAL, "parsing sitemap %s: %v", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, wpextract.Errorf(wpextract.EINTERNAL, "empty sitemap at %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		var all []string
		for _, el := range root.SelectElements("sitemap") {
			loc := locText(el)
			if loc == "" {
				continue
			}
			urls, err := s.walk(ctx, loc, seen)
			if err != nil {
				return nil, err
			}
			all = append(all, urls...)
		}
		return all, nil
	}

	var urls []string
	for _, el := range root.SelectElements("url") {
		if loc := locText(el); loc != "" && validURL(loc) {
			urls = append(urls, loc)
		}
	}
	return urls, nil
}

func locText(el *etree.Element) string {
	loc := el.SelectElement("loc")
	if loc == nil {
		return ""
	}
	return strings.TrimSpace(loc.Text())
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}
