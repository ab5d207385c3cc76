// Package wordpress implements a client for the WordPress REST API. It
// discovers content types, pages through their items, and resolves
// single pages by slug, the way wp-json exposes them on stock sites.
package wordpress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/wpextract"
	"golang.org/x/time/rate"
)

// DefaultUserAgent identifies the tool to servers that gate anonymous
// REST access.
const DefaultUserAgent = "wpextract/1.0"

// DefaultRequestsPerSecond paces REST calls so paged dumps don't hammer
// shared hosting.
const DefaultRequestsPerSecond = 5

// DefaultPerPage is the REST page size used when listing items.
const DefaultPerPage = 100

// blockedEndpoints are REST bases that typically require authentication
// or return malformed payloads; they are skipped when dumping
// anonymously.
var blockedEndpoints = map[string]bool{
	"font-families":  true,
	"font-faces":     true,
	"global-styles":  true,
	"template-parts": true,
	"templates":      true,
	"navigation":     true,
	"blocks":         true,
	"patterns":       true,
}

// Client talks to one WordPress site's REST API.
type Client struct {
	baseURL   string
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	username  string
	password  string
	perPage   int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.client = c
	}
}

// WithAuth sets Basic auth credentials (a WordPress application
// password). Authenticated clients are allowed to try endpoints that are
// blocked for anonymous dumps.
func WithAuth(username, password string) Option {
	return func(cl *Client) {
		cl.username = username
		cl.password = password
	}
}

// WithRateLimit overrides the request pacing in requests per second.
func WithRateLimit(rps float64) Option {
	return func(cl *Client) {
		cl.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithPerPage overrides the REST page size.
func WithPerPage(n int) Option {
	return func(cl *Client) {
		cl.perPage = n
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// NewClient creates a Client for the site at baseURL (scheme and host,
// e.g. "https://example.com").
func NewClient(baseURL string, opts ...Option) *Client {
	cl := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: 25 * time.Second},
		limiter:   rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), 1),
		userAgent: DefaultUserAgent,
		perPage:   DefaultPerPage,
	}
	for _, opt := range opts {
		opt(cl)
	}
	return cl
}

// Authenticated reports whether the client carries credentials.
func (c *Client) Authenticated() bool {
	return c.username != ""
}

// BaseURL returns the site root the client was built for.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Probe verifies that the site exposes a REST API at /wp-json/ and
// returns the site name from the API root.
func (c *Client) Probe(ctx context.Context) (string, error) {
	var root struct {
		Name string `json:"name"`
	}
	if err := c.getJSON(ctx, "/wp-json/", nil, &root); err != nil {
		return "", wpextract.Errorf(wpextract.EUNAVAILABLE, "no REST API at %s: %v", c.baseURL, err)
	}
	return root.Name, nil
}

// Types returns the content types to dump as a map of rest_base to
// rest_base. Core pages and posts are always included; when includeAll
// is set, public custom post types are discovered from /wp/v2/types,
// minus endpoints known to need authentication (unless the client is
// authenticated) and bases with pattern metacharacters, which stock
// routers reject.
func (c *Client) Types(ctx context.Context, includeAll bool) (map[string]string, error) {
	types := map[string]string{"pages": "pages", "posts": "posts"}
	if !includeAll {
		return types, nil
	}

	var data map[string]struct {
		RestBase string `json:"rest_base"`
		Viewable *bool  `json:"viewable"`
	}
	if err := c.getJSON(ctx, "/wp-json/wp/v2/types", nil, &data); err != nil {
		return nil, err
	}

	for key, t := range data {
		if key == "page" || key == "post" {
			continue
		}
		if t.RestBase == "" || (t.Viewable != nil && !*t.Viewable) {
			continue
		}
		if strings.ContainsAny(t.RestBase, "(?)[]+") {
			continue
		}
		if !c.Authenticated() && blockedEndpoints[t.RestBase] {
			continue
		}
		types[t.RestBase] = t.RestBase
	}
	return types, nil
}

// Items returns every item of one content type, walking REST pagination
// until the server runs out. Some WordPress builds answer a page past
// the end with HTTP 400 instead of an empty list; that is treated as end
// of input, not an error.
func (c *Client) Items(ctx context.Context, restBase string) ([]*wpextract.Page, error) {
	var pages []*wpextract.Page
	for pageNum := 1; ; pageNum++ {
		params := url.Values{
			"per_page": {strconv.Itoa(c.perPage)},
			"page":     {strconv.Itoa(pageNum)},
		}

		var items []restItem
		err := c.getJSON(ctx, "/wp-json/wp/v2/"+restBase, params, &items)
		if err != nil {
			if pastEnd(err) && pageNum > 1 {
				break
			}
			return nil, err
		}
		if len(items) == 0 {
			break
		}
		for _, item := range items {
			pages = append(pages, item.toPage(restBase))
		}
	}
	return pages, nil
}

// PageBySlug resolves one page by its URL slug, falling back to the
// posts endpoint when no page matches.
func (c *Client) PageBySlug(ctx context.Context, slug string) (*wpextract.Page, error) {
	for _, restBase := range []string{"pages", "posts"} {
		var items []restItem
		params := url.Values{"slug": {slug}}
		if err := c.getJSON(ctx, "/wp-json/wp/v2/"+restBase, params, &items); err != nil {
			return nil, err
		}
		if len(items) > 0 {
			return items[0].toPage(restBase), nil
		}
	}
	return nil, wpextract.Errorf(wpextract.ENOTFOUND, "no page or post with slug %q", slug)
}

// Media lists the site's media library attachments.
func (c *Client) Media(ctx context.Context) ([]*Media, error) {
	var media []*Media
	for pageNum := 1; ; pageNum++ {
		params := url.Values{
			"per_page": {strconv.Itoa(c.perPage)},
			"page":     {strconv.Itoa(pageNum)},
		}

		var items []mediaItem
		err := c.getJSON(ctx, "/wp-json/wp/v2/media", params, &items)
		if err != nil {
			if pastEnd(err) && pageNum > 1 {
				break
			}
			return nil, err
		}
		if len(items) == 0 {
			break
		}
		for _, item := range items {
			media = append(media, &Media{
				ID:        item.ID,
				Slug:      item.Slug,
				SourceURL: item.SourceURL,
				MimeType:  item.MimeType,
			})
		}
	}
	return media, nil
}

// Download fetches one URL through the client's pacing and auth,
// returning the response body.
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, error) {
	body, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, v any) error {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	body, err := c.get(ctx, target)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return wpextract.Errorf(wpextract.EINTERNAL, "decoding %s: %v", path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, target string) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.Authenticated() {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &statusError{code: resp.StatusCode, url: target}
	}
	return resp.Body, nil
}

// statusError carries a non-200 response code so pagination can tell
// "past the end" from real failures.
type statusError struct {
	code int
	url  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.code, e.url)
}

// pastEnd reports whether an error is the HTTP 400 some WordPress builds
// return for a pagination request beyond the last page.
func pastEnd(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.code == http.StatusBadRequest
}

// Restricted reports whether an error is a response that means one
// endpoint rejected the request (bad request, auth required, or gone)
// while the rest of the site remains dumpable. Callers skip the content
// type instead of aborting the run.
func Restricted(err error) bool {
	var se *statusError
	if !errors.As(err, &se) {
		return false
	}
	switch se.code {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return true
	}
	return false
}
