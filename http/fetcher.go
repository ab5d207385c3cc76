// Package http provides an HTTP-based implementation of
// wpextract.Fetcher for retrieving full HTML documents from sites whose
// REST API is unavailable.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/wpextract"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 25 * time.Second

// DefaultUserAgent identifies the tool to the fetched site.
const DefaultUserAgent = "wpextract/1.0"

// Ensure Fetcher implements wpextract.Fetcher at compile time.
var _ wpextract.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML documents over plain HTTP. It does not execute
// JavaScript, which is enough for WordPress sites since the content of
// interest is server-rendered.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML document at the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", wpextract.Errorf(wpextract.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", wpextract.Errorf(wpextract.ENOTFOUND, "not found: %s", url)
	case resp.StatusCode != http.StatusOK:
		return "", wpextract.Errorf(wpextract.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases resources. A no-op since http.Client does not require
// explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
