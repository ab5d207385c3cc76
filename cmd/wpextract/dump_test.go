package main_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/wpextract/cmd/wpextract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// contactHTML is a full HTML document for the sitemap crawl path, which
// fetches pages directly instead of reading REST-rendered bodies.
const contactHTML = `<!DOCTYPE html>
<html><head><title>Contact Us - Lakeside Docks</title></head>
<body>
<nav><a href="/">Home</a><a href="/contact/">Contact</a></nav>
<main>
<h1>Contact Us</h1>
<p>Reach the Lakeside Docks team at our Brainerd office. We answer
questions about dock installation, seasonal removal, and boat lift
service across the lakes area all year round.</p>
<p>Call 218-555-0199 or stop by 501 Shore Drive, Brainerd, MN 56401
during regular business hours to talk through your project.</p>
</main>
<footer>Copyright Lakeside Docks</footer>
</body></html>`

func TestMain_Run_DumpSitemapFallback(t *testing.T) {
	t.Parallel()

	// No /wp-json/ handlers: the REST probe 404s and the dump falls back
	// to the sitemap crawl.
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/wp-sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>%s/contact/</loc></url>
</urlset>`, srv.URL)
	})
	mux.HandleFunc("/contact/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, contactHTML)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	outDir := t.TempDir()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	defer m.Close()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{
		"dump", srv.URL, "--out", outDir, "--rps", "1000",
	}, stdout, stderr)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "crawling the sitemap")
	assert.Contains(t, stdout.String(), "Dumped")

	matches, err := filepath.Glob(filepath.Join(outDir, "*", "pretty_pages", "pages-contact.txt"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	pretty, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "Brainerd")
}
