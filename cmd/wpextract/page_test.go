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

func TestMain_Run_Page(t *testing.T) {
	t.Parallel()

	t.Run("writes page JSON to stdout", func(t *testing.T) {
		t.Parallel()

		srv := newRESTServer(t)

		m := main.NewMain()
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"page", srv.URL + "/dealers/"}, stdout, stderr)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, `"title": "Our Dealers"`)
		assert.Contains(t, output, `"slug": "dealers"`)
		assert.Contains(t, output, "Bay Marine Incorporated Sales and Service")
	})

	t.Run("writes businesses as CSV", func(t *testing.T) {
		t.Parallel()

		srv := newRESTServer(t)

		m := main.NewMain()
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{
			"page", srv.URL + "/dealers/", "--format", "csv",
		}, stdout, &bytes.Buffer{})
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "name,address,address_url,phone")
		assert.Contains(t, output, "218-555-0101")
	})

	t.Run("writes to an output file", func(t *testing.T) {
		t.Parallel()

		srv := newRESTServer(t)
		outFile := filepath.Join(t.TempDir(), "dealers.json")

		m := main.NewMain()
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{
			"page", srv.URL + "/dealers/", "-o", outFile,
		}, stdout, &bytes.Buffer{})
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "Wrote "+outFile)

		data, err := os.ReadFile(outFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Our Dealers")
	})

	t.Run("detailed writes per-section CSV files", func(t *testing.T) {
		t.Parallel()

		srv := newRESTServer(t)
		dir := t.TempDir()
		outFile := filepath.Join(dir, "dealers.json")

		m := main.NewMain()
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{
			"page", srv.URL + "/dealers/", "-o", outFile, "--detailed",
		}, stdout, &bytes.Buffer{})
		require.NoError(t, err)

		summary, err := os.ReadFile(filepath.Join(dir, "dealers-summary.csv"))
		require.NoError(t, err)
		assert.Contains(t, string(summary), "word_count")
		assert.Contains(t, string(summary), "Our Dealers")

		assert.FileExists(t, filepath.Join(dir, "dealers-headings.csv"))
		assert.FileExists(t, filepath.Join(dir, "dealers-links.csv"))

		businesses, err := os.ReadFile(filepath.Join(dir, "dealers-businesses.csv"))
		require.NoError(t, err)
		assert.Contains(t, string(businesses), "Bay Marine Incorporated Sales and Service")
	})

	t.Run("falls back to direct fetch when the REST API has no match", func(t *testing.T) {
		t.Parallel()

		var srv *httptest.Server
		mux := http.NewServeMux()
		mux.HandleFunc("/about/", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, contactHTML)
		})
		srv = httptest.NewServer(mux)
		t.Cleanup(srv.Close)

		m := main.NewMain()
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"page", srv.URL + "/about/"}, stdout, &bytes.Buffer{})
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, `"slug": "about"`)
		assert.Contains(t, output, "Brainerd")
	})

	t.Run("reports an error for an unresolvable page", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"page", "http://127.0.0.1:0/missing/"}, &bytes.Buffer{}, stderr)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
