package main_test

import (
	"bytes"
	"context"
	"encoding/json"
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

// dealerHTML is a page-builder table with one complete dealer row.
const dealerHTML = `[vc_row_inner el_class="dealer-row"]` +
	`[vc_column_text]Bay Marine Incorporated Sales and Service[/vc_column_text]` +
	`[vc_column_text]123 Main Street, Anytown, MN 56001[/vc_column_text]` +
	`[vc_column_text]218-555-0101[/vc_column_text]` +
	`[vc_column_text]Docks and lifts dealer for the lakes region[/vc_column_text]` +
	`[/vc_row_inner]`

// newRESTServer fakes a WordPress REST API with one dealers page.
func newRESTServer(t *testing.T) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/wp-json/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name":"Lake Country Docks"}`)
	})
	mux.HandleFunc("/wp-json/wp/v2/pages", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[]`)
			return
		}
		items := []map[string]any{{
			"id":      7,
			"slug":    "dealers",
			"link":    srv.URL + "/dealers/",
			"title":   map[string]string{"rendered": "Our Dealers"},
			"content": map[string]string{"rendered": dealerHTML},
		}}
		json.NewEncoder(w).Encode(items)
	})
	mux.HandleFunc("/wp-json/wp/v2/posts", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	mux.HandleFunc("/wp-json/wp/v2/media", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestMain_Run_Dump(t *testing.T) {
	t.Parallel()

	t.Run("dumps a site end to end", func(t *testing.T) {
		t.Parallel()

		srv := newRESTServer(t)
		outDir := t.TempDir()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		defer m.Close()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{
			"dump", srv.URL, "--out", outDir, "--skip-media", "--rps", "1000",
		}, stdout, stderr)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), `Dumped "Lake Country Docks"`)
		assert.Contains(t, stdout.String(), "1 pages")

		siteDir := filepath.Join(outDir, "Lake-Country-Docks")
		pretty, err := os.ReadFile(filepath.Join(siteDir, "pretty_pages", "pages-dealers.txt"))
		require.NoError(t, err)
		assert.Contains(t, string(pretty), "Bay Marine Incorporated Sales and Service")

		assert.FileExists(t, filepath.Join(siteDir, "raw_pages", "pages-dealers.txt"))
		assert.FileExists(t, filepath.Join(siteDir, "markdown_pages", "pages-dealers.md"))
		assert.FileExists(t, filepath.Join(siteDir, "index.json"))

		csvData, err := os.ReadFile(filepath.Join(siteDir, "business_data.csv"))
		require.NoError(t, err)
		assert.Contains(t, string(csvData), "218-555-0101")
	})

	t.Run("second run reports unchanged pages", func(t *testing.T) {
		t.Parallel()

		srv := newRESTServer(t)
		outDir := t.TempDir()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		defer m.Close()

		args := []string{"dump", srv.URL, "--out", outDir, "--skip-media", "--rps", "1000"}

		err := m.Run(context.Background(), args, &bytes.Buffer{}, &bytes.Buffer{})
		require.NoError(t, err)

		stdout := &bytes.Buffer{}
		err = m.Run(context.Background(), args, stdout, &bytes.Buffer{})
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "1 unchanged")
	})

	t.Run("verbose logs fetches and writes to stderr", func(t *testing.T) {
		t.Parallel()

		srv := newRESTServer(t)
		outDir := t.TempDir()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		defer m.Close()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{
			"dump", srv.URL, "--out", outDir, "--skip-media", "--rps", "1000", "--verbose",
		}, stdout, stderr)
		require.NoError(t, err)

		assert.Contains(t, stderr.String(), "write page")
		assert.Contains(t, stderr.String(), "pages-dealers.txt")
	})
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{}, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_HelpDoesNotCreateDB(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "never.db")

	m := main.NewMain()
	m.DBPath = dbPath

	err := m.Run(context.Background(), []string{"help"}, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.NoFileExists(t, dbPath)
}
