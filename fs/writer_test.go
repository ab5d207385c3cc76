package fs_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/wpextract"
	"github.com/fwojciec/wpextract/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanSiteName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain name dashed", "Lake Country Docks", "Lake-Country-Docks"},
		{"punctuation removed", "Bob's Marine & Sales!", "Bobs-Marine-Sales"},
		{"whitespace runs collapse", "My   Site \t Name", "My-Site-Name"},
		{"existing dashes kept", "already-dashed", "already-dashed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fs.CleanSiteName(tt.in))
		})
	}
}

func TestWriter_WritePage(t *testing.T) {
	t.Parallel()

	t.Run("writes all three renderings", func(t *testing.T) {
		t.Parallel()
		w := fs.NewWriter(t.TempDir())

		page := &wpextract.Page{Type: "pages", ID: 7, Slug: "dealers", Title: "Dealers", HTML: "<p>hi</p>"}
		rendered := &wpextract.RenderedPage{
			RawText:      "raw text",
			PrettyText:   "pretty text",
			MarkdownText: "# Dealers",
		}
		require.NoError(t, w.WritePage(context.Background(), "My Site", page, rendered))

		siteDir := w.SiteDir("My Site")
		assert.Equal(t, "My-Site", filepath.Base(siteDir))

		raw, err := os.ReadFile(filepath.Join(siteDir, "raw_pages", "pages-dealers.txt"))
		require.NoError(t, err)
		assert.Equal(t, "raw text", string(raw))

		pretty, err := os.ReadFile(filepath.Join(siteDir, "pretty_pages", "pages-dealers.txt"))
		require.NoError(t, err)
		assert.Equal(t, "pretty text", string(pretty))

		md, err := os.ReadFile(filepath.Join(siteDir, "markdown_pages", "pages-dealers.md"))
		require.NoError(t, err)
		assert.Equal(t, "# Dealers", string(md))
	})

	t.Run("rejects invalid page", func(t *testing.T) {
		t.Parallel()
		w := fs.NewWriter(t.TempDir())

		err := w.WritePage(context.Background(), "site", &wpextract.Page{}, &wpextract.RenderedPage{})
		require.Error(t, err)
		assert.Equal(t, wpextract.EINVALID, wpextract.ErrorCode(err))
	})

	t.Run("respects cancelled context", func(t *testing.T) {
		t.Parallel()
		w := fs.NewWriter(t.TempDir())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		page := &wpextract.Page{Type: "pages", Slug: "x", HTML: "<p>x</p>"}
		err := w.WritePage(ctx, "site", page, &wpextract.RenderedPage{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWriter_WriteMedia(t *testing.T) {
	t.Parallel()

	t.Run("saves file under images", func(t *testing.T) {
		t.Parallel()
		w := fs.NewWriter(t.TempDir())

		dest, err := w.WriteMedia(context.Background(), "site", "logo.png", []byte("png-bytes"))
		require.NoError(t, err)

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(data))
		assert.True(t, w.MediaExists("site", "logo.png"))
	})

	t.Run("does not overwrite an existing file", func(t *testing.T) {
		t.Parallel()
		w := fs.NewWriter(t.TempDir())

		_, err := w.WriteMedia(context.Background(), "site", "logo.png", []byte("first"))
		require.NoError(t, err)
		dest, err := w.WriteMedia(context.Background(), "site", "logo.png", []byte("second"))
		require.NoError(t, err)

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "first", string(data))
	})
}

func TestWriter_WriteIndex(t *testing.T) {
	t.Parallel()

	w := fs.NewWriter(t.TempDir())
	index := &fs.Index{
		Site:        "My Site",
		GeneratedAt: 1756512000,
		Items: []fs.IndexItem{{
			Type:       "pages",
			ID:         7,
			Slug:       "dealers",
			Title:      "Dealers",
			Link:       "https://example.com/dealers/",
			RawFile:    "raw_pages/pages-dealers.txt",
			PrettyFile: "pretty_pages/pages-dealers.txt",
		}},
		Media: []fs.IndexMedia{{ID: 12, File: "images/logo.png", SourceURL: "https://example.com/logo.png"}},
	}
	require.NoError(t, w.WriteIndex(context.Background(), "My Site", index))

	data, err := os.ReadFile(filepath.Join(w.SiteDir("My Site"), "index.json"))
	require.NoError(t, err)

	var got fs.Index
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, *index, got)
	assert.True(t, strings.Contains(string(data), "\n  \"site\""), "index.json should be indented")
}

func TestWriter_WriteBusinessCSV(t *testing.T) {
	t.Parallel()

	w := fs.NewWriter(t.TempDir())
	businesses := []*wpextract.Business{
		{
			Name:       "Bay Marine",
			Address:    "123 Main St, Anytown, MN 56001",
			AddressURL: "https://maps.google.com/?q=46.38,-95.74",
			Phone:      "218-555-0101",
			WebsiteURL: "https://baymarine.example.com",
			Services:   []string{"docks", "lifts"},
			ExtraLocations: []wpextract.ExtraLocation{
				{Name: "Bay Marine North", Coordinates: "46.5, -95.8"},
			},
			Source: wpextract.SourceTableFormat,
		},
		{Name: "Solo Docks", Source: wpextract.SourceLineScan},
	}
	require.NoError(t, w.WriteBusinessCSV(context.Background(), "site", businesses))

	f, err := os.Open(filepath.Join(w.SiteDir("site"), "business_data.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"name", "address", "address_url", "phone", "website_url",
		"services", "extra_locations", "source",
	}, rows[0])

	assert.Equal(t, "Bay Marine", rows[1][0])
	assert.Equal(t, "docks & lifts", rows[1][5])
	assert.Contains(t, rows[1][6], "Bay Marine North")
	assert.Equal(t, "table_format", rows[1][7])

	assert.Equal(t, "Solo Docks", rows[2][0])
	assert.Equal(t, "", rows[2][6], "no extra locations encodes as empty cell")
}
