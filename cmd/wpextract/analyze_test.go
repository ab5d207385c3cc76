package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/wpextract/cmd/wpextract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("reports statistics for a dumped site", func(t *testing.T) {
		t.Parallel()

		siteDir := filepath.Join(t.TempDir(), "Lake-Country-Docks")
		prettyDir := filepath.Join(siteDir, "pretty_pages")
		require.NoError(t, os.MkdirAll(prettyDir, 0o755))

		home := "Welcome to the lake. We sell docks and boat lifts.\n" +
			"Call 218-555-0101 for a quote on your shoreline project."
		dealers := "Our dealer network covers the entire lakes region.\n" +
			"Email sales@example.com to become a dealer."
		require.NoError(t, os.WriteFile(filepath.Join(prettyDir, "pages-home.txt"), []byte(home), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(prettyDir, "pages-dealers.txt"), []byte(dealers), 0o644))

		m := main.NewMain()
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"analyze", siteDir}, stdout, &bytes.Buffer{})
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "Site: Lake-Country-Docks")
		assert.Contains(t, output, "Pages: 2")
		assert.Contains(t, output, "1 phones, 1 emails")
		assert.Contains(t, output, "pages-home.txt")
		assert.Contains(t, output, "pages-dealers.txt")
		assert.Contains(t, output, "Content types:")
		assert.Contains(t, output, "pages")
	})

	t.Run("reports an error for a directory without renderings", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"analyze", t.TempDir()}, &bytes.Buffer{}, stderr)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
