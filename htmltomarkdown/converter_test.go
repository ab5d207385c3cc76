package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/wpextract"
	"github.com/fwojciec/wpextract/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts headings and links", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Dealers</h1><p>Visit <a href="https://example.com">Example</a> today.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# Dealers")
		assert.Contains(t, md, "[Example](https://example.com)")
	})

	t.Run("shortcodes are removed before conversion", func(t *testing.T) {
		t.Parallel()

		html := `<p>[vc_row][vc_column_text]Bay Marine[/vc_column_text][/vc_row]</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "Bay Marine")
		assert.NotContains(t, md, "vc_row")
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("  ")

		require.Error(t, err)
		assert.Equal(t, wpextract.EINVALID, wpextract.ErrorCode(err))
	})
}
