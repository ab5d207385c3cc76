package extract_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/wpextract"
	"github.com/fwojciec/wpextract/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dealerRow(columns ...string) string {
	var b strings.Builder
	b.WriteString(`[vc_row_inner column_margin="default"]`)
	for _, col := range columns {
		b.WriteString("[vc_column_text]")
		b.WriteString(col)
		b.WriteString("[/vc_column_text]")
	}
	// Padding keeps data rows above the minimum length threshold.
	b.WriteString(strings.Repeat(" ", 100))
	b.WriteString("[/vc_row_inner]")
	return b.String()
}

func TestTableRows_Extract(t *testing.T) {
	t.Parallel()

	t.Run("qualifying row yields one entity", func(t *testing.T) {
		t.Parallel()

		content := &wpextract.Content{
			HTML: dealerRow("Bay Marine", "100 Main St, Anytown, MN 56001", "218-555-0101", "Docks &amp; Lifts"),
		}

		businesses := extract.NewTableRows().Extract(content)

		require.Len(t, businesses, 1)
		assert.Equal(t, "Bay Marine", businesses[0].Name)
		assert.Equal(t, "100 Main St, Anytown, MN 56001", businesses[0].Address)
		assert.Equal(t, "218-555-0101", businesses[0].Phone)
		assert.Contains(t, businesses[0].Services, "docks & lifts")
		assert.Equal(t, wpextract.SourceTableFormat, businesses[0].Source)
		assert.Contains(t, businesses[0].AddressURL, "https://maps.google.com/?q=")
	})

	t.Run("service columns default when no keyword matches", func(t *testing.T) {
		t.Parallel()

		content := &wpextract.Content{
			HTML: dealerRow("Bay Marine", "100 Main St", "218-555-0101", "open weekends"),
		}

		businesses := extract.NewTableRows().Extract(content)

		require.Len(t, businesses, 1)
		assert.Equal(t, []string{wpextract.DefaultServiceTag}, businesses[0].Services)
	})

	t.Run("divider rows are skipped", func(t *testing.T) {
		t.Parallel()

		content := &wpextract.Content{
			HTML: dealerRow("divider", "divider", "divider", "divider"),
		}

		assert.Empty(t, extract.NewTableRows().Extract(content))
	})

	t.Run("header rows without a phone are skipped", func(t *testing.T) {
		t.Parallel()

		content := &wpextract.Content{
			HTML: dealerRow("Dealer Name", "Address", "Phone Number", "Services"),
		}

		assert.Empty(t, extract.NewTableRows().Extract(content))
	})

	t.Run("rows with fewer than three columns are skipped", func(t *testing.T) {
		t.Parallel()

		content := &wpextract.Content{
			HTML: dealerRow("Bay Marine Incorporated Sales Office", "218-555-0101 main office line"),
		}

		assert.Empty(t, extract.NewTableRows().Extract(content))
	})

	t.Run("markup inside columns is cleaned", func(t *testing.T) {
		t.Parallel()

		content := &wpextract.Content{
			HTML: dealerRow("<strong>Bay   Marine</strong>", "100 Main St", "<span>218-555-0101</span>", "docks"),
		}

		businesses := extract.NewTableRows().Extract(content)

		require.Len(t, businesses, 1)
		assert.Equal(t, "Bay Marine", businesses[0].Name)
		assert.Equal(t, "218-555-0101", businesses[0].Phone)
	})

	t.Run("page without rows yields nothing", func(t *testing.T) {
		t.Parallel()

		content := &wpextract.Content{HTML: "<p>Nothing tabular.</p>"}

		assert.Empty(t, extract.NewTableRows().Extract(content))
	})
}
