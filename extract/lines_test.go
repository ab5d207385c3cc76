package extract_test

import (
	"testing"

	"github.com/fwojciec/wpextract"
	"github.com/fwojciec/wpextract/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLines_Extract(t *testing.T) {
	t.Parallel()

	t.Run("all-caps lines start entities and fields follow", func(t *testing.T) {
		t.Parallel()

		content := &wpextract.Content{
			Text: `ACME MARINE SALES
(218) 555-0101
100 Main St
Anytown, MN 56001
Full marine repair
Family owned since 1962

BAY DOCKS LLC
218-555-0202`,
		}

		businesses := extract.NewLines().Extract(content)

		require.Len(t, businesses, 2)

		first := businesses[0]
		assert.Equal(t, "ACME MARINE SALES", first.Name)
		assert.Equal(t, "(218) 555-0101", first.Phone)
		assert.Equal(t, "100 Main St, Anytown, MN 56001", first.Address)
		assert.Equal(t, []string{"Full marine repair"}, first.Services)
		assert.Equal(t, []string{"Family owned since 1962"}, first.OtherInfo)
		assert.Equal(t, wpextract.SourceLineScan, first.Source)

		second := businesses[1]
		assert.Equal(t, "BAY DOCKS LLC", second.Name)
		assert.Equal(t, "218-555-0202", second.Phone)
	})

	t.Run("final accumulator is flushed at end of input", func(t *testing.T) {
		t.Parallel()

		content := &wpextract.Content{Text: "LAKESIDE LIFTS\n218-555-0303"}

		businesses := extract.NewLines().Extract(content)

		require.Len(t, businesses, 1)
		assert.Equal(t, "LAKESIDE LIFTS", businesses[0].Name)
	})

	t.Run("state zip line appends to a partial address", func(t *testing.T) {
		t.Parallel()

		content := &wpextract.Content{Text: "NORTH SHORE DOCKS\nAnytown, MN 56001"}

		businesses := extract.NewLines().Extract(content)

		require.Len(t, businesses, 1)
		assert.Equal(t, "Anytown, MN 56001", businesses[0].Address)
	})

	t.Run("lines before the first entity are ignored", func(t *testing.T) {
		t.Parallel()

		content := &wpextract.Content{Text: "Welcome to our dealer directory.\n218-555-0101"}

		assert.Empty(t, extract.NewLines().Extract(content))
	})

	t.Run("phone-shaped and address-shaped lines never start entities", func(t *testing.T) {
		t.Parallel()

		content := &wpextract.Content{Text: "218-555-0101 218-555-0202\n100 MAIN ST EXTENSION"}

		assert.Empty(t, extract.NewLines().Extract(content))
	})

	t.Run("empty input yields nothing", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, extract.NewLines().Extract(&wpextract.Content{}))
	})
}
