package bloom_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/wpextract/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_Seen(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Seen("https://example.com/logo.png"), "first sighting is new")
	assert.True(t, f.Seen("https://example.com/logo.png"), "second sighting is a repeat")
	assert.False(t, f.Seen("https://example.com/other.png"), "different URL is new")
}

func TestFilter_Test(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("https://example.com/a.png"))
	f.Seen("https://example.com/a.png")
	assert.True(t, f.Test("https://example.com/a.png"))
	assert.False(t, f.Test("https://example.com/b.png"), "testing does not record")
}

func TestFilter_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(10000, 0.01)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				f.Seen(fmt.Sprintf("https://example.com/media/%d/%d.jpg", w, i))
			}
		}(w)
	}
	wg.Wait()

	assert.Greater(t, f.EstimatedCount(), uint(700))
}
