package biofmt_api

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingCache() (*HeaderCache, *int) {
	builds := 0
	cache := NewHeaderCache(zerolog.Nop())
	cache.build = func(text string) *Header {
		builds++
		return ParseHeader(text)
	}
	return cache, &builds
}

func TestHeaderCacheBuildsOncePerRevision(t *testing.T) {
	cache, builds := countingCache()

	first := cache.Get("doc", 1, exampleVcf)
	second := cache.Get("doc", 1, exampleVcf)
	third := cache.Get("doc", 1, "ignored because the revision didn't change")

	assert.Equal(t, 1, *builds)
	assert.Same(t, first, second)
	assert.Same(t, first, third)
	if diff := cmp.Diff(ParseHeader(exampleVcf).Samples, first.Samples); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
}

func TestHeaderCacheRebuildsOnRevisionChange(t *testing.T) {
	cache, builds := countingCache()

	before := cache.Get("doc", 1, exampleVcf)
	after := cache.Get("doc", 2, "##fileformat=VCFv4.3\n")

	assert.Equal(t, 2, *builds)
	assert.Equal(t, "VCFv4.2", before.FileFormat)
	assert.Equal(t, "VCFv4.3", after.FileFormat)
	assert.Equal(t, 1, cache.Len())

	// Only the latest revision is kept
	cache.Get("doc", 1, exampleVcf)
	assert.Equal(t, 3, *builds)
}

func TestHeaderCacheKeepsDocumentsApart(t *testing.T) {
	cache, builds := countingCache()

	a := cache.Get("a", 1, "##fileformat=A")
	b := cache.Get("b", 1, "##fileformat=B")
	require.Equal(t, 2, *builds)
	assert.Equal(t, "A", a.FileFormat)
	assert.Equal(t, "B", b.FileFormat)
	assert.Equal(t, 2, cache.Len())
}

func TestHeaderCacheEvict(t *testing.T) {
	cache, builds := countingCache()

	cache.Get("doc", 1, exampleVcf)
	cache.Evict("doc")
	cache.Evict("unknown")
	assert.Equal(t, 0, cache.Len())

	cache.Get("doc", 1, exampleVcf)
	assert.Equal(t, 2, *builds)
}
