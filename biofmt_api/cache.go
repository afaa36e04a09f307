package biofmt_api

import "github.com/rs/zerolog"

type headerCacheEntry struct {
	revision int
	header   *Header
}

// HeaderCache keeps the parsed header of every open document for the revision it was built from.
// It is owned by a Workspace and isn't safe for concurrent use.
type HeaderCache struct {
	entries map[DocumentId]headerCacheEntry
	build   func(text string) *Header
	logger  zerolog.Logger
}

// NewHeaderCache creates an empty header cache
func NewHeaderCache(logger zerolog.Logger) *HeaderCache {
	return &HeaderCache{
		entries: map[DocumentId]headerCacheEntry{},
		build:   ParseHeader,
		logger:  logger,
	}
}

// Get returns the header of the document at the given revision.
// The header is only rebuilt when the cached revision differs.
func (cache *HeaderCache) Get(id DocumentId, revision int, text string) *Header {
	if entry, ok := cache.entries[id]; ok && entry.revision == revision {
		return entry.header
	}

	header := cache.build(text)
	cache.entries[id] = headerCacheEntry{revision: revision, header: header}
	cache.logger.Debug().
		Str("document", string(id)).
		Int("revision", revision).
		Int("headerEndLine", header.HeaderEndLine).
		Msg("parsed VCF header")
	return header
}

// Evict drops the cached header of a document
func (cache *HeaderCache) Evict(id DocumentId) {
	if _, ok := cache.entries[id]; !ok {
		return
	}
	delete(cache.entries, id)
	cache.logger.Debug().Str("document", string(id)).Msg("evicted VCF header")
}

// Len returns the amount of cached headers
func (cache *HeaderCache) Len() int {
	return len(cache.entries)
}
