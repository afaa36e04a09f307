package biofmt_api

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const watchTimeout = 5 * time.Second

func startTestWatcher(t *testing.T, paths ...string) *Watcher {
	t.Helper()
	watcher, err := NewWatcher(paths)
	require.NoError(t, err)
	require.NoError(t, watcher.Start())
	return watcher
}

func nextEvent(t *testing.T, watcher *Watcher) string {
	t.Helper()
	select {
	case path := <-watcher.Events():
		return path
	case err := <-watcher.Errors():
		t.Fatalf("watcher error: %v", err)
	case <-time.After(watchTimeout):
		t.Fatal("no event received")
	}
	return ""
}

func TestWatcherReportsWatchedFiles(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "a.bed")
	sibling := filepath.Join(dir, "b.bed")
	require.NoError(t, os.WriteFile(watched, []byte("chr1\t1\t2\n"), 0o644))
	require.NoError(t, os.WriteFile(sibling, []byte("chr1\t1\t2\n"), 0o644))

	watcher := startTestWatcher(t, watched)

	// the sibling write comes first, the first event must still be the watched file
	require.NoError(t, os.WriteFile(sibling, []byte("chr1\t5\t6\n"), 0o644))
	require.NoError(t, os.WriteFile(watched, []byte("chr1\t5\t6\n"), 0o644))

	assert.Equal(t, watched, nextEvent(t, watcher))
	assert.NoError(t, watcher.Stop())
}

func TestWatcherStopWithoutStart(t *testing.T) {
	watcher, err := NewWatcher([]string{filepath.Join(t.TempDir(), "a.bed")})
	require.NoError(t, err)
	assert.NoError(t, watcher.Stop())

	_, open := <-watcher.Events()
	assert.False(t, open)
}

func TestWatcherChangesRevalidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.bed")
	require.NoError(t, os.WriteFile(path, []byte("chr1\t100\t200\n"), 0o644))

	workspace := NewWorkspace(nil, zerolog.Nop())
	workspace.Open(DocumentId(path), FormatBed, "chr1\t100\t200\n")
	diagnostics, err := workspace.Validate(DocumentId(path))
	require.NoError(t, err)
	assert.Empty(t, diagnostics)

	watcher := startTestWatcher(t, path)
	defer watcher.Stop()

	const written = "chr1\t200\t100\n"
	require.NoError(t, os.WriteFile(path, []byte(written), 0o644))

	// truncation and the write can arrive as separate events
	var changed, text string
	for text != written {
		changed = nextEvent(t, watcher)
		text, err = ReadDocument(changed)
		require.NoError(t, err)
	}
	document, err := workspace.Change(DocumentId(changed), text)
	require.NoError(t, err)
	assert.Equal(t, 2, document.Revision)

	diagnostics, err = workspace.Validate(DocumentId(changed))
	require.NoError(t, err)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, startBeforeEnd, diagnostics[0].Message)
}
