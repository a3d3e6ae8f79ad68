package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")

	fw, err := NewFileWatcher(path, nil)
	require.NoError(t, err)
	defer fw.Close()

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))
	select {
	case <-fw.Changes():
		t.Fatal("unexpected change notification for unrelated file")
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	select {
	case _, ok := <-fw.Changes():
		require.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}

func TestFileWatcherReportsRenameInto(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")

	fw, err := NewFileWatcher(path, nil)
	require.NoError(t, err)
	defer fw.Close()

	tmp := filepath.Join(dir, "state-1.json.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("{}"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case <-fw.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}

func TestFileWatcherCloseClosesChanges(t *testing.T) {
	fw, err := NewFileWatcher(filepath.Join(t.TempDir(), "state.json"), nil)
	require.NoError(t, err)
	require.NoError(t, fw.Close())

	select {
	case _, ok := <-fw.Changes():
		require.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("changes channel not closed after Close")
	}
}

func TestNewFileWatcherMissingDirectory(t *testing.T) {
	_, err := NewFileWatcher(filepath.Join(t.TempDir(), "missing", "state.json"), nil)
	require.Error(t, err)
}
