package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, ch <-chan string, want int, timeout time.Duration) []string {
	t.Helper()
	var got []string
	deadline := time.After(timeout)
	for len(got) < want {
		select {
		case p, ok := <-ch:
			if !ok {
				return got
			}
			got = append(got, p)
		case <-deadline:
			return got
		}
	}
	return got
}

func TestWatcherInitialScanEmitsExistingPDFs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.pdf"), []byte("%PDF"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))
	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "b.PDF"), []byte("%PDF"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	files, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{root}, InitialScan: true})
	require.NoError(t, err)

	got := collect(t, files, 2, 2*time.Second)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "a.pdf"),
		filepath.Join(sub, "b.PDF"),
	}, got)
}

func TestWatcherEmitsNewPDFs(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	files, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{root}})
	require.NoError(t, err)

	path := filepath.Join(root, "новый.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0o644))

	got := collect(t, files, 1, 3*time.Second)
	require.Len(t, got, 1)
	assert.Equal(t, path, got[0])
}

func TestWatcherIgnoresOtherExtensions(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	files, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{root}})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "image.jpg"), []byte("x"), 0o644))

	got := collect(t, files, 1, 500*time.Millisecond)
	assert.Empty(t, got)
}

func TestWatcherSurvivesEventBurst(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	files, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{root}, Debounce: time.Millisecond})
	require.NoError(t, err)

	const n = 200
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < n; i++ {
			_ = os.WriteFile(filepath.Join(root, fmt.Sprintf("doc_%03d.pdf", i)), []byte("%PDF"), 0o644)
		}
	}()

	// A file may surface more than once (create then write); every file
	// must surface at least once and the daemon must stay alive throughout.
	seen := map[string]struct{}{}
	deadline := time.After(10 * time.Second)
	for len(seen) < n {
		select {
		case p, ok := <-files:
			require.True(t, ok, "watcher closed early")
			seen[p] = struct{}{}
		case <-deadline:
			t.Fatalf("only %d of %d files surfaced", len(seen), n)
		}
	}
	<-done
	assert.Len(t, seen, n)
}

func TestWatcherRequiresRoots(t *testing.T) {
	_, _, err := StartWatcher(context.Background(), WatchConfig{})
	assert.Error(t, err)
}
