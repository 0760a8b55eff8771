package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/tigen/internal/errors"
	"github.com/thoreinstein/tigen/internal/logging"
)

func startWatcher(t *testing.T, path string, build BuildFunc) (cancel func(), done <-chan error) {
	t.Helper()

	w, err := New(path, 20*time.Millisecond, build)
	require.NoError(t, err)

	ctx, cancelCtx := context.WithCancel(logging.NewContext(context.Background(), logging.ForTest(t)))
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()
	return cancelCtx, errc
}

func waitFor(t *testing.T, builds <-chan struct{}) {
	t.Helper()
	select {
	case <-builds:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a build")
	}
}

func TestWatcher_RebuildsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foot.info")
	require.NoError(t, os.WriteFile(path, []byte("a|a,am,\n"), 0o600))

	builds := make(chan struct{}, 10)
	cancel, done := startWatcher(t, path, func(context.Context) error {
		builds <- struct{}{}
		return nil
	})

	waitFor(t, builds) // initial build

	require.NoError(t, os.WriteFile(path, []byte("a|a,am,bce,\n"), 0o600))
	waitFor(t, builds)

	cancel()
	assert.NoError(t, <-done)
}

func TestWatcher_IgnoresOtherFilesAndSameContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "foot.info")
	require.NoError(t, os.WriteFile(path, []byte("a|a,am,\n"), 0o600))

	var count atomic.Int32
	builds := make(chan struct{}, 10)
	cancel, done := startWatcher(t, path, func(context.Context) error {
		count.Add(1)
		builds <- struct{}{}
		return nil
	})
	waitFor(t, builds)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.info"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte("a|a,am,\n"), 0o600))
	time.Sleep(200 * time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), count.Load())
}

func TestWatcher_FailedBuildKeepsWatching(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foot.info")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o600))

	var calls atomic.Int32
	builds := make(chan struct{}, 10)
	cancel, done := startWatcher(t, path, func(context.Context) error {
		defer func() { builds <- struct{}{} }()
		if calls.Add(1) == 1 {
			return errors.New("syntax error")
		}
		return nil
	})
	waitFor(t, builds)

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o600))
	waitFor(t, builds)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, int32(2), calls.Load())
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "absent", "foot.info"), 0, func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, DefaultDebounce, w.debounce)

	err = w.Run(logging.NewContext(context.Background(), logging.ForTest(t)))
	assert.Error(t, err)
}
