package corpus

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillmatch/internal/logging"
)

type countingReloader struct {
	calls atomic.Int32
}

func (c *countingReloader) Reload(_ context.Context) (*Snapshot, error) {
	c.calls.Add(1)
	return nil, nil
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jobs.csv")
	require.NoError(t, os.WriteFile(path, []byte("role,skills\nA,go\n"), 0o644))

	reloader := &countingReloader{}
	w := NewWatcher(path, reloader, 20*time.Millisecond, logging.NewTest(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("role,skills\nB,rust\n"), 0o644))
	}

	assert.Eventually(t, func() bool { return reloader.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	// Let any trailing debounce fire, then check that writes to other files are ignored.
	time.Sleep(150 * time.Millisecond)
	before := reloader.calls.Load()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x"), 0o644))
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, before, reloader.calls.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "nope", "jobs.csv"), &countingReloader{}, 0, nil)
	err := w.Run(context.Background())
	assert.Error(t, err)
}
