package internal

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherStartStop(t *testing.T) {
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	dir := createTempDir(t, "watch")
	watcher, err := NewWatcher(engine, []string{dir})
	require.NoError(t, err)

	require.NoError(t, watcher.StartWatching())

	// a second start on a running watcher is rejected
	assert.Error(t, watcher.StartWatching())

	assert.NoError(t, watcher.StopWatching())

	// stopping twice is a no-op, not a double close
	assert.NoError(t, watcher.StopWatching())
}

func TestWatcherConcurrentStop(t *testing.T) {
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	dir := createTempDir(t, "watch")
	watcher, err := NewWatcher(engine, []string{dir})
	require.NoError(t, err)
	require.NoError(t, watcher.StartWatching())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = watcher.StopWatching()
		}()
	}
	wg.Wait()
}
