package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const testDebounce = 20 * time.Millisecond

// verifyNoLeaks snapshots the running goroutines and returns a check that
// fails t if any new ones are left. The arbor log buffer runs for the life
// of the process and is not the watcher's.
func verifyNoLeaks(t *testing.T) func() {
	opts := []goleak.Option{
		goleak.IgnoreCurrent(),
		goleak.IgnoreTopFunction("github.com/ternarybob/arbor/common.run"),
		goleak.IgnoreTopFunction("github.com/ternarybob/arbor/common.flush.func1"),
	}
	return func() { goleak.VerifyNone(t, opts...) }
}

// startWatcher runs w in the background and returns a stop function that
// cancels it and waits for Run to return.
func startWatcher(t *testing.T, w *Watcher) func() {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	return func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("watcher did not stop")
		}
	}
}

func TestWatcher_RegeneratesOnChange(t *testing.T) {
	defer verifyNoLeaks(t)()

	dir := t.TempDir()
	input := filepath.Join(dir, "greeting.txt")
	require.NoError(t, os.WriteFile(input, []byte("v1\n"), 0644))

	calls := make(chan struct{}, 10)
	w, err := New([]string{input}, func() error {
		calls <- struct{}{}
		return nil
	}, testDebounce, nil)
	require.NoError(t, err)
	stop := startWatcher(t, w)

	// A burst of writes settles into one regeneration.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(input, []byte("v2\n"), 0644))
	}

	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("no regeneration after input changed")
	}

	stop()
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	defer verifyNoLeaks(t)()

	dir := t.TempDir()
	input := filepath.Join(dir, "greeting.txt")
	require.NoError(t, os.WriteFile(input, []byte("v1\n"), 0644))

	var count atomic.Int32
	w, err := New([]string{input}, func() error {
		count.Add(1)
		return nil
	}, testDebounce, nil)
	require.NoError(t, err)
	stop := startWatcher(t, w)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "consts.cpp"), []byte("out"), 0644))
	time.Sleep(10 * testDebounce)

	stop()
	assert.Equal(t, int32(0), count.Load())
}

func TestWatcher_SurvivesFailedRun(t *testing.T) {
	defer verifyNoLeaks(t)()

	dir := t.TempDir()
	input := filepath.Join(dir, "greeting.txt")
	require.NoError(t, os.WriteFile(input, []byte("v1\n"), 0644))

	calls := make(chan struct{}, 10)
	w, err := New([]string{input}, func() error {
		calls <- struct{}{}
		return errors.New("boom")
	}, testDebounce, nil)
	require.NoError(t, err)
	stop := startWatcher(t, w)

	for i := 0; i < 2; i++ {
		require.NoError(t, os.WriteFile(input, []byte("change\n"), 0644))
		select {
		case <-calls:
		case <-time.After(5 * time.Second):
			t.Fatalf("no regeneration for change %d", i)
		}
	}

	stop()
}

func TestNew_Errors(t *testing.T) {
	defer verifyNoLeaks(t)()

	_, err := New(nil, func() error { return nil }, testDebounce, nil)
	assert.Error(t, err)

	missingDir := filepath.Join(t.TempDir(), "missing", "in.txt")
	_, err = New([]string{missingDir}, func() error { return nil }, testDebounce, nil)
	assert.ErrorContains(t, err, "watch ")
}
