package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, opts Options) {
	t.Helper()
	w, err := New(opts)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop")
		}
	})
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild")
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	fired := make(chan struct{}, 10)

	startWatcher(t, Options{
		Dirs:     []string{dir},
		Debounce: 100 * time.Millisecond,
		Rebuild: func(context.Context) error {
			calls.Add(1)
			fired <- struct{}{}
			return nil
		},
	})

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte{byte('a' + i)}, 0o644))
	}
	waitFor(t, fired)
	time.Sleep(300 * time.Millisecond)
	require.Equal(t, int32(1), calls.Load())
}

func TestWatcherNewSubdirectory(t *testing.T) {
	dir := t.TempDir()
	fired := make(chan struct{}, 10)
	startWatcher(t, Options{
		Dirs:     []string{dir},
		Debounce: 50 * time.Millisecond,
		Rebuild: func(context.Context) error {
			fired <- struct{}{}
			return errors.New("rebuild failures keep the watcher running")
		},
	})

	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	waitFor(t, fired)

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "b.md"), []byte("b"), 0o644))
	waitFor(t, fired)
}

func TestWatcherFileFilter(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("a: 1"), 0o644))

	w, err := New(Options{Files: []string{cfgPath}, Rebuild: func(context.Context) error { return nil }})
	require.NoError(t, err)
	defer w.fsw.Close()

	require.True(t, w.relevant(fsnotify.Event{Name: cfgPath, Op: fsnotify.Write}))
	require.False(t, w.relevant(fsnotify.Event{Name: filepath.Join(dir, "other.yaml"), Op: fsnotify.Write}))
	require.False(t, w.relevant(fsnotify.Event{Name: cfgPath, Op: fsnotify.Chmod}))
}

func TestWatcherIgnore(t *testing.T) {
	dir := t.TempDir()
	public := filepath.Join(dir, "public")
	require.NoError(t, os.Mkdir(public, 0o755))

	w, err := New(Options{Dirs: []string{dir}, Ignore: []string{public}, Rebuild: func(context.Context) error { return nil }})
	require.NoError(t, err)
	defer w.fsw.Close()

	require.False(t, w.relevant(fsnotify.Event{Name: filepath.Join(public, "index.html"), Op: fsnotify.Create}))
	require.False(t, w.relevant(fsnotify.Event{Name: public, Op: fsnotify.Remove}))
	require.True(t, w.relevant(fsnotify.Event{Name: filepath.Join(dir, "publication.md"), Op: fsnotify.Create}))
	require.NotContains(t, w.fsw.WatchList(), public)
}

func TestWatcherRelevantRelativeDirs(t *testing.T) {
	w := &Watcher{opts: Options{Dirs: []string{"."}, Ignore: []string{"public"}}}

	require.True(t, w.relevant(fsnotify.Event{Name: "post.md", Op: fsnotify.Write}))
	require.True(t, w.relevant(fsnotify.Event{Name: filepath.Join("sub", "post.md"), Op: fsnotify.Create}))
	require.True(t, w.relevant(fsnotify.Event{Name: "..draft.md", Op: fsnotify.Write}))
	require.False(t, w.relevant(fsnotify.Event{Name: filepath.Join("public", "index.html"), Op: fsnotify.Write}))
	require.False(t, w.relevant(fsnotify.Event{Name: filepath.Join("..", "elsewhere.md"), Op: fsnotify.Write}))

	w = &Watcher{opts: Options{Dirs: []string{"content"}}}
	require.True(t, w.relevant(fsnotify.Event{Name: filepath.Join("content", "a.md"), Op: fsnotify.Write}))
	require.False(t, w.relevant(fsnotify.Event{Name: "contented.md", Op: fsnotify.Write}))
}

func TestNewRequiresRebuild(t *testing.T) {
	_, err := New(Options{Dirs: []string{t.TempDir()}})
	require.Error(t, err)
}
