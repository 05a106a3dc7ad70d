package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"seohead/internal/observability"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const DefaultDebounce = 200 * time.Millisecond

type Options struct {
	// Dirs are watched recursively; directories created later are picked up.
	Dirs []string
	// Files are watched through their parent directory so that editors that
	// replace the file on save are still noticed.
	Files []string
	// Ignore lists path prefixes whose events never trigger a rebuild, such as
	// an output directory nested in a source directory.
	Ignore []string

	Debounce time.Duration
	Rebuild  func(ctx context.Context) error
	Logger   *zap.Logger
}

type Watcher struct {
	opts  Options
	log   *zap.Logger
	fsw   *fsnotify.Watcher
	files map[string]struct{}
}

// New registers every watch before returning, so changes made after New
// returns are seen by Run.
func New(opts Options) (*Watcher, error) {
	if opts.Rebuild == nil {
		return nil, errors.New("watch: rebuild callback is required")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	w := &Watcher{
		opts:  opts,
		log:   observability.OrNop(opts.Logger),
		fsw:   fsw,
		files: make(map[string]struct{}),
	}
	for _, dir := range opts.Dirs {
		if dir == "" {
			continue
		}
		if err := w.addTree(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	for _, f := range opts.Files {
		if f == "" {
			continue
		}
		abs := filepath.Clean(f)
		w.files[abs] = struct{}{}
		if err := fsw.Add(filepath.Dir(abs)); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", f, err)
		}
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.ignored(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) ignored(path string) bool {
	for _, prefix := range w.opts.Ignore {
		if prefix != "" && within(prefix, path) {
			return true
		}
	}
	return false
}

// relevant reports whether ev should schedule a rebuild. Events in the parent
// directory of a watched file only count for that file.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Clean(ev.Name)
	if w.ignored(name) {
		return false
	}
	if _, ok := w.files[name]; ok {
		return true
	}
	for _, dir := range w.opts.Dirs {
		if dir != "" && within(dir, name) {
			return true
		}
	}
	return false
}

// within reports whether name is dir or lies below it. Both are compared as
// given, so a relative dir such as "." matches the relative names fsnotify
// reports for it.
func within(dir, name string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(name))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Run blocks until ctx is done, calling Rebuild once changes have been quiet
// for the debounce interval. A failed rebuild is logged and watching goes on.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	w.log.Info("watching for changes", zap.Strings("dirs", w.opts.Dirs), zap.Strings("files", w.opts.Files))

	debounce := time.NewTimer(time.Hour)
	debounce.Stop()

	trigger := func() {
		if !debounce.Stop() {
			select {
			case <-debounce.C:
			default:
			}
		}
		debounce.Reset(w.opts.Debounce)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if st, err := os.Stat(ev.Name); err == nil && st.IsDir() && !w.ignored(ev.Name) {
					if err := w.addTree(ev.Name); err != nil {
						w.log.Warn("watch new directory", zap.String("path", ev.Name), zap.Error(err))
					}
				}
			}
			if w.relevant(ev) {
				w.log.Debug("change", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
				trigger()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", zap.Error(err))
		case <-debounce.C:
			if err := w.opts.Rebuild(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				w.log.Error("rebuild failed", zap.Error(err))
			}
		}
	}
}
