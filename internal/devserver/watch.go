package devserver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/keepchen/go-sail-website/pkg/logging"
)

type watcher struct {
	fsw  *fsnotify.Watcher
	done chan struct{}
	wg   sync.WaitGroup
}

func (w *watcher) close() error {
	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

// Watch starts watching the content directory and its subdirectories. It
// returns once the watches are in place; changes then trigger Reload until
// ctx is done or Close is called.
func (ds *DevServer) Watch(ctx context.Context) error {
	if ds.cfg.ContentDir == "" {
		return ErrNoContentDir
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := addTree(fsw, ds.cfg.ContentDir); err != nil {
		fsw.Close()
		return err
	}

	w := &watcher{fsw: fsw, done: make(chan struct{})}

	ds.watchMu.Lock()
	if ds.watcher != nil {
		ds.watchMu.Unlock()
		fsw.Close()
		return fmt.Errorf("already watching %s", ds.cfg.ContentDir)
	}
	ds.watcher = w
	ds.watchMu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ds.loop(ctx, w)
	}()

	ds.log.Info("watching content", logging.String("dir", ds.cfg.ContentDir))
	return nil
}

func (ds *DevServer) loop(ctx context.Context, w *watcher) {
	timer := time.NewTimer(ds.cfg.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addTree(w.fsw, event.Name)
				}
			}
			ds.log.Debug("content changed", logging.String("file", event.Name), logging.String("op", event.Op.String()))
			timer.Reset(ds.cfg.Debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			ds.log.Warn("watch error", logging.Err(err))
		case <-timer.C:
			_ = ds.Reload()
		}
	}
}

// relevant filters out permission changes and editor scratch files.
func relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	return !strings.HasPrefix(base, ".") && !strings.HasSuffix(base, "~") && !strings.HasSuffix(base, ".swp")
}

func addTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
