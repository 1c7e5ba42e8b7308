package menu

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/atomicstack/pad-overlay/internal/keys"
	"github.com/fsnotify/fsnotify"
)

const reloadSettle = 200 * time.Millisecond

// ReloadFunc receives a freshly compiled tree, or the error that prevented
// loading it. warn carries non-fatal key resolution problems.
type ReloadFunc func(tree *Tree, warn error, err error)

// Watcher reloads a menu file whenever it changes on disk.
type Watcher struct {
	fs       *fsnotify.Watcher
	path     string
	resolver keys.Resolver
	onReload ReloadFunc

	done chan struct{}
	wg   sync.WaitGroup
}

// Watch starts watching path. The parent directory is watched so editors
// that replace the file are still noticed.
func Watch(path string, resolver keys.Resolver, onReload ReloadFunc) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("menu watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("menu watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("menu watcher: %w", err)
	}
	w := &Watcher{
		fs:       fsw,
		path:     abs,
		resolver: resolver,
		onReload: onReload,
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Close stops the watcher and waits for it to exit.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fs.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()
	var settle *time.Timer
	var fire <-chan time.Time
	defer func() {
		if settle != nil {
			settle.Stop()
		}
	}()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if settle == nil {
				settle = time.NewTimer(reloadSettle)
			} else {
				settle.Reset(reloadSettle)
			}
			fire = settle.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.onReload(nil, nil, err)
		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	tree, err := Load(w.path)
	if err != nil {
		w.onReload(nil, nil, err)
		return
	}
	warn := tree.Compile(w.resolver)
	w.onReload(tree, warn, nil)
}
