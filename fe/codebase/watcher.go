package codebase

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"
)

// Watcher keeps a codebase in step with its directory tree. onChange is
// called from the watcher's goroutine after a file is checked, and with a
// nil File after a file disappears.
type Watcher struct {
	codebase *Codebase
	onChange func(path string, f *File)
	fsw      *fsnotify.Watcher
	log      commonlog.Logger

	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewWatcher(c *Codebase, onChange func(path string, f *File)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if onChange == nil {
		onChange = func(string, *File) {}
	}
	return &Watcher{
		codebase: c,
		onChange: onChange,
		fsw:      fsw,
		log:      commonlog.GetLogger("fepc.watch"),
	}, nil
}

// Start checks the files already present and begins watching.
func (w *Watcher) Start() error {
	if err := w.addTree(w.codebase.RootDir()); err != nil {
		return err
	}
	w.wg.Add(1)
	go w.run()
	return nil
}

func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if err := w.fsw.Add(path); err != nil {
				return err
			}
			w.log.Debugf("watching %s", path)
			return nil
		}
		if IsSource(path) {
			w.scan(path)
		}
		return nil
	})
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Errorf("watch: %s", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	switch {
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		if IsSource(ev.Name) && w.codebase.GetFile(ev.Name) != nil {
			w.codebase.RemoveFile(ev.Name)
			w.log.Infof("removed %s", ev.Name)
			w.onChange(ev.Name, nil)
		}
	case ev.Op&fsnotify.Create != 0:
		if isDir(ev.Name) {
			if strings.HasPrefix(filepath.Base(ev.Name), ".") {
				return
			}
			if err := w.addTree(ev.Name); err != nil {
				w.log.Warningf("watching %s: %s", ev.Name, err)
			}
			return
		}
		if IsSource(ev.Name) {
			w.scan(ev.Name)
		}
	case ev.Op&fsnotify.Write != 0:
		if IsSource(ev.Name) {
			w.scan(ev.Name)
		}
	}
}

func (w *Watcher) scan(path string) {
	f, err := w.codebase.ScanFile(path)
	if err != nil {
		w.log.Warningf("reading %s: %s", path, err)
		return
	}
	w.log.Debugf("checked %s: %d diagnostics", path, len(f.Report.Diagnostics))
	w.onChange(path, f)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
