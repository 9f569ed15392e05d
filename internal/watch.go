package internal

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	tt "github.com/jslang/jslin/internal/types"
)

// Watcher relints files as they change on disk.
type Watcher struct {
	engine    *Engine
	watcher   *fsnotify.Watcher
	watchDirs []string

	mu       sync.Mutex
	watching bool
	done     chan struct{}
}

func NewWatcher(engine *Engine, dirs []string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating file watcher: %w", err)
	}
	return &Watcher{
		engine:    engine,
		watcher:   fsWatcher,
		watchDirs: dirs,
	}, nil
}

func (w *Watcher) StartWatching() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watching {
		return fmt.Errorf("already watching")
	}

	for _, dir := range w.watchDirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return w.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	w.watching = true
	w.done = make(chan struct{})
	go w.watchLoop(w.done)
	return nil
}

func (w *Watcher) StopWatching() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.watching {
		return nil
	}

	w.watching = false
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) watchLoop(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("error: %v", err)
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write == fsnotify.Write {
		// process file when detect change
		if hasScriptExtension(event.Name) {
			// wait for a while after file change to consider multiple changes as one
			time.Sleep(100 * time.Millisecond)
			issues, err := w.engine.Run(event.Name)
			if err != nil {
				log.Printf("error: %v", err)
				return
			}
			w.reportIssues(event.Name, issues)
		}
	}
}

func hasScriptExtension(name string) bool {
	return strings.HasSuffix(name, ".js") ||
		strings.HasSuffix(name, ".mjs") ||
		strings.HasSuffix(name, ".cjs")
}

func (w *Watcher) reportIssues(filename string, issues []tt.Issue) {
	if len(issues) == 0 {
		log.Printf("no issues found in %s", filename)
		return
	}

	log.Printf("found %d issues in %s", len(issues), filename)
	for _, issue := range issues {
		log.Printf("- %s: %s", issue.Rule, issue.Message)
	}
}
