// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package snippet

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// SOURCE INTERFACE
// =============================================================================

// Source supplies the raw templates setting. Raw is called on every
// matching attempt and must be cheap.
type Source interface {
	Raw() string
}

// StaticSource is a fixed setting value.
type StaticSource string

// Raw returns the setting text.
func (s StaticSource) Raw() string {
	return string(s)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() string

// Raw calls f.
func (f SourceFunc) Raw() string {
	return f()
}

// =============================================================================
// FILE SOURCE
// =============================================================================

// FileSource serves the contents of a templates file. The contents are kept
// in memory and refreshed when the file changes on disk, so keystrokes never
// touch the filesystem.
type FileSource struct {
	path string

	mu      sync.RWMutex
	content string

	watcher *fsnotify.Watcher
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewFileSource reads path once. A missing file is not an error; the source
// serves an empty setting until the file appears (when watching).
func NewFileSource(path string) (*FileSource, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve templates path: %w", err)
	}
	fs := &FileSource{path: abs}
	if err := fs.Reload(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return fs, nil
}

// Path returns the absolute file path.
func (fs *FileSource) Path() string {
	return fs.path
}

// Raw returns the last loaded contents.
func (fs *FileSource) Raw() string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.content
}

// Reload re-reads the file.
func (fs *FileSource) Reload() error {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			fs.set("")
		}
		return err
	}
	fs.set(string(data))
	return nil
}

func (fs *FileSource) set(content string) {
	fs.mu.Lock()
	fs.content = content
	fs.mu.Unlock()
}

// Watch starts refreshing the contents on change. The parent directory is
// watched so that editors which replace the file by rename are handled.
func (fs *FileSource) Watch() error {
	if fs.watcher != nil {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create templates watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(fs.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(fs.path), err)
	}

	fs.watcher = watcher
	fs.ctx, fs.cancel = context.WithCancel(context.Background())
	fs.done = make(chan struct{})
	go fs.processEvents()
	return nil
}

// Close stops watching. Safe to call more than once.
func (fs *FileSource) Close() error {
	if fs.watcher == nil {
		return nil
	}
	fs.cancel()
	err := fs.watcher.Close()
	<-fs.done
	fs.watcher = nil
	return err
}

func (fs *FileSource) processEvents() {
	defer close(fs.done)
	for {
		select {
		case <-fs.ctx.Done():
			return

		case event, ok := <-fs.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fs.path {
				continue
			}
			switch {
			case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
				if err := fs.Reload(); err != nil {
					log.Printf("TEMPLATES: reload of %s failed: %v", fs.path, err)
				}
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				fs.set("")
			}

		case err, ok := <-fs.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("TEMPLATES: watcher error: %v", err)
		}
	}
}
