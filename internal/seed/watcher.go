// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package seed

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// SEED FILE WATCHER
// =============================================================================

// Watcher reloads the seed payload when the file changes on disk. The parent
// directory is watched rather than the file itself so editors that replace
// the file (write temp, rename over) are still observed.
type Watcher struct {
	path     string
	debounce time.Duration
	onReload func(*Payload)

	watcher *fsnotify.Watcher
	mu      sync.Mutex
	lastHit time.Time
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewWatcher creates a watcher for the given seed file. onReload is called
// from the watcher goroutine with each successfully parsed payload.
func NewWatcher(path string, debounce time.Duration, onReload func(*Payload)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		onReload: onReload,
		watcher:  fw,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Watch starts watching for file changes.
func (w *Watcher) Watch() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	go w.processEvents()
	go w.processPending()

	return nil
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.cancel()
	return w.watcher.Close()
}

// processEvents marks the file dirty on relevant events.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create {
				w.mu.Lock()
				w.lastHit = time.Now()
				w.mu.Unlock()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[seed] watch error: %v", err)
		}
	}
}

// processPending fires the reload callback once the file has been quiet for
// the debounce window.
func (w *Watcher) processPending() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			w.mu.Lock()
			fire := !w.lastHit.IsZero() && time.Since(w.lastHit) >= w.debounce
			if fire {
				w.lastHit = time.Time{}
			}
			w.mu.Unlock()

			if !fire {
				continue
			}

			payload, err := Load(w.path)
			if err != nil {
				log.Printf("[seed] reload failed: %v", err)
				continue
			}
			w.onReload(payload)
		}
	}
}
