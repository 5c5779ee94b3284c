// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and persists client configuration.
package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config file whenever it changes and hands the result
// to onReload. Invalid intermediate states (editors write in multiple
// steps) are skipped. The returned stop function ends the watch.
func Watch(path string, onReload func(*Config)) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory: most editors replace the file on save, which
	// drops a watch set on the file itself.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				cfg, err := LoadFrom(path)
				if err != nil {
					continue
				}
				onReload(cfg)
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		close(done)
		watcher.Close()
	}, nil
}
