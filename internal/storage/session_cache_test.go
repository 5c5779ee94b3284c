// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage handles the small amount of local state the client keeps.
package storage

import (
	"testing"
)

func TestSessionCache_RoundTrip(t *testing.T) {
	cache := &SessionCache{BaseDir: t.TempDir()}

	// Empty cache loads as "".
	got, err := cache.Load()
	if err != nil {
		t.Fatalf("Load() on empty cache error = %v", err)
	}
	if got != "" {
		t.Errorf("Load() = %q, want empty", got)
	}

	if err := cache.Store("abc123"); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	got, err = cache.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != "abc123" {
		t.Errorf("Load() = %q, want abc123", got)
	}
}

func TestSessionCache_StoreTrimsWhitespace(t *testing.T) {
	cache := &SessionCache{BaseDir: t.TempDir()}
	if err := cache.Store("  abc123  "); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	got, _ := cache.Load()
	if got != "abc123" {
		t.Errorf("Load() = %q, want trimmed id", got)
	}
}

func TestSessionCache_Clear(t *testing.T) {
	cache := &SessionCache{BaseDir: t.TempDir()}

	// Clearing an empty cache is fine.
	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear() on empty cache error = %v", err)
	}

	if err := cache.Store("abc123"); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	got, _ := cache.Load()
	if got != "" {
		t.Errorf("Load() after Clear = %q, want empty", got)
	}
}

func TestSessionCache_StoreEmptyClears(t *testing.T) {
	cache := &SessionCache{BaseDir: t.TempDir()}
	if err := cache.Store("abc123"); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if err := cache.Store(""); err != nil {
		t.Fatalf("Store(empty) error = %v", err)
	}
	got, _ := cache.Load()
	if got != "" {
		t.Errorf("Load() = %q, want empty after storing empty id", got)
	}
}
