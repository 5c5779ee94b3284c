// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the client.
package util

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "file.txt")

	if err := AtomicWriteFile(path, []byte("hello"), 0600); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q, want hello", data)
	}

	info, _ := os.Stat(path)
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %o, want 0600", info.Mode().Perm())
	}
}

func TestAtomicWriteFile_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")

	if err := AtomicWriteFile(path, []byte("old"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := AtomicWriteFile(path, []byte("new"), 0600); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("content = %q, want new", data)
	}

	// No temp files left behind.
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1", len(entries))
	}
}

// =============================================================================
// STRING TESTS
// =============================================================================

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		maxWidth int
		want     string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello..."},
		{"zero width", "hello", 0, ""},
		{"tiny width", "hello", 2, "he"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateWidth(tc.in, tc.maxWidth); got != tc.want {
				t.Errorf("TruncateWidth(%q, %d) = %q, want %q", tc.in, tc.maxWidth, got, tc.want)
			}
		})
	}
}

func TestTruncateWidth_WideRunes(t *testing.T) {
	// Each CJK rune is two columns wide.
	s := "日本語テスト"
	got := TruncateWidth(s, 7)
	if StringWidth(got) > 7 {
		t.Errorf("TruncateWidth produced width %d > 7: %q", StringWidth(got), got)
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 5); got != "ab   " {
		t.Errorf("PadRight = %q, want %q", got, "ab   ")
	}
	if got := PadRight("abcdef", 4); StringWidth(got) != 4 {
		t.Errorf("PadRight should truncate to the target width, got %q", got)
	}
}
