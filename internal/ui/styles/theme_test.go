// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the ragdemon TUI.
package styles

import "testing"

func TestNewTheme(t *testing.T) {
	dark := NewTheme("dark")
	if !dark.IsDark() {
		t.Error("NewTheme(dark) should be dark")
	}

	light := NewTheme("light")
	if light.IsDark() {
		t.Error("NewTheme(light) should be light")
	}

	// Unknown modes fall back to dark.
	if got := NewTheme("mauve"); got.Mode != "dark" {
		t.Errorf("NewTheme(mauve).Mode = %q, want dark", got.Mode)
	}
}

func TestTheme_Toggle(t *testing.T) {
	dark := NewTheme("dark")
	light := dark.Toggle()
	if light.Mode != "light" {
		t.Errorf("Toggle() from dark = %q, want light", light.Mode)
	}
	if light.Toggle().Mode != "dark" {
		t.Error("double toggle should return to dark")
	}
	if dark.Palette.Surface == light.Palette.Surface {
		t.Error("variants should use different palettes")
	}
}
