// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the ragdemon TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ragdemon/ragdemon-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// KeyHint is one "key: action" pair in the shortcut strip.
type KeyHint struct {
	Key  string
	Desc string
}

// StatusBar is the bottom bar: app state on the left, shortcuts on the
// right.
type StatusBar struct {
	State string
	Error string
	Hints []KeyHint
	Width int

	theme *styles.Theme
}

// NewStatusBar creates a StatusBar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		State: "Ready",
		Width: 80,
		theme: theme,
	}
}

// SetTheme swaps the theme.
func (s *StatusBar) SetTheme(theme *styles.Theme) {
	s.theme = theme
}

// SetWidth updates the available width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// View renders the status bar.
func (s *StatusBar) View() string {
	width := s.Width
	if width < 20 {
		width = 20
	}

	left := s.State
	if s.Error != "" {
		left = s.theme.StatusError.Render(s.Error)
	}

	var hints []string
	for _, h := range s.Hints {
		hints = append(hints, s.theme.ShortcutKey.Render(h.Key)+s.theme.ShortcutDesc.Render(" "+h.Desc))
	}
	right := strings.Join(hints, s.theme.ShortcutDesc.Render("  "))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return s.theme.StatusBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
