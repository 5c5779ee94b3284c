// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the ragdemon TUI.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ragdemon/ragdemon-tui/internal/ui/styles"
	"github.com/ragdemon/ragdemon-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar: app name, backend engine, and session state.
type Header struct {
	Title     string
	Engine    string
	SessionID string
	ReadOnly  bool
	Width     int

	theme *styles.Theme
}

// NewHeader creates a Header with defaults.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "ragdemon",
		Width: 80,
		theme: theme,
	}
}

// SetTheme swaps the theme (dark/light toggle).
func (h *Header) SetTheme(theme *styles.Theme) {
	h.theme = theme
}

// SetWidth updates the available width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// View renders the header.
func (h *Header) View() string {
	width := h.Width
	if width < 20 {
		width = 20
	}

	title := h.theme.HeaderTitle.Render(h.Title)
	badge := h.theme.HeaderBadge.Render(h.Engine)

	meta := "new conversation"
	if h.SessionID != "" {
		meta = "session " + util.TruncateWidth(h.SessionID, 16)
	}
	if h.ReadOnly {
		meta += " (read-only)"
	}
	metaStr := h.theme.HeaderMeta.Render(meta)

	left := lipgloss.JoinHorizontal(lipgloss.Center, title, " ", badge)
	gap := width - lipgloss.Width(left) - lipgloss.Width(metaStr) - 2
	if gap < 1 {
		gap = 1
	}
	line := left + util.PadRight("", gap) + metaStr

	return h.theme.Header.Width(width).Render(line)
}
