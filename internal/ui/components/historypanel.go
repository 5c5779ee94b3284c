// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the ragdemon TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/ragdemon/ragdemon-tui/internal/rag"
	"github.com/ragdemon/ragdemon-tui/internal/ui/styles"
	"github.com/ragdemon/ragdemon-tui/internal/util"
)

// =============================================================================
// HISTORY PANEL COMPONENT
// =============================================================================

// HistoryPanel lists stored conversations, most recent first. Deletion is
// optimistic: RemoveSelected takes the entry out immediately and InsertAt
// puts it back if the backend delete fails.
type HistoryPanel struct {
	Width   int
	Height  int
	Loading bool

	entries []rag.ConversationSummary
	cursor  int
	theme   *styles.Theme
}

// NewHistoryPanel creates an empty panel.
func NewHistoryPanel(theme *styles.Theme) *HistoryPanel {
	return &HistoryPanel{
		Width:  60,
		Height: 20,
		theme:  theme,
	}
}

// SetTheme swaps the theme.
func (p *HistoryPanel) SetTheme(theme *styles.Theme) {
	p.theme = theme
}

// SetSize updates the panel dimensions.
func (p *HistoryPanel) SetSize(width, height int) {
	p.Width = width
	p.Height = height
}

// SetEntries replaces the listing and clamps the cursor.
func (p *HistoryPanel) SetEntries(entries []rag.ConversationSummary) {
	p.entries = entries
	p.Loading = false
	p.clampCursor()
}

// Len returns the number of listed conversations.
func (p *HistoryPanel) Len() int {
	return len(p.entries)
}

// MoveUp moves the cursor one entry up.
func (p *HistoryPanel) MoveUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

// MoveDown moves the cursor one entry down.
func (p *HistoryPanel) MoveDown() {
	if p.cursor < len(p.entries)-1 {
		p.cursor++
	}
}

// Selected returns the entry under the cursor.
func (p *HistoryPanel) Selected() (rag.ConversationSummary, bool) {
	if p.cursor < 0 || p.cursor >= len(p.entries) {
		return rag.ConversationSummary{}, false
	}
	return p.entries[p.cursor], true
}

// RemoveSelected removes the entry under the cursor and returns it with
// its index, for a later InsertAt if the delete fails.
func (p *HistoryPanel) RemoveSelected() (rag.ConversationSummary, int, bool) {
	entry, ok := p.Selected()
	if !ok {
		return rag.ConversationSummary{}, 0, false
	}
	idx := p.cursor
	p.entries = append(p.entries[:idx], p.entries[idx+1:]...)
	p.clampCursor()
	return entry, idx, true
}

// InsertAt restores an entry at its old position.
func (p *HistoryPanel) InsertAt(idx int, entry rag.ConversationSummary) {
	if idx < 0 {
		idx = 0
	}
	if idx > len(p.entries) {
		idx = len(p.entries)
	}
	p.entries = append(p.entries[:idx], append([]rag.ConversationSummary{entry}, p.entries[idx:]...)...)
}

func (p *HistoryPanel) clampCursor() {
	if p.cursor >= len(p.entries) {
		p.cursor = len(p.entries) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// View renders the panel.
func (p *HistoryPanel) View() string {
	var sb strings.Builder
	sb.WriteString(p.theme.PanelTitle.Render("Conversations"))
	sb.WriteString("\n\n")

	switch {
	case p.Loading:
		sb.WriteString(p.theme.PanelEmpty.Render("Loading..."))
	case len(p.entries) == 0:
		sb.WriteString(p.theme.PanelEmpty.Render("No conversations yet."))
	default:
		innerWidth := p.Width - 8
		if innerWidth < 20 {
			innerWidth = 20
		}
		visible := p.Height - 6
		if visible < 1 {
			visible = 1
		}
		start := 0
		if p.cursor >= visible {
			start = p.cursor - visible + 1
		}
		for i := start; i < len(p.entries) && i < start+visible; i++ {
			e := p.entries[i]
			title := e.Title
			if title == "" {
				title = e.SessionID
			}
			line := fmt.Sprintf("%s  %s", e.LastUpdated.Format("Jan 02 15:04"), title)
			line = util.TruncateWidth(line, innerWidth)
			if i == p.cursor {
				sb.WriteString(p.theme.PanelItemSelected.Render(line))
			} else {
				sb.WriteString(p.theme.PanelItem.Render(line))
			}
			if i < len(p.entries)-1 {
				sb.WriteString("\n")
			}
		}
	}

	sb.WriteString("\n\n")
	sb.WriteString(p.theme.ShortcutDesc.Render("enter open | x delete | esc close"))

	return p.theme.PanelBox.Width(p.Width - 4).Render(sb.String())
}
