// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the ragdemon TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ragdemon/ragdemon-tui/internal/model"
	"github.com/ragdemon/ragdemon-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE RENDERING
// =============================================================================

// RenderOptions controls message rendering.
type RenderOptions struct {
	// Width is the total line width available.
	Width int

	// ShowTimestamps renders a timestamp line under each bubble.
	ShowTimestamps bool

	// SpinnerFrame is the current spinner frame for pending placeholders.
	SpinnerFrame string

	// RenderMarkdown renders assistant markdown. Nil renders plain text.
	RenderMarkdown func(string) (string, error)
}

// RenderMessage renders one message as a bubble. User messages align
// right, assistant bubbles left, mirroring a familiar chat layout.
func RenderMessage(theme *styles.Theme, m *model.Message, opts RenderOptions) string {
	width := opts.Width
	if width < 20 {
		width = 20
	}
	bubbleWidth := width * 3 / 4

	var bubble string
	switch {
	case m.IsPending():
		bubble = theme.AssistantBubble.MaxWidth(bubbleWidth).Render(
			opts.SpinnerFrame + " " + theme.PendingText.Render("Thinking..."))

	case m.IsError():
		body := m.ErrorDetail
		hint := theme.RetryHint.Render("ctrl+r to retry")
		bubble = theme.ErrorBubble.MaxWidth(bubbleWidth).Render(body + "\n" + hint)

	case m.Role == model.RoleUser:
		bubble = theme.UserBubble.MaxWidth(bubbleWidth).Render(m.Content)

	default:
		body := m.Content
		if opts.RenderMarkdown != nil {
			if rendered, err := opts.RenderMarkdown(body); err == nil {
				body = strings.TrimRight(rendered, "\n")
			}
		}
		if refs := m.References(); len(refs) > 0 {
			body += "\n" + renderReferences(theme, refs)
		}
		bubble = theme.AssistantBubble.MaxWidth(bubbleWidth).Render(body)
	}

	if opts.ShowTimestamps && !m.CreatedAt.IsZero() && !m.IsPending() {
		bubble += "\n" + theme.Timestamp.Render(m.CreatedAt.Format("3:04 PM"))
	}

	if m.Role == model.RoleUser {
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble)
	}
	return bubble
}

// renderReferences renders numbered source footnotes.
func renderReferences(theme *styles.Theme, refs []model.Reference) string {
	var sb strings.Builder
	for i, r := range refs {
		if i > 0 {
			sb.WriteString("\n")
		}
		label := r.Text
		if label == "" {
			label = r.URL
		}
		sb.WriteString(fmt.Sprintf("[%d] %s", i+1, theme.Reference.Render(label)))
		if r.URL != "" && r.Text != "" {
			sb.WriteString(theme.Timestamp.Render(" " + r.URL))
		}
	}
	return sb.String()
}

// RenderEmptyState renders the greeting shown before the first message.
func RenderEmptyState(theme *styles.Theme, width int) string {
	msg := theme.PanelEmpty.Render("Ask anything about your programs and classes.")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, msg)
}
