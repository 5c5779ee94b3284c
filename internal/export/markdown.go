// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes conversation transcripts to disk on request.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/ragdemon/ragdemon-tui/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter renders a transcript as Markdown with reference
// footnotes under each assistant reply.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// FileExtension returns ".md".
func (e *MarkdownExporter) FileExtension() string { return ".md" }

// Export converts a conversation to Markdown.
func (e *MarkdownExporter) Export(conv *model.Conversation) ([]byte, error) {
	if conv == nil {
		return nil, fmt.Errorf("conversation is nil")
	}
	if conv.Len() == 0 {
		return nil, fmt.Errorf("conversation has no messages")
	}

	var sb strings.Builder

	title := "Conversation"
	if first := firstUserMessage(conv); first != nil {
		title = first.Preview(80)
	}
	sb.WriteString("# " + title + "\n\n")
	if conv.SessionID != "" {
		sb.WriteString(fmt.Sprintf("Session `%s`, exported %s.\n\n", conv.SessionID, time.Now().Format("2006-01-02 15:04")))
	}

	for _, m := range conv.History() {
		if m.IsPending() {
			continue
		}
		switch m.Role {
		case model.RoleUser:
			sb.WriteString("## You\n\n")
		default:
			sb.WriteString("## Assistant\n\n")
		}
		if e.options.IncludeTimestamps && !m.CreatedAt.IsZero() {
			sb.WriteString("*" + m.CreatedAt.Format("Jan 2, 2006 3:04 PM") + "*\n\n")
		}

		if m.IsError() {
			sb.WriteString("> " + m.ErrorDetail + "\n\n")
			continue
		}
		sb.WriteString(m.Content + "\n\n")

		if refs := m.References(); len(refs) > 0 {
			sb.WriteString("**Sources**\n\n")
			for i, r := range refs {
				sb.WriteString(fmt.Sprintf("%d. [%s](%s)\n", i+1, r.Text, r.URL))
			}
			sb.WriteString("\n")
		}
	}

	return []byte(sb.String()), nil
}

func firstUserMessage(conv *model.Conversation) *model.Message {
	for _, m := range conv.History() {
		if m.Role == model.RoleUser {
			return m
		}
	}
	return nil
}
