// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes conversation transcripts to disk on request.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/ragdemon/ragdemon-tui/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter renders a transcript as indented JSON.
type JSONExporter struct{}

// NewJSONExporter creates a JSON exporter.
func NewJSONExporter() *JSONExporter { return &JSONExporter{} }

// FileExtension returns ".json".
func (e *JSONExporter) FileExtension() string { return ".json" }

// Export converts a conversation to JSON. Pending placeholders are
// skipped; they have no content worth keeping.
func (e *JSONExporter) Export(conv *model.Conversation) ([]byte, error) {
	if conv == nil {
		return nil, fmt.Errorf("conversation is nil")
	}
	if conv.Len() == 0 {
		return nil, fmt.Errorf("conversation has no messages")
	}

	type document struct {
		SessionID string           `json:"session_id,omitempty"`
		Messages  []*model.Message `json:"messages"`
	}

	doc := document{SessionID: conv.SessionID}
	for _, m := range conv.History() {
		if m.IsPending() {
			continue
		}
		doc.Messages = append(doc.Messages, m)
	}

	return json.MarshalIndent(doc, "", "  ")
}
