// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes conversation transcripts to disk on request.
package export

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/ragdemon/ragdemon-tui/internal/model"
)

func sampleConversation() *model.Conversation {
	conv := model.NewConversation()
	conv.SessionID = "abc123"
	conv.Append(&model.Message{ID: "m1", Role: model.RoleUser, Content: "List GRIT classes", Status: model.StatusSuccess})
	conv.Append(&model.Message{
		ID: "m2", Role: model.RoleAssistant,
		Content: "GRIT Cardio, GRIT Strength, GRIT Plyo",
		Status:  model.StatusSuccess,
		ResponseParts: []model.ResponsePart{{
			Text:       "GRIT Cardio, GRIT Strength, GRIT Plyo",
			References: []model.Reference{{Text: "GRIT guide", URL: "https://example.com/grit"}},
		}},
	})
	return conv
}

// =============================================================================
// MARKDOWN TESTS
// =============================================================================

func TestMarkdownExporter(t *testing.T) {
	data, err := NewMarkdownExporter(nil).Export(sampleConversation())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := string(data)

	for _, want := range []string{
		"# List GRIT classes",
		"## You",
		"## Assistant",
		"GRIT Cardio, GRIT Strength, GRIT Plyo",
		"[GRIT guide](https://example.com/grit)",
		"abc123",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestMarkdownExporter_SkipsPendingAndRendersErrors(t *testing.T) {
	conv := sampleConversation()
	conv.Append(&model.Message{ID: "m3", Role: model.RoleAssistant, Status: model.StatusPending})
	conv.Append(&model.Message{ID: "m4", Role: model.RoleAssistant, Status: model.StatusError, ErrorDetail: "it broke"})

	data, err := NewMarkdownExporter(nil).Export(conv)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "> it broke") {
		t.Error("error messages should render as blockquotes")
	}
}

func TestMarkdownExporter_EmptyConversation(t *testing.T) {
	if _, err := NewMarkdownExporter(nil).Export(model.NewConversation()); err == nil {
		t.Error("empty conversation should not export")
	}
}

// =============================================================================
// JSON TESTS
// =============================================================================

func TestJSONExporter(t *testing.T) {
	data, err := NewJSONExporter().Export(sampleConversation())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var doc struct {
		SessionID string           `json:"session_id"`
		Messages  []*model.Message `json:"messages"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("exported JSON does not parse: %v", err)
	}
	if doc.SessionID != "abc123" {
		t.Errorf("SessionID = %q", doc.SessionID)
	}
	if len(doc.Messages) != 2 {
		t.Errorf("got %d messages, want 2", len(doc.Messages))
	}
}

// =============================================================================
// FORMAT SELECTION TESTS
// =============================================================================

func TestForFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantExt string
		wantErr bool
	}{
		{"markdown", ".md", false},
		{"md", ".md", false},
		{"json", ".json", false},
		{"", ".md", false},
		{"pdf", "", true},
	}

	for _, tc := range tests {
		t.Run("format "+tc.format, func(t *testing.T) {
			e, err := ForFormat(tc.format, nil)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ForFormat(%q) should fail", tc.format)
				}
				return
			}
			if err != nil {
				t.Fatalf("ForFormat(%q) error = %v", tc.format, err)
			}
			if e.FileExtension() != tc.wantExt {
				t.Errorf("FileExtension() = %q, want %q", e.FileExtension(), tc.wantExt)
			}
		})
	}
}

func TestWriteToFile_JSONFormat(t *testing.T) {
	dir := t.TempDir()
	e, err := ForFormat("json", nil)
	if err != nil {
		t.Fatalf("ForFormat() error = %v", err)
	}
	path, err := WriteToFile(e, sampleConversation(), &Options{OutputDir: dir})
	if err != nil {
		t.Fatalf("WriteToFile() error = %v", err)
	}
	if !strings.HasSuffix(path, ".json") {
		t.Errorf("unexpected path: %s", path)
	}
}

// =============================================================================
// FILE OUTPUT TESTS
// =============================================================================

func TestWriteToFile(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteToFile(NewMarkdownExporter(nil), sampleConversation(), &Options{OutputDir: dir, IncludeTimestamps: true})
	if err != nil {
		t.Fatalf("WriteToFile() error = %v", err)
	}
	if !strings.HasPrefix(path, dir) || !strings.HasSuffix(path, ".md") {
		t.Errorf("unexpected path: %s", path)
	}
	if !strings.Contains(path, "abc123") {
		t.Errorf("file name should carry the session id: %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("exported file missing: %v", err)
	}
}
