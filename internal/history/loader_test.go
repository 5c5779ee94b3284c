// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history lists, loads, and deletes stored conversations.
package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ragdemon/ragdemon-tui/internal/model"
	"github.com/ragdemon/ragdemon-tui/internal/rag"
)

// =============================================================================
// TEST DOUBLES
// =============================================================================

type fakeBackend struct {
	conversations []rag.ConversationSummary
	messages      map[string][]rag.StoredMessage
	deleted       []string
	err           error
}

func (f *fakeBackend) ListConversations(ctx context.Context, userID string) ([]rag.ConversationSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.conversations, nil
}

func (f *fakeBackend) ListMessages(ctx context.Context, userID, sessionID string) ([]rag.StoredMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.messages[sessionID], nil
}

func (f *fakeBackend) DeleteConversation(ctx context.Context, userID, sessionID string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, sessionID)
	return nil
}

// =============================================================================
// LIST TESTS
// =============================================================================

func TestLoader_List_MostRecentFirst(t *testing.T) {
	now := time.Now()
	backend := &fakeBackend{
		conversations: []rag.ConversationSummary{
			{SessionID: "oldest", LastUpdated: now.Add(-2 * time.Hour)},
			{SessionID: "newest", LastUpdated: now},
			{SessionID: "middle", LastUpdated: now.Add(-time.Hour)},
		},
	}
	loader := NewLoader(backend, "user-1", nil)

	convs, err := loader.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	wantOrder := []string{"newest", "middle", "oldest"}
	for i, want := range wantOrder {
		if convs[i].SessionID != want {
			t.Errorf("convs[%d] = %s, want %s", i, convs[i].SessionID, want)
		}
	}
}

func TestLoader_List_EmptyHistory(t *testing.T) {
	loader := NewLoader(&fakeBackend{conversations: []rag.ConversationSummary{}}, "user-1", nil)
	convs, err := loader.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(convs) != 0 {
		t.Errorf("got %d conversations, want 0", len(convs))
	}
}

// =============================================================================
// LOAD TESTS
// =============================================================================

func TestLoader_Load_ChronologicalOrder(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	backend := &fakeBackend{
		messages: map[string][]rag.StoredMessage{
			"abc123": {
				// Records arrive out of order.
				{SessionID: "abc123", MessageID: "m3", Role: "user", Content: "q2", CreatedAt: base.Add(2 * time.Minute)},
				{SessionID: "abc123", MessageID: "m1", Role: "user", Content: "q1", CreatedAt: base},
				{SessionID: "abc123", MessageID: "m2", Role: "assistant", Content: "a1", CreatedAt: base.Add(time.Minute)},
			},
		},
	}
	loader := NewLoader(backend, "user-1", nil)

	conv, err := loader.Load(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !conv.ReadOnly {
		t.Error("loaded conversation should be read-only")
	}
	if conv.SessionID != "abc123" {
		t.Errorf("SessionID = %q", conv.SessionID)
	}
	wantOrder := []string{"m1", "m2", "m3"}
	for i, want := range wantOrder {
		if conv.Messages[i].ID != want {
			t.Errorf("Messages[%d].ID = %s, want %s", i, conv.Messages[i].ID, want)
		}
	}
	if conv.Messages[1].Role != model.RoleAssistant {
		t.Error("roles should survive the round trip")
	}
}

func TestLoader_Load_RecoversTimestampFromSortKey(t *testing.T) {
	early := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	late := time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)
	backend := &fakeBackend{
		messages: map[string][]rag.StoredMessage{
			"s1": {
				{MessageID: "m-late", Role: "assistant", Content: "a",
					SortKey: "MESSAGE#" + late.Format(time.RFC3339Nano) + "#m-late"},
				{MessageID: "m-early", Role: "user", Content: "q",
					SortKey: "MESSAGE#" + early.Format(time.RFC3339Nano) + "#m-early"},
			},
		},
	}
	loader := NewLoader(backend, "user-1", nil)

	conv, err := loader.Load(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if conv.Messages[0].ID != "m-early" || conv.Messages[1].ID != "m-late" {
		t.Error("sort-key timestamps should order the transcript")
	}
	if !conv.Messages[0].CreatedAt.Equal(early) {
		t.Errorf("CreatedAt = %v, want %v", conv.Messages[0].CreatedAt, early)
	}
}

func TestLoader_Load_IDFromSortKey(t *testing.T) {
	ts := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	backend := &fakeBackend{
		messages: map[string][]rag.StoredMessage{
			"s1": {
				{Role: "user", Content: "q", SortKey: "MESSAGE#" + ts.Format(time.RFC3339Nano) + "#legacy-id"},
			},
		},
	}
	loader := NewLoader(backend, "user-1", nil)

	conv, err := loader.Load(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if conv.MessageByID("legacy-id") == nil {
		t.Error("record id should be recovered from the sort key")
	}
}

func TestLoader_Load_RoundTripWithResponseParts(t *testing.T) {
	backend := &fakeBackend{
		messages: map[string][]rag.StoredMessage{
			"s1": {
				{MessageID: "m1", Role: "user", Content: "List GRIT classes", CreatedAt: time.Now().Add(-time.Minute)},
				{MessageID: "m2", Role: "assistant", Content: "GRIT Cardio, GRIT Strength, GRIT Plyo",
					CreatedAt: time.Now(),
					ResponseParts: []rag.ResponsePart{{
						Text:       "GRIT Cardio, GRIT Strength, GRIT Plyo",
						References: []rag.Reference{{Text: "guide", URL: "https://example.com"}},
					}}},
			},
		},
	}
	loader := NewLoader(backend, "user-1", nil)

	conv, err := loader.Load(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	refs := conv.MessageByID("m2").References()
	if len(refs) != 1 || refs[0].URL != "https://example.com" {
		t.Errorf("references lost in round trip: %+v", refs)
	}
}

// =============================================================================
// DELETE TESTS
// =============================================================================

func TestLoader_Delete(t *testing.T) {
	backend := &fakeBackend{}
	loader := NewLoader(backend, "user-1", nil)

	if err := loader.Delete(context.Background(), "s1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(backend.deleted) != 1 || backend.deleted[0] != "s1" {
		t.Errorf("backend saw deletes %v, want [s1]", backend.deleted)
	}
}

func TestLoader_Delete_PropagatesFailure(t *testing.T) {
	backend := &fakeBackend{err: rag.ErrUnreachable}
	loader := NewLoader(backend, "user-1", nil)

	err := loader.Delete(context.Background(), "s1")
	if err == nil {
		t.Fatal("Delete() should propagate the failure so the UI can restore the entry")
	}
	if !errors.Is(err, rag.ErrUnreachable) {
		t.Errorf("err = %v, want wrapped ErrUnreachable", err)
	}
}
