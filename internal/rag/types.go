// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package rag provides the HTTP client for communicating with the RAG backend.
package rag

import (
	"strings"
	"time"
)

// =============================================================================
// COMPLETION TYPES
// =============================================================================

// ChatMessage is the user turn sent to the completion endpoint.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the completion request body. SessionID is nil for the
// first message of a conversation; the server assigns one in its reply.
type ChatRequest struct {
	SessionID *string     `json:"session_id"`
	Message   ChatMessage `json:"message"`
}

// Reference is a source citation returned with a response part.
type Reference struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// ResponsePart is a segment of the assistant reply with its citations.
type ResponsePart struct {
	Text       string      `json:"text"`
	References []Reference `json:"references,omitempty"`
}

// ChatResponse is the completion reply.
type ChatResponse struct {
	MessageID     string         `json:"message_id"`
	Content       string         `json:"content"`
	ResponseParts []ResponsePart `json:"response_parts,omitempty"`
	SessionID     string         `json:"session_id"`
	CreatedAt     time.Time      `json:"created_at"`
}

// =============================================================================
// HISTORY TYPES
// =============================================================================

// ConversationSummary describes one stored conversation.
type ConversationSummary struct {
	SessionID    string    `json:"session_id"`
	Title        string    `json:"title,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	LastUpdated  time.Time `json:"last_updated"`
	MessageCount int       `json:"message_count,omitempty"`
}

// StoredMessage is one message record from a stored conversation. Records
// carry their store sort key; older records omit created_at and the
// timestamp has to be recovered from the key.
type StoredMessage struct {
	SessionID     string         `json:"session_id"`
	MessageID     string         `json:"message_id"`
	Role          string         `json:"role"`
	Content       string         `json:"content"`
	ResponseParts []ResponsePart `json:"response_parts,omitempty"`
	CreatedAt     time.Time      `json:"created_at,omitzero"`
	SortKey       string         `json:"sort_key,omitempty"`
}

// sortKeyPrefix is the message record key prefix in the backend store.
const sortKeyPrefix = "MESSAGE#"

// ParseSortKey splits a "MESSAGE#<created_at>#<message_id>" sort key into
// its timestamp and message id. The boolean is false for malformed keys.
func ParseSortKey(key string) (time.Time, string, bool) {
	rest, ok := strings.CutPrefix(key, sortKeyPrefix)
	if !ok {
		return time.Time{}, "", false
	}
	// The timestamp itself may contain no '#', so split from the right.
	i := strings.LastIndex(rest, "#")
	if i <= 0 || i == len(rest)-1 {
		return time.Time{}, "", false
	}
	ts, err := time.Parse(time.RFC3339Nano, rest[:i])
	if err != nil {
		return time.Time{}, "", false
	}
	return ts, rest[i+1:], true
}

// Timestamp returns the record's creation time, falling back to the sort
// key when the created_at field is absent.
func (m *StoredMessage) Timestamp() (time.Time, bool) {
	if !m.CreatedAt.IsZero() {
		return m.CreatedAt, true
	}
	ts, _, ok := ParseSortKey(m.SortKey)
	return ts, ok
}

// =============================================================================
// FEEDBACK TYPES
// =============================================================================

// FeedbackRequest is the feedback endpoint payload.
type FeedbackRequest struct {
	SessionID      string    `json:"sessionId"`
	IssueType      string    `json:"issueType"`
	Severity       string    `json:"severity"`
	Notes          string    `json:"notes"`
	IncludeContext bool      `json:"includeContext"`
	Question       string    `json:"question,omitempty"`
	Answer         string    `json:"answer,omitempty"`
	SubmittedAt    time.Time `json:"submittedAt"`
}

// =============================================================================
// ERROR ENVELOPE
// =============================================================================

// apiError is the backend's error envelope.
type apiError struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}
