// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ragdemon/ragdemon-tui/internal/util"
)

// =============================================================================
// ROLES AND DELIVERY STATUS
// =============================================================================

// Role identifies who authored a message.
type Role string

const (
	// RoleUser is a message typed by the user.
	RoleUser Role = "user"
	// RoleAssistant is a reply produced by the backend.
	RoleAssistant Role = "assistant"
)

// Status is the transient delivery state of a message. Only assistant
// messages pass through StatusPending; user messages are created already
// delivered.
type Status string

const (
	// StatusPending marks an assistant placeholder awaiting its reply.
	StatusPending Status = "pending"
	// StatusSuccess marks a message whose content is final.
	StatusSuccess Status = "success"
	// StatusError marks a placeholder whose request failed.
	StatusError Status = "error"
)

// =============================================================================
// RESPONSE PARTS
// =============================================================================

// Reference is a source citation attached to a response part.
type Reference struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// ResponsePart is a segment of an assistant reply with its citations.
type ResponsePart struct {
	Text       string      `json:"text"`
	References []Reference `json:"references,omitempty"`
}

// =============================================================================
// MESSAGE
// =============================================================================

// Message is a single chat message. Delivery state (Status, ErrorDetail) is
// client-side only and never serialized.
type Message struct {
	ID            string         `json:"id"`
	Role          Role           `json:"role"`
	Content       string         `json:"content"`
	ResponseParts []ResponsePart `json:"response_parts,omitempty"`
	SessionID     string         `json:"session_id,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`

	Status      Status `json:"-"`
	ErrorDetail string `json:"-"`
}

// NewUserMessage creates a delivered user message with a fresh id.
func NewUserMessage(content string) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   content,
		CreatedAt: time.Now(),
		Status:    StatusSuccess,
	}
}

// NewPendingAssistantMessage creates the placeholder that holds an assistant
// reply's position in the log while the request is in flight.
func NewPendingAssistantMessage() *Message {
	return &Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		CreatedAt: time.Now(),
		Status:    StatusPending,
	}
}

// IsPending reports whether the message is still awaiting its reply.
func (m *Message) IsPending() bool {
	return m.Status == StatusPending
}

// IsError reports whether the message's request failed.
func (m *Message) IsError() bool {
	return m.Status == StatusError
}

// References flattens the citations of every response part, in order.
func (m *Message) References() []Reference {
	var refs []Reference
	for _, part := range m.ResponseParts {
		refs = append(refs, part.References...)
	}
	return refs
}

// Preview returns a short single-line summary of the message content,
// truncated to a display width.
func (m *Message) Preview(maxWidth int) string {
	content := strings.TrimSpace(m.Content)
	content = strings.ReplaceAll(content, "\n", " ")
	return util.TruncateWidth(content, maxWidth)
}

// IsEmpty reports whether the message has no visible content.
func (m *Message) IsEmpty() bool {
	return strings.TrimSpace(m.Content) == ""
}
