// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"time"
)

// =============================================================================
// CONVERSATION (MESSAGE STORE)
// =============================================================================

// Conversation is an ordered, append-only message log. Appends are
// idempotent by message id and updates happen in place, so the rendered
// order of a transcript never changes once a message is admitted.
//
// Conversation is not safe for concurrent use; all mutation is expected to
// happen on the UI event loop.
type Conversation struct {
	// SessionID is assigned by the backend on the first successful reply
	// and is empty for a brand-new conversation.
	SessionID string `json:"session_id,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Messages  []*Message `json:"messages"`

	// ReadOnly is set on conversations rehydrated from history. The first
	// new send clears it.
	ReadOnly bool `json:"-"`

	version  uint64
	index    map[string]*Message
	onChange func()
}

// NewConversation creates an empty, writable conversation.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		CreatedAt: now,
		UpdatedAt: now,
		index:     make(map[string]*Message),
	}
}

// HydrateConversation builds a read-only conversation from stored messages.
// The slice is assumed chronological; duplicate ids are dropped.
func HydrateConversation(sessionID string, msgs []*Message) *Conversation {
	c := NewConversation()
	c.SessionID = sessionID
	for _, m := range msgs {
		if m.Status == "" {
			m.Status = StatusSuccess
		}
		c.append(m)
	}
	if len(c.Messages) > 0 {
		c.CreatedAt = c.Messages[0].CreatedAt
		c.UpdatedAt = c.Messages[len(c.Messages)-1].CreatedAt
	}
	c.ReadOnly = true
	return c
}

// OnChange registers a callback fired after every mutation. Observers use
// it to re-render instead of polling.
func (c *Conversation) OnChange(fn func()) {
	c.onChange = fn
}

// Version returns a counter bumped by every mutation.
func (c *Conversation) Version() uint64 {
	return c.version
}

// Len returns the number of messages in the log.
func (c *Conversation) Len() int {
	return len(c.Messages)
}

// Append adds a message to the tail of the log. Appending an id that is
// already present is a no-op; the return value reports whether the log
// changed.
func (c *Conversation) Append(m *Message) bool {
	if m == nil || m.ID == "" {
		return false
	}
	if _, exists := c.index[m.ID]; exists {
		return false
	}
	c.append(m)
	c.touch()
	return true
}

func (c *Conversation) append(m *Message) {
	if c.index == nil {
		c.index = make(map[string]*Message)
	}
	if _, exists := c.index[m.ID]; exists {
		return
	}
	c.Messages = append(c.Messages, m)
	c.index[m.ID] = m
}

// Patch describes an in-place update to a message. Nil fields are left
// untouched.
type Patch struct {
	Content       *string
	ResponseParts []ResponsePart
	SessionID     *string
	CreatedAt     *time.Time
	Status        *Status
	ErrorDetail   *string
}

// UpdateByID applies a patch to the message with the given id, preserving
// its position. Unknown ids are a no-op returning false.
func (c *Conversation) UpdateByID(id string, p Patch) bool {
	m, ok := c.index[id]
	if !ok {
		return false
	}
	if p.Content != nil {
		m.Content = *p.Content
	}
	if p.ResponseParts != nil {
		m.ResponseParts = p.ResponseParts
	}
	if p.SessionID != nil {
		m.SessionID = *p.SessionID
	}
	if p.CreatedAt != nil {
		m.CreatedAt = *p.CreatedAt
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
	if p.ErrorDetail != nil {
		m.ErrorDetail = *p.ErrorDetail
	}
	c.touch()
	return true
}

// MessageByID returns the message with the given id, or nil.
func (c *Conversation) MessageByID(id string) *Message {
	return c.index[id]
}

// LastUserMessage returns the most recent user-authored message, or nil.
func (c *Conversation) LastUserMessage() *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleUser {
			return c.Messages[i]
		}
	}
	return nil
}

// LastAssistantMessage returns the most recent assistant message, or nil.
func (c *Conversation) LastAssistantMessage() *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleAssistant {
			return c.Messages[i]
		}
	}
	return nil
}

// HasPending reports whether any assistant placeholder is still in flight.
func (c *Conversation) HasPending() bool {
	for _, m := range c.Messages {
		if m.IsPending() {
			return true
		}
	}
	return false
}

// History returns the messages in chronological order. The slice header is
// a copy; the messages are shared.
func (c *Conversation) History() []*Message {
	out := make([]*Message, len(c.Messages))
	copy(out, c.Messages)
	return out
}

// SetSessionID records the backend-assigned session id.
func (c *Conversation) SetSessionID(id string) {
	if id == "" || c.SessionID == id {
		return
	}
	c.SessionID = id
	c.touch()
}

// SetReadOnly flips the hydrated read-only flag.
func (c *Conversation) SetReadOnly(ro bool) {
	if c.ReadOnly == ro {
		return
	}
	c.ReadOnly = ro
	c.touch()
}

func (c *Conversation) touch() {
	c.UpdatedAt = time.Now()
	c.version++
	if c.onChange != nil {
		c.onChange()
	}
}
