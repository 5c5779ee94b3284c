// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session coordinates the conversation lifecycle.
package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ragdemon/ragdemon-tui/internal/model"
	"github.com/ragdemon/ragdemon-tui/internal/rag"
)

// Sentinel errors surfaced to the UI.
var (
	// ErrEmptyMessage means the input was empty after trimming.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrNothingToRetry means the conversation has no user message yet.
	ErrNothingToRetry = errors.New("nothing to retry")
)

// CompletionClient is the slice of the backend client the manager needs.
type CompletionClient interface {
	Chat(ctx context.Context, sessionID, content string) (*rag.ChatResponse, error)
}

// SessionSaver persists the adopted session id for the next run.
type SessionSaver interface {
	Store(sessionID string) error
}

// =============================================================================
// EXCHANGE AND RESULT
// =============================================================================

// Exchange is one submitted user turn: the appended user message, the
// pending placeholder holding the reply's position, and a snapshot of the
// session id taken at submit time so Fetch never reads shared state.
type Exchange struct {
	UserMessage *model.Message
	Placeholder *model.Message

	sessionID string
	content   string
}

// Result carries the outcome of a Fetch back onto the event loop.
type Result struct {
	PlaceholderID string
	Response      *rag.ChatResponse
	Err           error
}

// =============================================================================
// MANAGER
// =============================================================================

// ManagerConfig wires the manager's collaborators.
type ManagerConfig struct {
	// Conversation is the message store. Nil means a fresh conversation.
	Conversation *model.Conversation

	// Sessions persists the adopted session id. Nil disables persistence.
	Sessions SessionSaver

	// Timeout bounds each Fetch. Zero leaves it to the client.
	Timeout time.Duration

	// Logger for diagnostics. Nil means no logging.
	Logger *zerolog.Logger
}

// Manager owns one conversation's send/retry lifecycle. All methods except
// Fetch mutate shared state and must stay on the event loop; Fetch is pure
// and is meant to run in a goroutine.
type Manager struct {
	conv     *model.Conversation
	corr     *Correlator
	client   CompletionClient
	sessions SessionSaver
	timeout  time.Duration
	log      zerolog.Logger
}

// NewManager creates a manager around the given completion client.
func NewManager(client CompletionClient, cfg ManagerConfig) *Manager {
	conv := cfg.Conversation
	if conv == nil {
		conv = model.NewConversation()
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	return &Manager{
		conv:     conv,
		corr:     NewCorrelator(),
		client:   client,
		sessions: cfg.Sessions,
		timeout:  cfg.Timeout,
		log:      log,
	}
}

// Conversation returns the managed message store.
func (m *Manager) Conversation() *model.Conversation {
	return m.conv
}

// SessionID returns the adopted session id, "" before the first reply.
func (m *Manager) SessionID() string {
	return m.conv.SessionID
}

// Busy reports whether a completion request is in flight.
func (m *Manager) Busy() bool {
	return m.corr.HasPending()
}

// Reset swaps in a different conversation, typically one rehydrated from
// history or a fresh one for "new conversation". A pending flight on the
// old conversation is abandoned; its reply will read as stale.
func (m *Manager) Reset(conv *model.Conversation) {
	if conv == nil {
		conv = model.NewConversation()
	}
	if key := m.corr.Pending(); key != "" {
		m.corr.Abandon(key)
		m.log.Debug().Str("placeholder", key).Msg("abandoned in-flight request on reset")
	}
	m.conv = conv
}

// =============================================================================
// SEND
// =============================================================================

// SendMessage validates and appends one user turn plus its pending
// placeholder and registers the flight. The caller is expected to run
// Fetch with the returned exchange and hand the result to Apply.
//
// An empty (after trimming) message fails with ErrEmptyMessage and changes
// nothing. A send while another request is pending fails with
// ErrRequestInFlight. Sending into a hydrated conversation takes it out of
// read-only mode.
func (m *Manager) SendMessage(text string) (*Exchange, error) {
	content := strings.TrimSpace(text)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if m.corr.HasPending() {
		return nil, ErrRequestInFlight
	}

	if m.conv.ReadOnly {
		m.conv.SetReadOnly(false)
	}

	user := model.NewUserMessage(content)
	placeholder := model.NewPendingAssistantMessage()

	// Register the flight first so a refused registration never leaves
	// orphaned messages in the log.
	if err := m.corr.Begin(placeholder.ID); err != nil {
		return nil, err
	}

	m.conv.Append(user)
	m.conv.Append(placeholder)

	m.log.Debug().
		Str("user", user.ID).
		Str("placeholder", placeholder.ID).
		Msg("submitted message")

	return &Exchange{
		UserMessage: user,
		Placeholder: placeholder,
		sessionID:   m.conv.SessionID,
		content:     content,
	}, nil
}

// RetryLast re-sends the content of the most recent user message as a
// brand-new message. The failed exchange stays in the log untouched.
func (m *Manager) RetryLast() (*Exchange, error) {
	if m.corr.HasPending() {
		return nil, ErrRequestInFlight
	}
	last := m.conv.LastUserMessage()
	if last == nil {
		return nil, ErrNothingToRetry
	}
	return m.SendMessage(last.Content)
}

// Fetch performs the completion request for an exchange. It reads only the
// exchange's own snapshot, so it is safe to call from a goroutine while
// the event loop keeps mutating the conversation.
func (m *Manager) Fetch(ctx context.Context, ex *Exchange) Result {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	resp, err := m.client.Chat(ctx, ex.sessionID, ex.content)
	return Result{PlaceholderID: ex.Placeholder.ID, Response: resp, Err: err}
}

// =============================================================================
// APPLY
// =============================================================================

// Apply folds a fetch result into the conversation. Stale results, ones
// whose flight was superseded by a reset or already resolved, are
// discarded; the return value reports whether anything changed.
func (m *Manager) Apply(res Result) bool {
	if res.Err != nil {
		if !m.corr.Fail(res.PlaceholderID) {
			m.log.Debug().Str("placeholder", res.PlaceholderID).Msg("discarded stale error")
			return false
		}
		status := model.StatusError
		detail := rag.UserMessage(res.Err)
		m.conv.UpdateByID(res.PlaceholderID, model.Patch{
			Status:      &status,
			ErrorDetail: &detail,
		})
		m.log.Warn().Err(res.Err).Str("placeholder", res.PlaceholderID).Msg("completion failed")
		return true
	}

	if !m.corr.Resolve(res.PlaceholderID) {
		m.log.Debug().Str("placeholder", res.PlaceholderID).Msg("discarded stale reply")
		return false
	}

	resp := res.Response
	status := model.StatusSuccess
	patch := model.Patch{
		Content:       &resp.Content,
		ResponseParts: toModelParts(resp.ResponseParts),
		Status:        &status,
	}
	if resp.SessionID != "" {
		patch.SessionID = &resp.SessionID
	}
	if !resp.CreatedAt.IsZero() {
		createdAt := resp.CreatedAt
		patch.CreatedAt = &createdAt
	}
	m.conv.UpdateByID(res.PlaceholderID, patch)

	if resp.SessionID != "" && m.conv.SessionID != resp.SessionID {
		m.conv.SetSessionID(resp.SessionID)
		if m.sessions != nil {
			if err := m.sessions.Store(resp.SessionID); err != nil {
				m.log.Warn().Err(err).Msg("failed to cache session id")
			}
		}
		m.log.Info().Str("session", resp.SessionID).Msg("adopted session id")
	}
	return true
}

// toModelParts converts wire response parts to model ones.
func toModelParts(parts []rag.ResponsePart) []model.ResponsePart {
	if parts == nil {
		return nil
	}
	out := make([]model.ResponsePart, len(parts))
	for i, p := range parts {
		mp := model.ResponsePart{Text: p.Text}
		for _, r := range p.References {
			mp.References = append(mp.References, model.Reference{Text: r.Text, URL: r.URL})
		}
		out[i] = mp
	}
	return out
}
