// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history lists, loads, and deletes stored conversations.
package history

import (
	"context"
	"sort"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/ragdemon/ragdemon-tui/internal/model"
	"github.com/ragdemon/ragdemon-tui/internal/rag"
)

// HistoryClient is the slice of the backend client the loader needs.
type HistoryClient interface {
	ListConversations(ctx context.Context, userID string) ([]rag.ConversationSummary, error)
	ListMessages(ctx context.Context, userID, sessionID string) ([]rag.StoredMessage, error)
	DeleteConversation(ctx context.Context, userID, sessionID string) error
}

// Loader fetches stored conversations for one user.
type Loader struct {
	client HistoryClient
	userID string
	log    zerolog.Logger
}

// NewLoader creates a loader for the given user. A nil logger disables
// logging.
func NewLoader(client HistoryClient, userID string, logger *zerolog.Logger) *Loader {
	log := zerolog.Nop()
	if logger != nil {
		log = *logger
	}
	return &Loader{client: client, userID: userID, log: log}
}

// List returns the user's conversations, most recently updated first. A
// user with no history gets an empty slice.
func (l *Loader) List(ctx context.Context) ([]rag.ConversationSummary, error) {
	convs, err := l.client.ListConversations(ctx, l.userID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list conversations")
	}
	sort.SliceStable(convs, func(i, j int) bool {
		return convs[i].LastUpdated.After(convs[j].LastUpdated)
	})
	l.log.Debug().Int("count", len(convs)).Msg("listed conversations")
	return convs, nil
}

// Load fetches one conversation's records and rehydrates them into a
// read-only transcript in chronological order. Records without their own
// created_at recover a timestamp from the store sort key; records with
// neither keep their relative order.
func (l *Loader) Load(ctx context.Context, sessionID string) (*model.Conversation, error) {
	records, err := l.client.ListMessages(ctx, l.userID, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "load conversation")
	}

	msgs := make([]*model.Message, 0, len(records))
	for i := range records {
		msgs = append(msgs, toModelMessage(&records[i]))
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})

	l.log.Debug().Str("session", sessionID).Int("messages", len(msgs)).Msg("loaded conversation")
	return model.HydrateConversation(sessionID, msgs), nil
}

// Delete removes a stored conversation. Callers remove the entry from
// their view before calling and put it back if this fails.
func (l *Loader) Delete(ctx context.Context, sessionID string) error {
	if err := l.client.DeleteConversation(ctx, l.userID, sessionID); err != nil {
		return pkgerrors.Wrap(err, "delete conversation")
	}
	l.log.Info().Str("session", sessionID).Msg("deleted conversation")
	return nil
}

// toModelMessage converts one stored record to a display message.
func toModelMessage(rec *rag.StoredMessage) *model.Message {
	m := &model.Message{
		ID:        rec.MessageID,
		Role:      model.Role(rec.Role),
		Content:   rec.Content,
		SessionID: rec.SessionID,
		Status:    model.StatusSuccess,
	}
	if ts, ok := rec.Timestamp(); ok {
		m.CreatedAt = ts
	}
	if rec.MessageID == "" {
		// Very old records carried the id only in the sort key.
		if _, id, ok := rag.ParseSortKey(rec.SortKey); ok {
			m.ID = id
		}
	}
	for _, p := range rec.ResponseParts {
		mp := model.ResponsePart{Text: p.Text}
		for _, r := range p.References {
			mp.References = append(mp.References, model.Reference{Text: r.Text, URL: r.URL})
		}
		m.ResponseParts = append(m.ResponseParts, mp)
	}
	return m
}
