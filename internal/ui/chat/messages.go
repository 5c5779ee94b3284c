// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/ragdemon/ragdemon-tui/internal/config"
	"github.com/ragdemon/ragdemon-tui/internal/model"
	"github.com/ragdemon/ragdemon-tui/internal/rag"
	"github.com/ragdemon/ragdemon-tui/internal/session"
)

// =============================================================================
// PROGRAM MESSAGES
// =============================================================================

// completionResultMsg carries a finished completion request back onto the
// event loop, where Apply folds it into the conversation.
type completionResultMsg struct {
	result session.Result
}

// conversationsListedMsg carries the history listing.
type conversationsListedMsg struct {
	entries []rag.ConversationSummary
	err     error
}

// conversationLoadedMsg carries a rehydrated past conversation.
type conversationLoadedMsg struct {
	conv *model.Conversation
	err  error
}

// deleteFailedMsg reports a failed backend delete so the optimistically
// removed entry can be put back.
type deleteFailedMsg struct {
	entry rag.ConversationSummary
	index int
	err   error
}

// feedbackDoneMsg reports the outcome of a feedback submission.
type feedbackDoneMsg struct {
	err error
}

// exportDoneMsg reports where the transcript was written.
type exportDoneMsg struct {
	path string
	err  error
}

// ConfigReloadedMsg is sent from outside the program when the config file
// changes on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}
