// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// A Conversation is an ordered, append-only log of messages. Messages are
// addressed by id and updated in place, so a pending assistant placeholder
// can later be resolved into a reply or an error without disturbing the
// position of anything around it.
package model
