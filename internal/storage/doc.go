// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage handles the small amount of local state the client keeps.
//
// Transcripts live on the backend; the only thing persisted here is the
// anonymous session id that lets an unauthenticated user resume their most
// recent conversation across restarts.
package storage
