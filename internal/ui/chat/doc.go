// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the main Bubble Tea program: the conversation
// view, the input line, and the history/feedback overlays. It owns no
// domain logic of its own; submits go through the session manager, history
// through the loader, and reports through the reporter, all from the event
// loop so that only network fetches run concurrently.
package chat
