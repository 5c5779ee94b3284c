// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session coordinates the conversation lifecycle: validating and
// appending user turns, correlating each completion request with the
// placeholder that holds its spot in the log, and adopting the
// server-assigned session id.
//
// The Manager is split into three phases so the blocking network call can
// run off the event loop while every store mutation stays on it:
// SendMessage (mutate), Fetch (network, pure), Apply (mutate).
package session
