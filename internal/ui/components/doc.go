// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the ragdemon
// TUI: header, message bubbles, status bar, history panel, and the
// feedback form.
package components
