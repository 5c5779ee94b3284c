// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the ragdemon TUI.
// Themes come in a dark and a light variant and can be switched at
// runtime.
package styles
