// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the client: atomic
// file writes and width-aware string handling.
package util
