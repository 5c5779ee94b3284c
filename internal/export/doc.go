// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes conversation transcripts to disk on request, as
// Markdown or JSON. Export is always user-initiated; nothing here runs
// automatically.
package export
