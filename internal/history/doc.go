// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history lists, loads, and deletes conversations stored by the
// backend, and turns stored records back into displayable transcripts.
package history
