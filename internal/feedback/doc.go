// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package feedback collects and submits user reports about assistant
// answers: wrong content, missing context, hallucinations, and so on.
package feedback
