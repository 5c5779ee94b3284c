// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package rag provides the HTTP client for communicating with the RAG
// backend: completion requests, conversation history, and feedback.
package rag
