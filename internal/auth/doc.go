// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth supplies bearer credentials for backend requests.
//
// Sign-in itself is delegated to an external identity provider; this
// package only models where an already-issued token comes from.
package auth
