// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and persists client configuration.
//
// Configuration lives in ~/.ragdemon/config.toml. Values resolve in three
// layers: built-in defaults, the config file, then RAGDEMON_* environment
// variables. A fsnotify watcher lets the running UI pick up edits to the
// file without restarting.
package config
