// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage handles the small amount of local state the client keeps.
package storage

import (
	"os"
	"path/filepath"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/ragdemon/ragdemon-tui/internal/util"
)

// DefaultBaseDir is the directory under $HOME where client state lives.
const DefaultBaseDir = ".ragdemon"

// sessionFile is the file name holding the cached anonymous session id.
const sessionFile = "session_id"

// SessionCache persists the backend-assigned session id between runs.
type SessionCache struct {
	// BaseDir is the state directory. Empty means ~/.ragdemon.
	BaseDir string
}

// NewSessionCache creates a cache rooted at the default state directory.
func NewSessionCache() (*SessionCache, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "resolve home directory")
	}
	return &SessionCache{BaseDir: filepath.Join(home, DefaultBaseDir)}, nil
}

func (s *SessionCache) path() string {
	return filepath.Join(s.BaseDir, sessionFile)
}

// Load returns the cached session id, or "" when none is cached. A missing
// file is not an error.
func (s *SessionCache) Load() (string, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", pkgerrors.Wrap(err, "read session cache")
	}
	return strings.TrimSpace(string(data)), nil
}

// Store writes the session id atomically. Storing "" clears the cache.
func (s *SessionCache) Store(sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return s.Clear()
	}
	if err := util.AtomicWriteFile(s.path(), []byte(sessionID+"\n"), 0600); err != nil {
		return pkgerrors.Wrap(err, "write session cache")
	}
	return nil
}

// Clear removes the cached session id. Clearing an empty cache is a no-op.
func (s *SessionCache) Clear() error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return pkgerrors.Wrap(err, "clear session cache")
	}
	return nil
}
