// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth supplies bearer credentials for backend requests.
package auth

import (
	"errors"
	"os"
	"strings"
)

// ErrNoCredential indicates no token is available from the source.
var ErrNoCredential = errors.New("no credential available")

// TokenSource yields a bearer token for the backend. Implementations may
// return ErrNoCredential when the client should proceed unauthenticated
// (local development backends accept that).
type TokenSource interface {
	Token() (string, error)
}

// TokenFunc adapts a plain function to a TokenSource.
type TokenFunc func() (string, error)

// Token implements TokenSource.
func (f TokenFunc) Token() (string, error) { return f() }

// StaticToken is a fixed token, typically from a flag or config file.
type StaticToken string

// Token implements TokenSource.
func (s StaticToken) Token() (string, error) {
	if s == "" {
		return "", ErrNoCredential
	}
	return string(s), nil
}

// EnvToken reads the token from an environment variable on every call, so
// a refreshed token is picked up without restarting.
type EnvToken struct {
	// Var is the environment variable name holding the token.
	Var string
}

// Token implements TokenSource.
func (e EnvToken) Token() (string, error) {
	v := strings.TrimSpace(os.Getenv(e.Var))
	if v == "" {
		return "", ErrNoCredential
	}
	return v, nil
}

// None is a TokenSource that always reports no credential.
type None struct{}

// Token implements TokenSource.
func (None) Token() (string, error) { return "", ErrNoCredential }
