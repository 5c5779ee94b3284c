// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session coordinates the conversation lifecycle.
package session

import (
	"errors"
)

// =============================================================================
// FLIGHT STATES
// =============================================================================

// FlightState is the lifecycle of one completion request.
type FlightState int

const (
	// FlightIdle means the key is unknown to the correlator.
	FlightIdle FlightState = iota
	// FlightPending means the request is in the air.
	FlightPending
	// FlightSuccess and FlightError are terminal; a key never leaves them.
	FlightSuccess
	FlightError
)

// String returns the state name for logs.
func (s FlightState) String() string {
	switch s {
	case FlightPending:
		return "pending"
	case FlightSuccess:
		return "success"
	case FlightError:
		return "error"
	default:
		return "idle"
	}
}

// Sentinel errors for Begin.
var (
	// ErrRequestInFlight means another request is still pending.
	ErrRequestInFlight = errors.New("a request is already in flight")
	// ErrDuplicateRequest means this key was already begun.
	ErrDuplicateRequest = errors.New("request already submitted")
)

// =============================================================================
// CORRELATOR
// =============================================================================

// Correlator tracks completion requests keyed by the placeholder message
// id. It enforces single-flight submission and shields the store from
// stale replies: a resolution for a key that is idle or already terminal
// is reported as stale and must be discarded by the caller.
//
// Correlator is not safe for concurrent use; like the store, it lives on
// the event loop.
type Correlator struct {
	flights map[string]FlightState
	pending string
}

// NewCorrelator creates an empty correlator.
func NewCorrelator() *Correlator {
	return &Correlator{flights: make(map[string]FlightState)}
}

// Begin registers a new flight for key. It fails with ErrRequestInFlight
// while any flight is pending, and with ErrDuplicateRequest if the key was
// ever begun before, so a double submit can never fire a second call.
func (c *Correlator) Begin(key string) error {
	if c.pending != "" {
		return ErrRequestInFlight
	}
	if _, seen := c.flights[key]; seen {
		return ErrDuplicateRequest
	}
	c.flights[key] = FlightPending
	c.pending = key
	return nil
}

// Resolve moves a pending flight to success. Returns false for stale
// resolutions: unknown keys and flights already in a terminal state.
func (c *Correlator) Resolve(key string) bool {
	return c.finish(key, FlightSuccess)
}

// Fail moves a pending flight to error. Returns false for stale failures.
func (c *Correlator) Fail(key string) bool {
	return c.finish(key, FlightError)
}

func (c *Correlator) finish(key string, terminal FlightState) bool {
	if c.flights[key] != FlightPending {
		return false
	}
	c.flights[key] = terminal
	if c.pending == key {
		c.pending = ""
	}
	return true
}

// Abandon drops a pending flight without recording a terminal state, used
// when the conversation it belonged to is discarded. Later resolutions for
// the key still read as stale.
func (c *Correlator) Abandon(key string) {
	if c.flights[key] == FlightPending {
		c.flights[key] = FlightError
		if c.pending == key {
			c.pending = ""
		}
	}
}

// StateOf returns the flight state for key; unknown keys are FlightIdle.
func (c *Correlator) StateOf(key string) FlightState {
	return c.flights[key]
}

// Pending returns the key of the in-flight request, or "".
func (c *Correlator) Pending() string {
	return c.pending
}

// HasPending reports whether any request is in the air.
func (c *Correlator) HasPending() bool {
	return c.pending != ""
}
