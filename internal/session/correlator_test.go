// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session coordinates the conversation lifecycle.
package session

import (
	"errors"
	"testing"
)

// =============================================================================
// STATE MACHINE TESTS
// =============================================================================

func TestCorrelator_Lifecycle(t *testing.T) {
	c := NewCorrelator()

	if c.StateOf("k1") != FlightIdle {
		t.Error("unknown key should read as idle")
	}

	if err := c.Begin("k1"); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if c.StateOf("k1") != FlightPending {
		t.Error("begun flight should be pending")
	}
	if !c.HasPending() || c.Pending() != "k1" {
		t.Error("correlator should report the pending key")
	}

	if !c.Resolve("k1") {
		t.Error("Resolve() of a pending flight should succeed")
	}
	if c.StateOf("k1") != FlightSuccess {
		t.Error("resolved flight should be success")
	}
	if c.HasPending() {
		t.Error("resolving should clear the pending slot")
	}
}

func TestCorrelator_SingleFlight(t *testing.T) {
	c := NewCorrelator()

	if err := c.Begin("k1"); err != nil {
		t.Fatalf("Begin(k1) error = %v", err)
	}
	if err := c.Begin("k2"); !errors.Is(err, ErrRequestInFlight) {
		t.Errorf("Begin while pending = %v, want ErrRequestInFlight", err)
	}

	c.Resolve("k1")
	if err := c.Begin("k2"); err != nil {
		t.Errorf("Begin after resolution error = %v", err)
	}
}

func TestCorrelator_RejectsDuplicateKeys(t *testing.T) {
	c := NewCorrelator()

	c.Begin("k1")
	c.Resolve("k1")
	if err := c.Begin("k1"); !errors.Is(err, ErrDuplicateRequest) {
		t.Errorf("re-beginning a resolved key = %v, want ErrDuplicateRequest", err)
	}
}

// =============================================================================
// STALE RESOLUTION TESTS
// =============================================================================

func TestCorrelator_StaleResolutionsAreIgnored(t *testing.T) {
	c := NewCorrelator()

	// Unknown key.
	if c.Resolve("ghost") {
		t.Error("resolving an unknown key should be stale")
	}
	if c.Fail("ghost") {
		t.Error("failing an unknown key should be stale")
	}

	// Terminal states never transition again.
	c.Begin("k1")
	c.Resolve("k1")
	if c.Fail("k1") {
		t.Error("failing a resolved flight should be stale")
	}
	if c.Resolve("k1") {
		t.Error("double-resolving should be stale")
	}
	if c.StateOf("k1") != FlightSuccess {
		t.Error("terminal state should be unchanged")
	}
}

func TestCorrelator_Abandon(t *testing.T) {
	c := NewCorrelator()

	c.Begin("k1")
	c.Abandon("k1")
	if c.HasPending() {
		t.Error("abandoning should clear the pending slot")
	}
	if c.Resolve("k1") {
		t.Error("a reply for an abandoned flight should read as stale")
	}

	// Abandoning non-pending keys is a no-op.
	c.Abandon("ghost")
	c.Begin("k2")
	c.Resolve("k2")
	c.Abandon("k2")
	if c.StateOf("k2") != FlightSuccess {
		t.Error("abandon must not touch terminal states")
	}
}

func TestFlightState_String(t *testing.T) {
	tests := []struct {
		state FlightState
		want  string
	}{
		{FlightIdle, "idle"},
		{FlightPending, "pending"},
		{FlightSuccess, "success"},
		{FlightError, "error"},
	}
	for _, tc := range tests {
		if got := tc.state.String(); got != tc.want {
			t.Errorf("String(%d) = %q, want %q", tc.state, got, tc.want)
		}
	}
}
