// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the client.
package util

import (
	"github.com/mattn/go-runewidth"
)

// TruncateWidth truncates a string to a maximum display width, appending
// an ellipsis when something was cut. Wide (CJK) characters count as two
// columns.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// StringWidth returns the display width of a string in terminal columns.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// PadRight pads a string with spaces to the given display width,
// truncating first if it is already wider.
func PadRight(s string, width int) string {
	s = TruncateWidth(s, width)
	return runewidth.FillRight(s, width)
}
