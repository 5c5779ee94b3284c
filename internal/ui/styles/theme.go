// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the ragdemon TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
type Theme struct {
	// Mode is "dark" or "light".
	Mode string

	// ColorProfile is the detected terminal capability.
	ColorProfile termenv.Profile

	Palette Palette

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderMeta  lipgloss.Style
	HeaderBadge lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	ErrorBubble     lipgloss.Style
	PendingText     lipgloss.Style
	Timestamp       lipgloss.Style
	Reference       lipgloss.Style
	RetryHint       lipgloss.Style

	// ==========================================================================
	// INPUT AND STATUS BAR STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	StatusBar      lipgloss.Style
	ShortcutKey    lipgloss.Style
	ShortcutDesc   lipgloss.Style
	StatusError    lipgloss.Style

	// ==========================================================================
	// PANEL AND OVERLAY STYLES
	// ==========================================================================

	PanelBox          lipgloss.Style
	PanelTitle        lipgloss.Style
	PanelItem         lipgloss.Style
	PanelItemSelected lipgloss.Style
	PanelEmpty        lipgloss.Style

	FormLabel    lipgloss.Style
	FormValue    lipgloss.Style
	FormSelected lipgloss.Style

	Spinner lipgloss.Style
}

// NewTheme builds a theme for the given mode ("dark" or "light").
func NewTheme(mode string) *Theme {
	p := DarkPalette()
	if mode == "light" {
		p = LightPalette()
	} else {
		mode = "dark"
	}

	t := &Theme{
		Mode:         mode,
		ColorProfile: termenv.ColorProfile(),
		Palette:      p,
	}

	t.Header = lipgloss.NewStyle().
		Background(p.SurfaceDim).
		Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)
	t.HeaderMeta = lipgloss.NewStyle().
		Foreground(p.TextMuted)
	t.HeaderBadge = lipgloss.NewStyle().
		Foreground(p.TextInverse).
		Background(p.Accent).
		Padding(0, 1)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(p.UserBubbleFg).
		Background(p.UserBubbleBg).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.UserBubbleBorder).
		Padding(0, 1)
	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(p.BotBubbleFg).
		Background(p.BotBubbleBg).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.BotBubbleBorder).
		Padding(0, 1)
	t.ErrorBubble = lipgloss.NewStyle().
		Foreground(p.ErrorBubbleFg).
		Background(p.ErrorBubbleBg).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.ErrorBubbleBorder).
		Padding(0, 1)
	t.PendingText = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true)
	t.Timestamp = lipgloss.NewStyle().
		Foreground(p.TextMuted)
	t.Reference = lipgloss.NewStyle().
		Foreground(p.Accent).
		Underline(true)
	t.RetryHint = lipgloss.NewStyle().
		Foreground(p.Warning)

	t.InputContainer = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)
	t.StatusBar = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Background(p.SurfaceDim).
		Padding(0, 1)
	t.ShortcutKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)
	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(p.TextMuted)
	t.StatusError = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Danger)

	t.PanelBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Padding(1, 2)
	t.PanelTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)
	t.PanelItem = lipgloss.NewStyle().
		Foreground(p.TextPrimary)
	t.PanelItemSelected = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextInverse).
		Background(p.Accent)
	t.PanelEmpty = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true)

	t.FormLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextSecondary)
	t.FormValue = lipgloss.NewStyle().
		Foreground(p.TextPrimary)
	t.FormSelected = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextInverse).
		Background(p.Accent)

	t.Spinner = lipgloss.NewStyle().
		Foreground(p.Accent)

	return t
}

// Toggle returns a theme in the other mode.
func (t *Theme) Toggle() *Theme {
	if t.Mode == "dark" {
		return NewTheme("light")
	}
	return NewTheme("dark")
}

// IsDark reports whether the dark variant is active.
func (t *Theme) IsDark() bool {
	return t.Mode == "dark"
}
