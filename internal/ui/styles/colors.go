// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the ragdemon TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette holds the raw colors for one theme variant. Explicit palettes
// instead of adaptive colors: the theme toggle must work even when the
// terminal background cannot be detected.
type Palette struct {
	// Accent colors
	Accent     lipgloss.Color
	AccentDeep lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Danger  lipgloss.Color

	// Surfaces
	Surface       lipgloss.Color
	SurfaceDim    lipgloss.Color
	SurfaceBright lipgloss.Color
	Border        lipgloss.Color

	// Text
	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color
	TextInverse   lipgloss.Color

	// Message bubbles
	UserBubbleBg      lipgloss.Color
	UserBubbleFg      lipgloss.Color
	UserBubbleBorder  lipgloss.Color
	BotBubbleBg       lipgloss.Color
	BotBubbleFg       lipgloss.Color
	BotBubbleBorder   lipgloss.Color
	ErrorBubbleBg     lipgloss.Color
	ErrorBubbleFg     lipgloss.Color
	ErrorBubbleBorder lipgloss.Color
}

// DarkPalette is the default variant.
func DarkPalette() Palette {
	return Palette{
		Accent:     lipgloss.Color("#A78BFA"),
		AccentDeep: lipgloss.Color("#4C1D95"),

		Success: lipgloss.Color("#34D399"),
		Warning: lipgloss.Color("#FBBF24"),
		Danger:  lipgloss.Color("#FB7185"),

		Surface:       lipgloss.Color("#1E1E2E"),
		SurfaceDim:    lipgloss.Color("#181825"),
		SurfaceBright: lipgloss.Color("#313244"),
		Border:        lipgloss.Color("#45475A"),

		TextPrimary:   lipgloss.Color("#CDD6F4"),
		TextSecondary: lipgloss.Color("#A6ADC8"),
		TextMuted:     lipgloss.Color("#6C7086"),
		TextInverse:   lipgloss.Color("#1E1E2E"),

		UserBubbleBg:      lipgloss.Color("#1D4ED8"),
		UserBubbleFg:      lipgloss.Color("#E0F2FE"),
		UserBubbleBorder:  lipgloss.Color("#3B82F6"),
		BotBubbleBg:       lipgloss.Color("#3B3655"),
		BotBubbleFg:       lipgloss.Color("#E9E4F5"),
		BotBubbleBorder:   lipgloss.Color("#A78BFA"),
		ErrorBubbleBg:     lipgloss.Color("#881337"),
		ErrorBubbleFg:     lipgloss.Color("#FECACA"),
		ErrorBubbleBorder: lipgloss.Color("#FB7185"),
	}
}

// LightPalette is the light variant.
func LightPalette() Palette {
	return Palette{
		Accent:     lipgloss.Color("#7C3AED"),
		AccentDeep: lipgloss.Color("#5B21B6"),

		Success: lipgloss.Color("#059669"),
		Warning: lipgloss.Color("#D97706"),
		Danger:  lipgloss.Color("#E11D48"),

		Surface:       lipgloss.Color("#FFFFFF"),
		SurfaceDim:    lipgloss.Color("#F5F5F5"),
		SurfaceBright: lipgloss.Color("#FAFAFA"),
		Border:        lipgloss.Color("#D4D4D4"),

		TextPrimary:   lipgloss.Color("#1F2937"),
		TextSecondary: lipgloss.Color("#6B7280"),
		TextMuted:     lipgloss.Color("#9CA3AF"),
		TextInverse:   lipgloss.Color("#FFFFFF"),

		UserBubbleBg:      lipgloss.Color("#DBEAFE"),
		UserBubbleFg:      lipgloss.Color("#1E40AF"),
		UserBubbleBorder:  lipgloss.Color("#3B82F6"),
		BotBubbleBg:       lipgloss.Color("#F5F3FF"),
		BotBubbleFg:       lipgloss.Color("#5B4B8A"),
		BotBubbleBorder:   lipgloss.Color("#C4B5FD"),
		ErrorBubbleBg:     lipgloss.Color("#FEE2E2"),
		ErrorBubbleFg:     lipgloss.Color("#991B1B"),
		ErrorBubbleBorder: lipgloss.Color("#E11D48"),
	}
}
