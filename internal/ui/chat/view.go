// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the full screen.
func (m *Model) View() string {
	if !m.ready {
		return "Starting ragdemon..."
	}

	switch m.mode {
	case modeHistory:
		return m.overlay(m.historyPanel.View())
	case modeFeedback:
		return m.overlay(m.feedbackForm.View())
	}

	input := m.theme.InputContainer.Width(m.width - 2).Render(m.input.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.viewport.View(),
		input,
		m.statusBar.View(),
	)
}

// overlay centers a panel over a dimmed-down frame: header on top, panel
// in the middle, status bar below.
func (m *Model) overlay(panel string) string {
	body := lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, panel)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		body,
		m.statusBar.View(),
	)
}
