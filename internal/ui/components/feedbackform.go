// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the ragdemon TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ragdemon/ragdemon-tui/internal/feedback"
	"github.com/ragdemon/ragdemon-tui/internal/ui/styles"
)

// =============================================================================
// FEEDBACK FORM COMPONENT
// =============================================================================

// form fields, cycled with tab.
const (
	fieldIssue = iota
	fieldSeverity
	fieldNotes
	fieldContext
	fieldSubmit
	fieldCount
)

// FeedbackForm is the overlay for reporting a bad answer.
type FeedbackForm struct {
	Width int

	issueIdx       int
	severityIdx    int
	notes          textinput.Model
	includeContext bool
	focus          int

	question string
	answer   string
	theme    *styles.Theme
}

// NewFeedbackForm creates a form pre-filled with the exchange it is
// about.
func NewFeedbackForm(theme *styles.Theme, question, answer string) *FeedbackForm {
	notes := textinput.New()
	notes.Placeholder = "What went wrong?"
	notes.CharLimit = 500
	notes.Width = 50

	return &FeedbackForm{
		Width:       70,
		severityIdx: 1, // Medium
		notes:       notes,
		question:    question,
		answer:      answer,
		theme:       theme,
	}
}

// SetTheme swaps the theme.
func (f *FeedbackForm) SetTheme(theme *styles.Theme) {
	f.theme = theme
}

// Report builds the report from the current form state.
func (f *FeedbackForm) Report(sessionID string) feedback.Report {
	return feedback.Report{
		SessionID:      sessionID,
		IssueType:      feedback.IssueTypes[f.issueIdx],
		Severity:       feedback.Severities[f.severityIdx],
		Notes:          f.notes.Value(),
		IncludeContext: f.includeContext,
		Question:       f.question,
		Answer:         f.answer,
	}
}

// HandleKey advances the form. submit is true when the user confirmed.
func (f *FeedbackForm) HandleKey(msg tea.KeyMsg) (cmd tea.Cmd, submit bool) {
	switch msg.String() {
	case "tab", "down":
		f.setFocus((f.focus + 1) % fieldCount)
		return nil, false
	case "shift+tab", "up":
		f.setFocus((f.focus + fieldCount - 1) % fieldCount)
		return nil, false
	}

	switch f.focus {
	case fieldIssue:
		switch msg.String() {
		case "left":
			f.issueIdx = (f.issueIdx + len(feedback.IssueTypes) - 1) % len(feedback.IssueTypes)
		case "right":
			f.issueIdx = (f.issueIdx + 1) % len(feedback.IssueTypes)
		}
	case fieldSeverity:
		switch msg.String() {
		case "left":
			f.severityIdx = (f.severityIdx + len(feedback.Severities) - 1) % len(feedback.Severities)
		case "right":
			f.severityIdx = (f.severityIdx + 1) % len(feedback.Severities)
		}
	case fieldNotes:
		var c tea.Cmd
		f.notes, c = f.notes.Update(msg)
		return c, false
	case fieldContext:
		if msg.String() == " " || msg.String() == "enter" {
			f.includeContext = !f.includeContext
		}
	case fieldSubmit:
		if msg.String() == "enter" {
			return nil, true
		}
	}
	return nil, false
}

func (f *FeedbackForm) setFocus(focus int) {
	f.focus = focus
	if focus == fieldNotes {
		f.notes.Focus()
	} else {
		f.notes.Blur()
	}
}

// View renders the form overlay.
func (f *FeedbackForm) View() string {
	var sb strings.Builder
	sb.WriteString(f.theme.PanelTitle.Render("Report an issue"))
	sb.WriteString("\n\n")

	sb.WriteString(f.renderChoice("Issue", feedback.IssueTypes[f.issueIdx], f.focus == fieldIssue))
	sb.WriteString("\n")
	sb.WriteString(f.renderChoice("Severity", feedback.Severities[f.severityIdx], f.focus == fieldSeverity))
	sb.WriteString("\n")

	sb.WriteString(f.theme.FormLabel.Render("Notes    "))
	sb.WriteString(f.notes.View())
	sb.WriteString("\n")

	check := "[ ]"
	if f.includeContext {
		check = "[x]"
	}
	sb.WriteString(f.renderChoice("Context", check+" attach question and answer", f.focus == fieldContext))
	sb.WriteString("\n\n")

	submit := "  Submit  "
	if f.focus == fieldSubmit {
		sb.WriteString(f.theme.FormSelected.Render(submit))
	} else {
		sb.WriteString(f.theme.FormValue.Render(submit))
	}
	sb.WriteString("\n\n")
	sb.WriteString(f.theme.ShortcutDesc.Render("tab next field | left/right change | esc cancel"))

	return f.theme.PanelBox.Width(f.Width).Render(sb.String())
}

func (f *FeedbackForm) renderChoice(label, value string, focused bool) string {
	l := f.theme.FormLabel.Render(label + strings.Repeat(" ", 9-len(label)))
	if focused {
		return l + f.theme.FormSelected.Render(" "+value+" ")
	}
	return l + f.theme.FormValue.Render(" "+value+" ")
}
