// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "github.com/charmbracelet/bubbles/key"

// =============================================================================
// KEY BINDINGS
// =============================================================================

// KeyMap holds the chat view's key bindings.
type KeyMap struct {
	Submit          key.Binding
	Retry           key.Binding
	NewConversation key.Binding
	History         key.Binding
	Feedback        key.Binding
	Export          key.Binding
	Theme           key.Binding
	ScrollUp        key.Binding
	ScrollDown      key.Binding
	Quit            key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Retry: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "retry"),
		),
		NewConversation: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "new"),
		),
		History: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("ctrl+h", "history"),
		),
		Feedback: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "feedback"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "export"),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "theme"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.History, k.NewConversation, k.Quit}
}

// FullHelp returns every binding, grouped for the help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Retry, k.NewConversation},
		{k.History, k.Feedback, k.Export},
		{k.Theme, k.ScrollUp, k.ScrollDown, k.Quit},
	}
}
