// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog"

	"github.com/ragdemon/ragdemon-tui/internal/config"
	"github.com/ragdemon/ragdemon-tui/internal/export"
	"github.com/ragdemon/ragdemon-tui/internal/feedback"
	"github.com/ragdemon/ragdemon-tui/internal/history"
	"github.com/ragdemon/ragdemon-tui/internal/rag"
	"github.com/ragdemon/ragdemon-tui/internal/session"
	"github.com/ragdemon/ragdemon-tui/internal/ui/components"
	"github.com/ragdemon/ragdemon-tui/internal/ui/styles"
)

// =============================================================================
// MODEL
// =============================================================================

// viewMode selects which surface owns the keyboard.
type viewMode int

const (
	modeChat viewMode = iota
	modeHistory
	modeFeedback
)

// Options wires the chat program's collaborators.
type Options struct {
	Config   *config.Config
	Manager  *session.Manager
	Loader   *history.Loader
	Reporter *feedback.Reporter
	Logger   *zerolog.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	manager  *session.Manager
	loader   *history.Loader
	reporter *feedback.Reporter
	cfg      *config.Config
	log      zerolog.Logger

	theme        *styles.Theme
	keys         KeyMap
	header       *components.Header
	statusBar    *components.StatusBar
	historyPanel *components.HistoryPanel
	feedbackForm *components.FeedbackForm

	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model
	renderer *glamour.TermRenderer

	mode   viewMode
	width  int
	height int
	ready  bool
}

// New creates the chat model. Manager is required; Loader and Reporter may
// be nil, which disables the history and feedback overlays.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	theme := styles.NewTheme(cfg.UI.Theme)

	input := textinput.New()
	input.Placeholder = "Ask a question..."
	input.CharLimit = 2000
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = theme.Spinner

	m := &Model{
		manager:      opts.Manager,
		loader:       opts.Loader,
		reporter:     opts.Reporter,
		cfg:          cfg,
		log:          log,
		theme:        theme,
		keys:         DefaultKeyMap(),
		header:       components.NewHeader(theme),
		statusBar:    components.NewStatusBar(theme),
		historyPanel: components.NewHistoryPanel(theme),
		input:        input,
		spin:         spin,
	}
	m.header.Engine = cfg.Backend.Engine
	m.statusBar.Hints = m.shortHints()
	return m
}

// Init starts the cursor blink and spinner.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

// shortHints converts the short help bindings into status bar hints.
func (m *Model) shortHints() []components.KeyHint {
	var hints []components.KeyHint
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, components.KeyHint{Key: h.Key, Desc: h.Desc})
	}
	return hints
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles one event.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.manager.Busy() {
			m.refreshViewport(false)
		}
		return m, cmd

	case completionResultMsg:
		if m.manager.Apply(msg.result) {
			m.refreshViewport(true)
		}
		m.syncChrome()
		return m, nil

	case conversationsListedMsg:
		m.historyPanel.Loading = false
		if msg.err != nil {
			m.statusBar.Error = rag.UserMessage(msg.err)
			m.mode = modeChat
			return m, nil
		}
		m.historyPanel.SetEntries(msg.entries)
		return m, nil

	case conversationLoadedMsg:
		if msg.err != nil {
			m.statusBar.Error = rag.UserMessage(msg.err)
			m.mode = modeChat
			return m, nil
		}
		m.manager.Reset(msg.conv)
		m.mode = modeChat
		m.statusBar.Error = ""
		m.refreshViewport(true)
		m.syncChrome()
		return m, nil

	case deleteFailedMsg:
		m.historyPanel.InsertAt(msg.index, msg.entry)
		m.statusBar.Error = rag.UserMessage(msg.err)
		return m, nil

	case feedbackDoneMsg:
		if msg.err != nil {
			if errors.Is(msg.err, feedback.ErrRateLimited) {
				m.statusBar.Error = "Feedback submitted too quickly, try again shortly."
			} else {
				m.statusBar.Error = "Failed to submit feedback."
			}
		} else {
			m.statusBar.State = "Feedback sent, thank you"
		}
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.statusBar.Error = "Export failed."
		} else {
			m.statusBar.State = "Exported to " + msg.path
		}
		return m, nil

	case ConfigReloadedMsg:
		m.applyConfig(msg.Config)
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleKey routes a key press to whichever surface owns the keyboard.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeHistory:
		return m.handleHistoryKey(msg)
	case modeFeedback:
		return m.handleFeedbackKey(msg)
	}
	return m.handleChatKey(msg)
}

func (m *Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m, m.submit(m.input.Value())

	case key.Matches(msg, m.keys.Retry):
		return m, m.retry()

	case key.Matches(msg, m.keys.NewConversation):
		m.manager.Reset(nil)
		m.statusBar.Error = ""
		m.statusBar.State = "Ready"
		m.refreshViewport(true)
		m.syncChrome()
		return m, nil

	case key.Matches(msg, m.keys.History):
		if m.loader == nil {
			return m, nil
		}
		m.mode = modeHistory
		m.historyPanel.Loading = true
		return m, m.listConversations()

	case key.Matches(msg, m.keys.Feedback):
		if m.reporter == nil {
			return m, nil
		}
		question, answer, ok := m.lastExchange()
		if !ok {
			m.statusBar.Error = "Nothing to report yet."
			return m, nil
		}
		m.feedbackForm = components.NewFeedbackForm(m.theme, question, answer)
		m.mode = modeFeedback
		return m, nil

	case key.Matches(msg, m.keys.Export):
		return m, m.export()

	case key.Matches(msg, m.keys.Theme):
		m.theme = m.theme.Toggle()
		m.cfg.UI.Theme = m.theme.Mode
		m.propagateTheme()
		m.rebuildRenderer()
		m.refreshViewport(false)
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+h", "q":
		m.mode = modeChat
		return m, nil
	case "up", "k":
		m.historyPanel.MoveUp()
		return m, nil
	case "down", "j":
		m.historyPanel.MoveDown()
		return m, nil
	case "enter":
		entry, ok := m.historyPanel.Selected()
		if !ok {
			return m, nil
		}
		return m, m.loadConversation(entry.SessionID)
	case "x", "delete":
		entry, idx, ok := m.historyPanel.RemoveSelected()
		if !ok {
			return m, nil
		}
		return m, m.deleteConversation(entry, idx)
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleFeedbackKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeChat
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	cmd, submit := m.feedbackForm.HandleKey(msg)
	if !submit {
		return m, cmd
	}

	report := m.feedbackForm.Report(m.manager.SessionID())
	m.mode = modeChat
	return m, func() tea.Msg {
		return feedbackDoneMsg{err: <-m.reporter.SubmitAsync(context.Background(), report)}
	}
}

// =============================================================================
// COMMANDS
// =============================================================================

// submit sends the input line as a new user turn and kicks off the fetch.
func (m *Model) submit(text string) tea.Cmd {
	ex, err := m.manager.SendMessage(text)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrEmptyMessage):
			m.statusBar.Error = "Type a message first."
		case errors.Is(err, session.ErrRequestInFlight):
			m.statusBar.Error = "Still waiting on the previous reply."
		default:
			m.statusBar.Error = err.Error()
		}
		return nil
	}

	m.input.Reset()
	m.statusBar.Error = ""
	m.statusBar.State = "Waiting for reply"
	m.refreshViewport(true)
	m.syncChrome()
	return m.fetch(ex)
}

// retry re-sends the last user message as a new turn.
func (m *Model) retry() tea.Cmd {
	ex, err := m.manager.RetryLast()
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNothingToRetry):
			m.statusBar.Error = "Nothing to retry."
		case errors.Is(err, session.ErrRequestInFlight):
			m.statusBar.Error = "Still waiting on the previous reply."
		default:
			m.statusBar.Error = err.Error()
		}
		return nil
	}

	m.statusBar.Error = ""
	m.statusBar.State = "Waiting for reply"
	m.refreshViewport(true)
	return m.fetch(ex)
}

// fetch runs the completion request off the event loop.
func (m *Model) fetch(ex *session.Exchange) tea.Cmd {
	return func() tea.Msg {
		return completionResultMsg{result: m.manager.Fetch(context.Background(), ex)}
	}
}

func (m *Model) listConversations() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.loader.List(context.Background())
		return conversationsListedMsg{entries: entries, err: err}
	}
}

func (m *Model) loadConversation(sessionID string) tea.Cmd {
	return func() tea.Msg {
		conv, err := m.loader.Load(context.Background(), sessionID)
		return conversationLoadedMsg{conv: conv, err: err}
	}
}

// deleteConversation fires the backend delete after the entry has already
// been removed from the panel. Only a failure produces a message.
func (m *Model) deleteConversation(entry rag.ConversationSummary, idx int) tea.Cmd {
	return func() tea.Msg {
		if err := m.loader.Delete(context.Background(), entry.SessionID); err != nil {
			return deleteFailedMsg{entry: entry, index: idx, err: err}
		}
		return nil
	}
}

// export writes the current transcript in the configured format next to
// the user.
func (m *Model) export() tea.Cmd {
	conv := m.manager.Conversation()
	if conv.Len() == 0 {
		m.statusBar.Error = "Nothing to export yet."
		return nil
	}
	opts := &export.Options{IncludeTimestamps: m.cfg.UI.ShowTimestamps}
	exporter, err := export.ForFormat(m.cfg.UI.ExportFormat, opts)
	if err != nil {
		m.statusBar.Error = err.Error()
		return nil
	}
	return func() tea.Msg {
		path, err := export.WriteToFile(exporter, conv, opts)
		return exportDoneMsg{path: path, err: err}
	}
}

// =============================================================================
// STATE SYNC
// =============================================================================

// lastExchange returns the most recent question/answer pair.
func (m *Model) lastExchange() (question, answer string, ok bool) {
	conv := m.manager.Conversation()
	user := conv.LastUserMessage()
	assistant := conv.LastAssistantMessage()
	if user == nil || assistant == nil || assistant.IsPending() {
		return "", "", false
	}
	return user.Content, assistant.Content, true
}

// syncChrome keeps the header and status bar in step with the manager.
func (m *Model) syncChrome() {
	conv := m.manager.Conversation()
	m.header.SessionID = conv.SessionID
	m.header.ReadOnly = conv.ReadOnly
	if m.manager.Busy() {
		m.statusBar.State = "Waiting for reply"
	} else {
		m.statusBar.State = "Ready"
	}
}

// applyConfig folds a reloaded config into the running UI.
func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.cfg = cfg
	if cfg.UI.Theme != m.theme.Mode {
		m.theme = styles.NewTheme(cfg.UI.Theme)
		m.propagateTheme()
		m.rebuildRenderer()
	}
	m.refreshViewport(false)
	m.log.Debug().Msg("applied reloaded config")
}

// propagateTheme pushes the current theme into every component.
func (m *Model) propagateTheme() {
	m.header.SetTheme(m.theme)
	m.statusBar.SetTheme(m.theme)
	m.historyPanel.SetTheme(m.theme)
	if m.feedbackForm != nil {
		m.feedbackForm.SetTheme(m.theme)
	}
	m.spin.Style = m.theme.Spinner
}

// resize lays the surfaces out for a new terminal size.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	m.header.SetWidth(width)
	m.statusBar.SetWidth(width)
	m.historyPanel.SetSize(width, height)
	m.input.Width = width - 6

	// Header, input line, and status bar each take one rendered row block.
	vpHeight := height - 6
	if vpHeight < 3 {
		vpHeight = 3
	}
	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}

	m.rebuildRenderer()
	m.refreshViewport(false)
}

// rebuildRenderer recreates the markdown renderer for the current width
// and theme. Markdown stays off when disabled in config.
func (m *Model) rebuildRenderer() {
	m.renderer = nil
	if !m.cfg.UI.Markdown || m.width == 0 {
		return
	}
	wrap := m.width * 3 / 4
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.theme.Mode),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		m.log.Warn().Err(err).Msg("markdown renderer unavailable")
		return
	}
	m.renderer = r
}

// renderMarkdown adapts the glamour renderer to the message renderer.
func (m *Model) renderMarkdown(text string) (string, error) {
	if m.renderer == nil {
		return text, nil
	}
	return m.renderer.Render(text)
}

// refreshViewport re-renders the transcript. gotoBottom scrolls to the
// newest message, used after appends but not after passive redraws.
func (m *Model) refreshViewport(gotoBottom bool) {
	if !m.ready {
		return
	}

	conv := m.manager.Conversation()
	if conv.Len() == 0 {
		m.viewport.SetContent(components.RenderEmptyState(m.theme, m.viewport.Width))
		return
	}

	opts := components.RenderOptions{
		Width:          m.viewport.Width,
		ShowTimestamps: m.cfg.UI.ShowTimestamps,
		SpinnerFrame:   m.spin.View(),
		RenderMarkdown: m.renderMarkdown,
	}

	var content string
	for i, msg := range conv.Messages {
		if i > 0 {
			content += "\n\n"
		}
		content += components.RenderMessage(m.theme, msg, opts)
	}
	m.viewport.SetContent(content)

	if gotoBottom {
		m.viewport.GotoBottom()
	}
}
