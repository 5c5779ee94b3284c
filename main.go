// ragdemon - a terminal client for the RAGDemon retrieval-augmented chat
// backend.
//
// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/ragdemon/ragdemon-tui/internal/auth"
	"github.com/ragdemon/ragdemon-tui/internal/config"
	"github.com/ragdemon/ragdemon-tui/internal/feedback"
	"github.com/ragdemon/ragdemon-tui/internal/history"
	"github.com/ragdemon/ragdemon-tui/internal/model"
	"github.com/ragdemon/ragdemon-tui/internal/rag"
	"github.com/ragdemon/ragdemon-tui/internal/session"
	"github.com/ragdemon/ragdemon-tui/internal/storage"
	"github.com/ragdemon/ragdemon-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to config.toml (default ~/.ragdemon/config.toml)")
		backendURL  = flag.String("backend-url", "", "backend base URL (overrides config)")
		engine      = flag.String("engine", "", "retrieval engine: bedrock or langchain (overrides config)")
		userID      = flag.String("user", "", "user id for conversation history (overrides config)")
		sessionID   = flag.String("session", "", "continue an existing session id")
		fresh       = flag.Bool("fresh", false, "ignore the cached session id and start a new conversation")
		light       = flag.Bool("light", false, "use the light theme")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("ragdemon %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "ragdemon is an interactive client and needs a terminal")
		os.Exit(1)
	}

	if err := run(*configPath, *backendURL, *engine, *userID, *sessionID, *fresh, *light); err != nil {
		fmt.Fprintf(os.Stderr, "ragdemon: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, backendURL, engine, userID, sessionID string, fresh, light bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if backendURL != "" {
		cfg.Backend.BaseURL = backendURL
	}
	if engine != "" {
		cfg.Backend.Engine = engine
	}
	if userID != "" {
		cfg.Auth.UserID = userID
	}
	if light {
		cfg.UI.Theme = "light"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	config.SetGlobal(cfg)

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Info().Str("version", Version).Str("engine", cfg.Backend.Engine).Msg("starting ragdemon")

	client := rag.NewClient(&rag.ClientConfig{
		BaseURL:     cfg.Backend.BaseURL,
		Engine:      cfg.Backend.Engine,
		Timeout:     cfg.Backend.Timeout(),
		Credentials: auth.EnvToken{Var: cfg.Auth.TokenEnv},
	})

	sessions, err := storage.NewSessionCache()
	if err != nil {
		return err
	}

	// Resume order: explicit flag, then the cached id from the last run.
	conv := model.NewConversation()
	switch {
	case fresh:
		if err := sessions.Clear(); err != nil {
			logger.Warn().Err(err).Msg("failed to clear session cache")
		}
	case sessionID != "":
		conv.SetSessionID(sessionID)
	default:
		if cached, err := sessions.Load(); err == nil && cached != "" {
			conv.SetSessionID(cached)
			logger.Debug().Str("session", cached).Msg("resuming cached session")
		}
	}

	manager := session.NewManager(client, session.ManagerConfig{
		Conversation: conv,
		Sessions:     sessions,
		Timeout:      cfg.Backend.Timeout(),
		Logger:       &logger,
	})

	// History endpoints key on a user id; without one the overlay stays
	// disabled rather than listing someone else's conversations.
	var loader *history.Loader
	if cfg.Auth.UserID != "" {
		loader = history.NewLoader(client, cfg.Auth.UserID, &logger)
	}

	reporter := feedback.NewReporter(client, &logger)

	m := chat.New(chat.Options{
		Config:   cfg,
		Manager:  manager,
		Loader:   loader,
		Reporter: reporter,
		Logger:   &logger,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())

	stopWatch := watchConfig(configPath, p, logger)
	defer stopWatch()

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// loadConfig reads the config from the explicit path or the default one.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// openLogger builds the file logger. The TUI owns the terminal, so logs
// never go to stderr while the program runs.
func openLogger(cfg *config.Config) (zerolog.Logger, func(), error) {
	nop := func() {}
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return zerolog.Nop(), nop, fmt.Errorf("unknown log level %q", cfg.Logging.Level)
	}
	if level == zerolog.Disabled {
		return zerolog.Nop(), nop, nil
	}

	path := cfg.Logging.File
	if path == "" {
		dir, err := config.ConfigDir()
		if err != nil {
			return zerolog.Nop(), nop, err
		}
		path = filepath.Join(dir, "debug.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return zerolog.Nop(), nop, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return zerolog.Nop(), nop, err
	}

	logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return logger, func() { f.Close() }, nil
}

// watchConfig hot-reloads the config file into the running program.
func watchConfig(explicitPath string, p *tea.Program, logger zerolog.Logger) func() {
	path := explicitPath
	if path == "" {
		var err error
		path, err = config.ConfigPath()
		if err != nil {
			return func() {}
		}
	}

	stop, err := config.Watch(path, func(cfg *config.Config) {
		config.SetGlobal(cfg)
		p.Send(chat.ConfigReloadedMsg{Config: cfg})
		logger.Info().Msg("config reloaded")
	})
	if err != nil {
		// A missing config directory just means nothing to watch.
		logger.Debug().Err(err).Msg("config watch unavailable")
		return func() {}
	}
	return stop
}
