// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes conversation transcripts to disk on request.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ragdemon/ragdemon-tui/internal/model"
	"github.com/ragdemon/ragdemon-tui/internal/util"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter converts a conversation into one output format.
type Exporter interface {
	// Export renders the transcript.
	Export(conv *model.Conversation) ([]byte, error)

	// FileExtension returns the output extension, e.g. ".md".
	FileExtension() string
}

// Options configures export behavior.
type Options struct {
	// OutputDir is where files are written. Empty means the working
	// directory.
	OutputDir string

	// IncludeTimestamps includes per-message timestamps.
	IncludeTimestamps bool
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{IncludeTimestamps: true}
}

// ForFormat returns the exporter for a configured format name. An empty
// format means markdown.
func ForFormat(format string, opts *Options) (Exporter, error) {
	switch format {
	case "", "markdown", "md":
		return NewMarkdownExporter(opts), nil
	case "json":
		return NewJSONExporter(), nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// =============================================================================
// FILE OUTPUT
// =============================================================================

// WriteToFile exports the conversation and writes it next to the user,
// returning the created path. File names carry the session id (or "chat"
// for an unsaved conversation) and a timestamp.
func WriteToFile(e Exporter, conv *model.Conversation, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	data, err := e.Export(conv)
	if err != nil {
		return "", err
	}

	dir := opts.OutputDir
	if dir == "" {
		dir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to resolve output directory: %w", err)
		}
	}

	name := "chat"
	if conv.SessionID != "" {
		name = conv.SessionID
	}
	filename := fmt.Sprintf("ragdemon-%s-%s%s", name, time.Now().Format("20060102-150405"), e.FileExtension())
	path := filepath.Join(dir, filename)

	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
