// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package feedback collects and submits user reports about assistant answers.
package feedback

import (
	"context"
	"errors"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/ragdemon/ragdemon-tui/internal/rag"
)

// =============================================================================
// REPORT
// =============================================================================

// IssueTypes is the fixed catalog a report must pick from.
var IssueTypes = []string{
	"Incorrect answer",
	"Missing context",
	"Hallucination",
	"Not helpful",
	"Toxic / unsafe",
	"Latency / performance",
	"UI / UX issue",
	"Other",
}

// Severities a report can carry.
var Severities = []string{"Low", "Medium", "High"}

// Report is one piece of user feedback. Question and Answer are attached
// only when IncludeContext is set.
type Report struct {
	SessionID      string
	IssueType      string
	Severity       string
	Notes          string
	IncludeContext bool
	Question       string
	Answer         string
}

// Validation errors.
var (
	ErrUnknownIssueType = errors.New("unknown issue type")
	ErrUnknownSeverity  = errors.New("unknown severity")
	ErrRateLimited      = errors.New("feedback submitted too quickly")
)

// Validate checks the report against the catalogs.
func (r *Report) Validate() error {
	if !contains(IssueTypes, r.IssueType) {
		return ErrUnknownIssueType
	}
	if !contains(Severities, r.Severity) {
		return ErrUnknownSeverity
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// =============================================================================
// REPORTER
// =============================================================================

// FeedbackClient is the slice of the backend client the reporter needs.
type FeedbackClient interface {
	SendFeedback(ctx context.Context, report rag.FeedbackRequest) error
}

// Reporter validates, rate-limits, and submits reports. The limiter keeps
// a stuck key or a misbehaving form from spamming the endpoint.
type Reporter struct {
	client  FeedbackClient
	limiter *rate.Limiter
	log     zerolog.Logger
	now     func() time.Time
}

// NewReporter creates a reporter allowing one report per interval with a
// small burst. A nil logger disables logging.
func NewReporter(client FeedbackClient, logger *zerolog.Logger) *Reporter {
	log := zerolog.Nop()
	if logger != nil {
		log = *logger
	}
	return &Reporter{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(5*time.Second), 2),
		log:     log,
		now:     time.Now,
	}
}

// Submit validates and sends one report synchronously.
func (r *Reporter) Submit(ctx context.Context, report Report) error {
	if err := report.Validate(); err != nil {
		return err
	}
	if !r.limiter.Allow() {
		return ErrRateLimited
	}

	payload := rag.FeedbackRequest{
		SessionID:      report.SessionID,
		IssueType:      report.IssueType,
		Severity:       report.Severity,
		Notes:          strings.TrimSpace(report.Notes),
		IncludeContext: report.IncludeContext,
		SubmittedAt:    r.now(),
	}
	if report.IncludeContext {
		payload.Question = report.Question
		payload.Answer = report.Answer
	}

	if err := r.client.SendFeedback(ctx, payload); err != nil {
		return pkgerrors.Wrap(err, "submit feedback")
	}
	r.log.Info().Str("issue", report.IssueType).Str("severity", report.Severity).Msg("feedback submitted")
	return nil
}

// SubmitAsync fires Submit in a goroutine and reports the outcome on the
// returned channel. The channel is buffered; the result may be ignored.
func (r *Reporter) SubmitAsync(ctx context.Context, report Report) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- r.Submit(ctx, report)
	}()
	return done
}
