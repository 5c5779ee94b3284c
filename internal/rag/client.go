// Copyright (c) 2025 RAGDemon Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package rag provides the HTTP client for communicating with the RAG backend.
package rag

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ragdemon/ragdemon-tui/internal/auth"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// FallbackErrorMessage is shown when the backend gives no usable error
// detail. Wording matches what users already know from the web client.
const FallbackErrorMessage = "Failed to fetch assistant reply. Please try again."

// ClientError represents an error from the RAG backend client.
type ClientError struct {
	Type ErrorType
	// StatusCode is the HTTP status, 0 when the request never completed.
	StatusCode int
	Message    string
	Cause      error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeAuth
	ErrTypeNotFound
	ErrTypeServer
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable  = &ClientError{Type: ErrTypeConnection, Message: "backend is unreachable"}
	ErrTimeout      = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrUnauthorized = &ClientError{Type: ErrTypeAuth, Message: "not authorized"}
	ErrNotFound     = &ClientError{Type: ErrTypeNotFound, Message: "conversation not found"}
)

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// IsAuth checks if an error is an authorization error.
func IsAuth(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeAuth
	}
	return errors.Is(err, ErrUnauthorized)
}

// IsNotFound checks if an error is a missing-conversation error.
func IsNotFound(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeNotFound
	}
	return errors.Is(err, ErrNotFound)
}

// UserMessage returns the error text fit for display in the chat, falling
// back to the generic wording when the backend gave nothing useful.
func UserMessage(err error) string {
	var clientErr *ClientError
	if errors.As(err, &clientErr) && clientErr.Message != "" {
		switch clientErr.Type {
		case ErrTypeServer, ErrTypeAuth, ErrTypeTimeout:
			return clientErr.Message
		}
	}
	return FallbackErrorMessage
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://127.0.0.1:8000)
	BaseURL string

	// Engine selects the retrieval backend, "bedrock" or "langchain"
	// (default: "bedrock")
	Engine string

	// Timeout bounds every request (default: 10s)
	Timeout time.Duration

	// Credentials supplies the bearer token. Nil means unauthenticated.
	Credentials auth.TokenSource
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://127.0.0.1:8000",
		Engine:  "bedrock",
		Timeout: 10 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the RAG backend.
//
// The Client is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a backend client, filling config defaults for any zero
// values.
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.Engine == "" {
		config.Engine = "bedrock"
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.Credentials == nil {
		config.Credentials = auth.None{}
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// ragPath joins the engine-scoped path segments onto the base URL.
func (c *Client) ragPath(segments ...string) string {
	parts := []string{strings.TrimRight(c.config.BaseURL, "/"), "rag", c.config.Engine}
	for _, s := range segments {
		parts = append(parts, url.PathEscape(s))
	}
	return strings.Join(parts, "/")
}

// do runs a request with auth and decodes a non-2xx body into a ClientError.
func (c *Client) do(ctx context.Context, method, urlStr string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, urlStr, reader)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, err := c.config.Credentials.Token(); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		var uerr *url.Error
		if errors.As(err, &uerr) && uerr.Timeout() {
			return ErrTimeout
		}
		return &ClientError{Type: ErrTypeConnection, Message: ErrUnreachable.Message, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// decodeError maps the backend's error envelope to a typed ClientError.
func decodeError(resp *http.Response) *ClientError {
	errType := ErrTypeServer
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		errType = ErrTypeAuth
	case http.StatusNotFound:
		errType = ErrTypeNotFound
	}

	var envelope apiError
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Message != "" {
		return &ClientError{Type: errType, StatusCode: resp.StatusCode, Message: envelope.Message}
	}

	switch errType {
	case ErrTypeAuth:
		return &ClientError{Type: errType, StatusCode: resp.StatusCode, Message: ErrUnauthorized.Message}
	case ErrTypeNotFound:
		return &ClientError{Type: errType, StatusCode: resp.StatusCode, Message: ErrNotFound.Message}
	default:
		return &ClientError{Type: errType, StatusCode: resp.StatusCode, Message: FallbackErrorMessage}
	}
}

// =============================================================================
// COMPLETION
// =============================================================================

// Chat sends one user turn and returns the assistant reply. sessionID is
// empty for the first turn of a conversation; the reply carries the
// server-assigned session id either way.
func (c *Client) Chat(ctx context.Context, sessionID, content string) (*ChatResponse, error) {
	req := ChatRequest{
		Message: ChatMessage{Role: "user", Content: content},
	}
	if sessionID != "" {
		req.SessionID = &sessionID
	}

	var result ChatResponse
	if err := c.do(ctx, http.MethodPost, c.ragPath(), req, &result); err != nil {
		return nil, err
	}
	if result.MessageID == "" {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "reply is missing a message id"}
	}
	return &result, nil
}

// =============================================================================
// CONVERSATION HISTORY
// =============================================================================

// ListConversations returns the user's stored conversations. A user with
// no history gets an empty slice, not an error.
func (c *Client) ListConversations(ctx context.Context, userID string) ([]ConversationSummary, error) {
	var result []ConversationSummary
	urlStr := c.ragPath("conversations", userID)
	if err := c.do(ctx, http.MethodGet, urlStr, nil, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = []ConversationSummary{}
	}
	return result, nil
}

// ListMessages returns the message records of one stored conversation.
func (c *Client) ListMessages(ctx context.Context, userID, sessionID string) ([]StoredMessage, error) {
	var result []StoredMessage
	urlStr := c.ragPath("conversations", userID, sessionID)
	if err := c.do(ctx, http.MethodGet, urlStr, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteConversation removes a stored conversation.
func (c *Client) DeleteConversation(ctx context.Context, userID, sessionID string) error {
	urlStr := c.ragPath("conversations", userID, sessionID)
	return c.do(ctx, http.MethodDelete, urlStr, nil, nil)
}

// =============================================================================
// FEEDBACK
// =============================================================================

// SendFeedback posts a feedback report.
func (c *Client) SendFeedback(ctx context.Context, report FeedbackRequest) error {
	urlStr := strings.TrimRight(c.config.BaseURL, "/") + "/feedback"
	return c.do(ctx, http.MethodPost, urlStr, report, nil)
}
