package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrInvalidRequest is returned when a chat request is missing one of its
// required fields (message, context, sessionId).
var ErrInvalidRequest = errors.New("missing required fields: message, context, sessionId")

// ErrNotConfigured is returned when the completion service credentials are absent.
var ErrNotConfigured = errors.New("OPENAI_API_KEY environment variable is not set")

// ErrUpstream wraps failures of the completion service, including malformed
// tool-call arguments in its response.
var ErrUpstream = errors.New("completion service failure")
