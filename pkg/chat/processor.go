// Package chat implements the chat-turn protocol: one request/response cycle
// of the portfolio assistant, from inbound user message to normalized
// response with at most one tool invocation.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/foliolabs/folio/internal/logging"
	"github.com/foliolabs/folio/pkg/catalog"
	"github.com/foliolabs/folio/pkg/domain"
	"github.com/foliolabs/folio/pkg/ports"
)

// DefaultTimeout bounds the completion-service call. The call is the sole
// suspension point of a turn; without a deadline a stuck upstream would hang
// the request forever.
const DefaultTimeout = 30 * time.Second

// Processor orchestrates one chat turn: append the user message, read the
// bounded history, call the completion service with the tool catalog, apply
// the fallback-text policy, append the assistant reply, and return the
// normalized result.
//
// The fallback policy is server-side: the response text is always non-empty.
// When the model returns a tool call without text, a deterministic sentence
// keyed by tool name is synthesized (see catalog.FallbackText); clients never
// have to invent text of their own.
type Processor struct {
	store     ports.MessageStore
	completer ports.Completer
	logger    *slog.Logger
	timeout   time.Duration
}

// Option configures the Processor.
type Option func(*Processor)

// WithLogger configures a logger for turn-level events.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithTimeout overrides the completion-call deadline. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Processor) {
		p.timeout = timeout
	}
}

// NewProcessor creates a Processor. completer may be nil when no credentials
// are configured; ProcessTurn then fails with domain.ErrNotConfigured.
func NewProcessor(store ports.MessageStore, completer ports.Completer, opts ...Option) *Processor {
	p := &Processor{
		store:     store,
		completer: completer,
		logger:    logging.NewNop(),
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ready reports whether a completion service is configured.
func (p *Processor) Ready() bool {
	return p.completer != nil
}

// ProcessTurn runs one full turn for the request.
//
// Ordering guarantee: the user turn is appended before the completion call,
// and the assistant turn before the response is returned. On upstream failure
// the cycle aborts with only the user turn recorded; the user's input is
// never silently lost.
func (p *Processor) ProcessTurn(ctx context.Context, req domain.ChatRequest) (domain.ChatResponse, error) {
	if req.Message == "" || req.Context == "" || req.SessionID == "" {
		return domain.ChatResponse{}, domain.ErrInvalidRequest
	}
	if p.completer == nil {
		return domain.ChatResponse{}, domain.ErrNotConfigured
	}

	if _, err := p.store.Append(ctx, domain.RoleUser, req.Message, req.SessionID); err != nil {
		return domain.ChatResponse{}, fmt.Errorf("append user turn: %w", err)
	}

	history, err := p.store.Recent(ctx, req.SessionID)
	if err != nil {
		return domain.ChatResponse{}, fmt.Errorf("read history: %w", err)
	}

	callCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	completion, err := p.completer.Complete(callCtx, ports.CompletionRequest{
		System:  SystemPrompt(req.Context),
		History: history,
		Tools:   catalog.Tools(),
	})
	if err != nil {
		p.logger.Error("Completion failed", "session_id", req.SessionID, "err", err)
		return domain.ChatResponse{}, fmt.Errorf("completion: %w", err)
	}

	responseText := completion.Text
	if completion.ToolCall != nil && responseText == "" {
		responseText = catalog.FallbackText(completion.ToolCall.Name, completion.ToolCall.Args)
	}

	if _, err := p.store.Append(ctx, domain.RoleAssistant, responseText, req.SessionID); err != nil {
		return domain.ChatResponse{}, fmt.Errorf("append assistant turn: %w", err)
	}

	if completion.ToolCall != nil {
		p.logger.Info("Tool selected",
			"session_id", req.SessionID,
			"tool", completion.ToolCall.Name,
		)
	}

	return domain.ChatResponse{
		Response: responseText,
		ToolCall: completion.ToolCall,
	}, nil
}
