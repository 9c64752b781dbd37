// Package openai adapts the OpenAI chat-completions API to the ports.Completer
// interface.
package openai

import (
	"context"
	"encoding/json"
	"fmt"

	backend "github.com/sashabaranov/go-openai"

	"github.com/foliolabs/folio/pkg/domain"
	"github.com/foliolabs/folio/pkg/ports"
)

// DefaultModel is the completion model used unless overridden.
const DefaultModel = backend.GPT4o

// Completer implements ports.Completer over the OpenAI API.
type Completer struct {
	client *backend.Client
	model  string
}

// Option configures the Completer.
type Option func(*Completer)

// WithModel overrides the completion model.
func WithModel(model string) Option {
	return func(c *Completer) {
		c.model = model
	}
}

// WithBaseURL points the client at an OpenAI-compatible endpoint.
func WithBaseURL(apiKey, baseURL string) Option {
	return func(c *Completer) {
		cfg := backend.DefaultConfig(apiKey)
		cfg.BaseURL = baseURL
		c.client = backend.NewClientWithConfig(cfg)
	}
}

// New creates a Completer for the given API key.
func New(apiKey string, opts ...Option) *Completer {
	c := &Completer{
		client: backend.NewClient(apiKey),
		model:  DefaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete performs one chat-completion round trip: system instruction, the
// ordered history, and the tool catalog with automatic tool selection. The
// first tool call of the single returned choice wins; its JSON-encoded
// arguments are decoded before the result is returned.
func (c *Completer) Complete(ctx context.Context, req ports.CompletionRequest) (ports.Completion, error) {
	messages := make([]backend.ChatCompletionMessage, 0, len(req.History)+1)
	messages = append(messages, backend.ChatCompletionMessage{
		Role:    backend.ChatMessageRoleSystem,
		Content: req.System,
	})
	for _, msg := range req.History {
		messages = append(messages, backend.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	tools := make([]backend.Tool, 0, len(req.Tools))
	for _, def := range req.Tools {
		tools = append(tools, backend.Tool{
			Type: backend.ToolTypeFunction,
			Function: &backend.FunctionDefinition{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.Parameters,
			},
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, backend.ChatCompletionRequest{
		Model:      c.model,
		Messages:   messages,
		Tools:      tools,
		ToolChoice: "auto",
	})
	if err != nil {
		return ports.Completion{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return ports.Completion{}, fmt.Errorf("chat completion: %w: empty choices", domain.ErrUpstream)
	}

	choice := resp.Choices[0]
	out := ports.Completion{Text: choice.Message.Content}

	if len(choice.Message.ToolCalls) > 0 {
		call := choice.Message.ToolCalls[0]
		args := map[string]any{}
		if call.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
				return ports.Completion{}, fmt.Errorf("%w: malformed tool arguments for %s: %v",
					domain.ErrUpstream, call.Function.Name, err)
			}
		}
		out.ToolCall = &domain.ToolCall{
			Name: call.Function.Name,
			Args: args,
		}
	}

	return out, nil
}
