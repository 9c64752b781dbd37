// Package folio is the high-level entry point for the folio assistant
// library. It wires a message store, a completion backend and the chat
// processor into a single Assistant that library consumers and the CLI
// share.
package folio

import (
	"context"
	"log/slog"
	"time"

	"github.com/foliolabs/folio/pkg/adapters/memory"
	"github.com/foliolabs/folio/pkg/adapters/openai"
	"github.com/foliolabs/folio/pkg/chat"
	"github.com/foliolabs/folio/pkg/domain"
	"github.com/foliolabs/folio/pkg/ports"
)

// Version is the folio release version. Overridden at build time via
// -ldflags "-X github.com/foliolabs/folio.Version=...".
var Version = "0.1.0"

// Assistant is the high-level entry point for the folio library.
// It wraps the chat processor and provides a simplified API for consumers.
type Assistant struct {
	store     ports.MessageStore
	completer ports.Completer
	portfolio ports.PortfolioSource
	processor *chat.Processor
	logger    *slog.Logger
	procOpts  []chat.Option
}

// Option defines a functional option for configuring the Assistant.
type Option func(*Assistant)

// WithStore injects a custom MessageStore, bypassing the default in-memory store.
func WithStore(s ports.MessageStore) Option {
	return func(a *Assistant) {
		a.store = s
	}
}

// WithCompleter injects a custom completion backend.
func WithCompleter(c ports.Completer) Option {
	return func(a *Assistant) {
		a.completer = c
	}
}

// WithPortfolioSource injects a custom portfolio source.
func WithPortfolioSource(p ports.PortfolioSource) Option {
	return func(a *Assistant) {
		a.portfolio = p
	}
}

// WithLogger sets a custom structured logger for the assistant.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) {
		a.logger = logger
		a.procOpts = append(a.procOpts, chat.WithLogger(logger))
	}
}

// WithTimeout bounds each completion call.
func WithTimeout(d time.Duration) Option {
	return func(a *Assistant) {
		a.procOpts = append(a.procOpts, chat.WithTimeout(d))
	}
}

// New initializes a new folio Assistant.
// By default it uses an in-memory message store and the seeded portfolio;
// apiKey may be empty, in which case chat turns fail with a configuration
// error until a completer is injected.
func New(apiKey string, opts ...Option) *Assistant {
	a := &Assistant{}

	for _, opt := range opts {
		opt(a)
	}

	if a.store == nil {
		a.store = memory.NewStore()
	}
	if a.portfolio == nil {
		a.portfolio = memory.NewPortfolioSource()
	}
	if a.completer == nil && apiKey != "" {
		a.completer = openai.New(apiKey)
	}

	a.processor = chat.NewProcessor(a.store, a.completer, a.procOpts...)
	return a
}

// Chat runs one conversation turn.
func (a *Assistant) Chat(ctx context.Context, req domain.ChatRequest) (domain.ChatResponse, error) {
	return a.processor.ProcessTurn(ctx, req)
}

// Portfolio returns the portfolio content served alongside the assistant.
func (a *Assistant) Portfolio(ctx context.Context) (domain.Portfolio, error) {
	return a.portfolio.Portfolio(ctx)
}

// History returns the recent messages for a session.
func (a *Assistant) History(ctx context.Context, sessionID string) ([]domain.Message, error) {
	return a.store.Recent(ctx, sessionID)
}

// Processor exposes the underlying turn processor for adapters that
// serve it directly (HTTP, MCP).
func (a *Assistant) Processor() *chat.Processor {
	return a.processor
}

// Store exposes the underlying message store.
func (a *Assistant) Store() ports.MessageStore {
	return a.store
}

// PortfolioSource exposes the underlying portfolio source.
func (a *Assistant) PortfolioSource() ports.PortfolioSource {
	return a.portfolio
}
