// Package dispatch executes tool invocations selected by the assistant.
//
// It is the bridge between the chat-turn protocol and the live page: each
// invocation is decoded into typed arguments and routed to exactly one
// ports.ToolRunner action. Unrecognized tool names are logged and ignored,
// never fatal.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/foliolabs/folio/internal/logging"
	"github.com/foliolabs/folio/pkg/catalog"
	"github.com/foliolabs/folio/pkg/domain"
	"github.com/foliolabs/folio/pkg/ports"
)

// DefaultScrollAmount is the scroll magnitude used when the model omits one.
const DefaultScrollAmount = 600

type scrollArgs struct {
	Direction string  `mapstructure:"direction"`
	Amount    float64 `mapstructure:"amount"`
}

type navigateArgs struct {
	SectionID string `mapstructure:"sectionId"`
}

type selectorArgs struct {
	Selector string `mapstructure:"selector"`
}

type inputArgs struct {
	Selector string `mapstructure:"selector"`
	Text     string `mapstructure:"text"`
}

// Dispatcher routes tool calls to a ToolRunner.
type Dispatcher struct {
	runner ports.ToolRunner
	logger *slog.Logger
}

// Option configures the Dispatcher.
type Option func(*Dispatcher)

// WithLogger configures a logger for dispatch events.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// New creates a Dispatcher driving the given runner.
func New(runner ports.ToolRunner, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		runner: runner,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch executes one tool invocation. Unknown tool names are logged and
// ignored; argument decode failures and runner errors are returned.
func (d *Dispatcher) Dispatch(ctx context.Context, call domain.ToolCall) error {
	d.logger.Debug("Executing tool", "tool", call.Name, "args", call.Args)

	switch call.Name {
	case catalog.ToolScroll:
		var args scrollArgs
		if err := decode(call, &args); err != nil {
			return err
		}
		if args.Amount == 0 {
			args.Amount = DefaultScrollAmount
		}
		return d.runner.Scroll(ctx, args.Direction, args.Amount)

	case catalog.ToolNavigateTo:
		var args navigateArgs
		if err := decode(call, &args); err != nil {
			return err
		}
		return d.runner.NavigateTo(ctx, strings.TrimPrefix(args.SectionID, "#"))

	case catalog.ToolHighlightElement:
		var args selectorArgs
		if err := decode(call, &args); err != nil {
			return err
		}
		return d.runner.HighlightElement(ctx, args.Selector)

	case catalog.ToolClickElement:
		var args selectorArgs
		if err := decode(call, &args); err != nil {
			return err
		}
		return d.runner.ClickElement(ctx, args.Selector)

	case catalog.ToolInputText:
		var args inputArgs
		if err := decode(call, &args); err != nil {
			return err
		}
		return d.runner.InputText(ctx, args.Selector, args.Text)

	default:
		d.logger.Warn("Unknown tool", "tool", call.Name)
		return nil
	}
}

func decode(call domain.ToolCall, out any) error {
	if err := mapstructure.Decode(call.Args, out); err != nil {
		return fmt.Errorf("decode %s arguments: %w", call.Name, err)
	}
	return nil
}
