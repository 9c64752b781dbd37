package folio_test

import (
	"context"
	"fmt"
	"log"

	"github.com/foliolabs/folio"
	"github.com/foliolabs/folio/pkg/domain"
	"github.com/foliolabs/folio/pkg/ports"
)

// cannedCompleter returns a fixed completion. Real programs use the
// OpenAI adapter; tests and examples inject their own.
type cannedCompleter struct{}

func (cannedCompleter) Complete(ctx context.Context, req ports.CompletionRequest) (ports.Completion, error) {
	return ports.Completion{
		ToolCall: &domain.ToolCall{Name: "navigateTo", Args: map[string]any{"sectionId": "#projects"}},
	}, nil
}

// ExampleNew_library demonstrates how to use folio purely as a Go library,
// injecting a custom completion backend instead of calling OpenAI.
func ExampleNew_library() {
	// 1. Build an assistant with an injected completer.
	// No API key needed ("") because we are providing the backend.
	assistant := folio.New("", folio.WithCompleter(cannedCompleter{}))

	// 2. Run one conversation turn.
	ctx := context.Background()
	resp, err := assistant.Chat(ctx, domain.ChatRequest{
		Message:   "Show me your projects",
		Context:   "Portfolio home page",
		SessionID: "example-session",
	})
	if err != nil {
		log.Fatal(err)
	}

	// 3. The reply carries the page action and a sentence for the visitor.
	fmt.Println(resp.Response)
	fmt.Println(resp.ToolCall.Name, resp.ToolCall.Args["sectionId"])

	// Output:
	// Sure! Taking you to the projects section.
	// navigateTo #projects
}
