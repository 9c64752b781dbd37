package ports

import (
	"context"

	"github.com/foliolabs/folio/pkg/catalog"
	"github.com/foliolabs/folio/pkg/domain"
)

// CompletionRequest carries everything the completion service needs for one
// turn: the system instruction, the ordered session history, and the tool
// catalog with automatic tool selection implied.
type CompletionRequest struct {
	System  string
	History []domain.Message
	Tools   []catalog.Definition
}

// Completion is the normalized model output for one turn: optional free text
// and at most one tool call. Both may be present; at least one always is for
// a well-behaved model, but neither is guaranteed.
type Completion struct {
	Text     string
	ToolCall *domain.ToolCall
}

// Completer defines the interface to the external language-model service.
type Completer interface {
	// Complete performs one chat-completion round trip.
	// Malformed tool-call arguments in the model's response are an error.
	Complete(ctx context.Context, req CompletionRequest) (Completion, error)
}
