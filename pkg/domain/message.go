package domain

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn in a session's chat history.
// Messages are immutable once created; ids are assigned by the store and are
// monotonically increasing for the life of the store instance.
type Message struct {
	ID        int64  `json:"id"`
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	SessionID string `json:"sessionId"`
}

// ToolCall represents an action the assistant selected for the current turn.
// Compatible with OpenAI tool call schemas: Args is the decoded form of the
// JSON-encoded arguments string returned by the model.
type ToolCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// ChatRequest is the inbound payload for one chat turn.
// Context carries the visible page text the client extracted from the DOM.
type ChatRequest struct {
	Message   string `json:"message"`
	Context   string `json:"context"`
	SessionID string `json:"sessionId"`
}

// ChatResponse is the outcome of one chat turn: the assistant's text and at
// most one tool call for the client to execute.
type ChatResponse struct {
	Response string    `json:"response,omitempty"`
	ToolCall *ToolCall `json:"toolCall,omitempty"`
}
