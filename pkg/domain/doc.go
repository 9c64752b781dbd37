/*
Package domain contains the core domain models for the folio assistant.

It defines the entities exchanged across the chat-turn protocol: Messages in a
session's history, ToolCalls selected by the assistant, and the static
portfolio records. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Message: One role-tagged turn (user or assistant) in a session's history.
  - ToolCall: A concrete {name, args} action for the client to execute.
  - ChatRequest / ChatResponse: The wire contract of POST /api/chat.
  - Portfolio: The static content served by GET /api/portfolio.
*/
package domain
