/*
Package ports defines the driven ports (interfaces) for the folio assistant.

These interfaces decouple the chat-turn processor from external
implementations, allowing the assistant to work with various history backends,
completion services, and tool executors.

# Key Interfaces

  - MessageStore: Responsible for persisting and reading session chat history.
  - Completer: The external language-model completion service.
  - PortfolioSource: Provides the static portfolio content.
  - ToolRunner: Executes co-browsing side effects against a live page.
*/
package ports
