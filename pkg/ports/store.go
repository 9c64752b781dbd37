package ports

import (
	"context"

	"github.com/foliolabs/folio/pkg/domain"
)

// HistoryLimit is the maximum number of turns Recent returns for a session.
const HistoryLimit = 20

// MessageStore defines the interface for persisting chat history.
// Implementations must serialize id assignment so that ids are unique and
// monotonically increasing across all sessions for the life of the store.
type MessageStore interface {
	// Append records a new turn for the session and returns it with its
	// assigned id.
	Append(ctx context.Context, role domain.Role, content, sessionID string) (domain.Message, error)

	// Recent returns up to the last HistoryLimit turns for the session in
	// insertion order, oldest first. An unknown session yields an empty
	// slice, not an error.
	Recent(ctx context.Context, sessionID string) ([]domain.Message, error)

	// Sessions lists the session ids currently holding history.
	Sessions(ctx context.Context) ([]string, error)

	// Clear removes all history for a session.
	// Returns domain.ErrSessionNotFound if the session has no turns.
	Clear(ctx context.Context, sessionID string) error
}
