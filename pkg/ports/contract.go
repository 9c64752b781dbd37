package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/foliolabs/folio/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunMessageStoreContract runs a suite of tests to verify that a MessageStore
// implementation adheres to the defined interface contract.
func RunMessageStoreContract(t *testing.T, store MessageStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Append and Recent", func(t *testing.T) {
		first, err := store.Append(ctx, domain.RoleUser, "hello", sessionID)
		require.NoError(t, err, "Append should not return error")
		assert.Equal(t, domain.RoleUser, first.Role)
		assert.Equal(t, "hello", first.Content)
		assert.Equal(t, sessionID, first.SessionID)

		second, err := store.Append(ctx, domain.RoleAssistant, "hi there", sessionID)
		require.NoError(t, err)
		assert.Greater(t, second.ID, first.ID, "ids must be monotonically increasing")

		msgs, err := store.Recent(ctx, sessionID)
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Equal(t, "hello", msgs[0].Content, "Recent must preserve insertion order")
		assert.Equal(t, "hi there", msgs[1].Content)
	})

	t.Run("Recent Caps At HistoryLimit", func(t *testing.T) {
		id := sessionID + "-cap"
		for i := 0; i < HistoryLimit+5; i++ {
			_, err := store.Append(ctx, domain.RoleUser, fmt.Sprintf("msg-%d", i), id)
			require.NoError(t, err)
		}

		msgs, err := store.Recent(ctx, id)
		require.NoError(t, err)
		require.Len(t, msgs, HistoryLimit)
		// Oldest of the retained window, not of the whole history.
		assert.Equal(t, "msg-5", msgs[0].Content)
		assert.Equal(t, fmt.Sprintf("msg-%d", HistoryLimit+4), msgs[len(msgs)-1].Content)
	})

	t.Run("Session Isolation", func(t *testing.T) {
		idA := sessionID + "-a"
		idB := sessionID + "-b"
		_, err := store.Append(ctx, domain.RoleUser, "only in a", idA)
		require.NoError(t, err)
		_, err = store.Append(ctx, domain.RoleUser, "only in b", idB)
		require.NoError(t, err)

		msgsA, err := store.Recent(ctx, idA)
		require.NoError(t, err)
		require.Len(t, msgsA, 1)
		assert.Equal(t, "only in a", msgsA[0].Content)

		msgsB, err := store.Recent(ctx, idB)
		require.NoError(t, err)
		require.Len(t, msgsB, 1)
		assert.Equal(t, "only in b", msgsB[0].Content)
	})

	t.Run("Recent Unknown Session", func(t *testing.T) {
		msgs, err := store.Recent(ctx, "unknown-"+sessionID)
		require.NoError(t, err, "unknown sessions are empty, not an error")
		assert.Empty(t, msgs)
	})

	t.Run("Sessions and Clear", func(t *testing.T) {
		id := sessionID + "-clear"
		_, err := store.Append(ctx, domain.RoleUser, "ephemeral", id)
		require.NoError(t, err)

		sessions, err := store.Sessions(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id)

		err = store.Clear(ctx, id)
		require.NoError(t, err, "Clear should not return error")

		msgs, err := store.Recent(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, msgs, "Recent after Clear should be empty")

		err = store.Clear(ctx, id)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Clear on an empty session should return ErrSessionNotFound")
	})
}
