package memory_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/foliolabs/folio/pkg/adapters/memory"
	"github.com/foliolabs/folio/pkg/domain"
	"github.com/foliolabs/folio/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunMessageStoreContract(t, store)
}

func TestMemoryStore_EvictsLeastRecentSession(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(memory.WithMaxSessions(2))

	_, err := store.Append(ctx, domain.RoleUser, "first", "s1")
	require.NoError(t, err)
	_, err = store.Append(ctx, domain.RoleUser, "second", "s2")
	require.NoError(t, err)

	// Touch s1 so s2 becomes the eviction candidate.
	_, err = store.Append(ctx, domain.RoleUser, "again", "s1")
	require.NoError(t, err)

	// A third session forces eviction of s2.
	_, err = store.Append(ctx, domain.RoleUser, "third", "s3")
	require.NoError(t, err)

	msgs, err := store.Recent(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, msgs, "least-recently-touched session should be evicted")

	msgs, err = store.Recent(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, msgs, 2, "recently touched session survives")
}

func TestMemoryStore_IDsSurviveEviction(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(memory.WithMaxSessions(1))

	var last int64
	for i := 0; i < 5; i++ {
		msg, err := store.Append(ctx, domain.RoleUser, "m", fmt.Sprintf("s%d", i))
		require.NoError(t, err)
		assert.Greater(t, msg.ID, last, "eviction must not reset the id counter")
		last = msg.ID
	}
}

func TestMemoryStore_ConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	const workers = 16
	const perWorker = 50

	done := make(chan struct{})
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer func() { done <- struct{}{} }()
			session := fmt.Sprintf("concurrent-%d", w)
			for i := 0; i < perWorker; i++ {
				if _, err := store.Append(ctx, domain.RoleUser, "m", session); err != nil {
					t.Error(err)
					return
				}
			}
		}(w)
	}
	for w := 0; w < workers; w++ {
		<-done
	}

	// Every id must be unique: the next assigned id equals total appends + 1.
	msg, err := store.Append(ctx, domain.RoleUser, "sentinel", "sentinel")
	require.NoError(t, err)
	assert.Equal(t, int64(workers*perWorker+1), msg.ID)
}
