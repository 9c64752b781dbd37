package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliolabs/folio/internal/adapters/redis"
	"github.com/foliolabs/folio/pkg/domain"
	"github.com/foliolabs/folio/pkg/ports"
)

func newTestStore(t *testing.T, opts ...redis.Option) *redis.Store {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return redis.NewFromClient(client, opts...)
}

func TestRedisStore_Contract(t *testing.T) {
	store := newTestStore(t)
	ports.RunMessageStoreContract(t, store)
}

func TestRedisStore_TTLSetOnAppend(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redis.NewFromClient(client, redis.WithTTL(time.Minute), redis.WithPrefix("test:chat:"))

	ctx := context.Background()
	_, err = store.Append(ctx, domain.RoleUser, "hello", "ttl-session")
	require.NoError(t, err)

	ttl := client.TTL(ctx, "test:chat:ttl-session").Val()
	assert.Greater(t, ttl, time.Duration(0), "session key should carry a TTL")

	// After the TTL passes the session disappears from reads.
	mr.FastForward(2 * time.Minute)
	msgs, err := store.Recent(ctx, "ttl-session")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
