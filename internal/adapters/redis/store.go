// Package redis provides a redis-backed chat history store for deployments
// where history should outlive a single process.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/foliolabs/folio/pkg/domain"
	"github.com/foliolabs/folio/pkg/ports"
)

// Store implements ports.MessageStore using Redis.
// Each session is a list of JSON-encoded messages; ids come from a shared
// INCR counter so they stay unique and monotonic across sessions.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for session history.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for session history.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "folio:chat:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *Store) counterKey() string {
	return s.prefix + "next-id"
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Append records a new turn and returns it with its assigned id.
func (s *Store) Append(ctx context.Context, role domain.Role, content, sessionID string) (domain.Message, error) {
	id, err := s.client.Incr(ctx, s.counterKey()).Result()
	if err != nil {
		return domain.Message{}, fmt.Errorf("failed to assign message id: %w", err)
	}

	msg := domain.Message{
		ID:        id,
		Role:      role,
		Content:   content,
		SessionID: sessionID,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return domain.Message{}, fmt.Errorf("failed to marshal message: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.RPush(ctx, s.key(sessionID), data)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.key(sessionID), s.ttl)
	}

	// Index (ZSET): score = expiry time, or far-future when no TTL is set.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: sessionID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return domain.Message{}, fmt.Errorf("failed to save to redis: %w", err)
	}

	return msg, nil
}

// Recent returns up to the last ports.HistoryLimit turns, oldest first.
func (s *Store) Recent(ctx context.Context, sessionID string) ([]domain.Message, error) {
	vals, err := s.client.LRange(ctx, s.key(sessionID), -int64(ports.HistoryLimit), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history from redis: %w", err)
	}

	msgs := make([]domain.Message, 0, len(vals))
	for _, val := range vals {
		var msg domain.Message
		if err := json.Unmarshal([]byte(val), &msg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal message: %w", err)
		}
		msgs = append(msgs, msg)
	}

	return msgs, nil
}

// Sessions returns active session ids via the ZSET index, pruning expired
// entries lazily.
func (s *Store) Sessions(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired sessions: %w", err)
	}

	sessions, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return sessions, nil
}

// Clear removes the session history and its index entry.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	deleted, err := s.client.Del(ctx, s.key(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if deleted == 0 {
		return domain.ErrSessionNotFound
	}

	return s.client.ZRem(ctx, s.indexKey(), sessionID).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
