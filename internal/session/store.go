// Package session keeps per-conversation state in a TTL key-value store:
// ordered history, the retained topic, and the last raw query.
package session

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_store.go -package=mocks klinik-ai/internal/session Store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// TTL is the lifetime of every session record. It is refreshed on every
// write and never on read: an idle conversation expires 24h after its last
// turn regardless of how often it is re-read.
const TTL = 24 * time.Hour

// Turn is one history entry.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// State is the full conversation state for a session. Absent sessions read
// as the zero State.
type State struct {
	History   []Turn
	Topic     string
	LastQuery string
}

// Store is the session-state contract the engine depends on.
type Store interface {
	// Load reads all three records. Missing keys yield neutral defaults,
	// never an error.
	Load(ctx context.Context, sessionID string) (State, error)
	// AppendHistory appends turns and rewrites the whole history record.
	AppendHistory(ctx context.Context, sessionID string, turns ...Turn) error
	// SetTopic replaces the topic record.
	SetTopic(ctx context.Context, sessionID string, topic string) error
	// SetLastQuery replaces the last-raw-query record.
	SetLastQuery(ctx context.Context, sessionID string, query string) error
	// Delete drops all records for a session.
	Delete(ctx context.Context, sessionID string) error
}

// RedisStore implements Store on a redis client.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore creates a RedisStore with the standard TTL.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: TTL}
}

// Health verifies the backing redis responds.
func (s *RedisStore) Health(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func historyKey(id string) string { return "assistant:session:" + id + ":history" }
func topicKey(id string) string   { return "assistant:session:" + id + ":topic" }
func lastKey(id string) string    { return "assistant:session:" + id + ":lastq" }

// Load reads the three session records. Reads do not touch TTLs.
func (s *RedisStore) Load(ctx context.Context, sessionID string) (State, error) {
	var state State

	raw, err := s.rdb.Get(ctx, historyKey(sessionID)).Result()
	switch {
	case err == nil:
		if err := json.Unmarshal([]byte(raw), &state.History); err != nil {
			return State{}, fmt.Errorf("corrupt session history: %w", err)
		}
	case errors.Is(err, redis.Nil):
	default:
		return State{}, fmt.Errorf("failed to read session history: %w", err)
	}

	topic, err := s.rdb.Get(ctx, topicKey(sessionID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return State{}, fmt.Errorf("failed to read session topic: %w", err)
	}
	state.Topic = topic

	last, err := s.rdb.Get(ctx, lastKey(sessionID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return State{}, fmt.Errorf("failed to read session last query: %w", err)
	}
	state.LastQuery = last

	return state, nil
}

// AppendHistory reads the current history, appends the turns and writes the
// whole value back with a fresh TTL. Concurrent turns in one session race
// last-write-wins; a human user is assumed single-threaded.
func (s *RedisStore) AppendHistory(ctx context.Context, sessionID string, turns ...Turn) error {
	if len(turns) == 0 {
		return nil
	}

	var history []Turn
	raw, err := s.rdb.Get(ctx, historyKey(sessionID)).Result()
	switch {
	case err == nil:
		if err := json.Unmarshal([]byte(raw), &history); err != nil {
			// A corrupt record is replaced rather than kept poisoned.
			history = nil
		}
	case errors.Is(err, redis.Nil):
	default:
		return fmt.Errorf("failed to read session history: %w", err)
	}

	history = append(history, turns...)
	encoded, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode session history: %w", err)
	}
	if err := s.rdb.Set(ctx, historyKey(sessionID), encoded, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session history: %w", err)
	}
	return nil
}

// SetTopic replaces the topic record with a fresh TTL.
func (s *RedisStore) SetTopic(ctx context.Context, sessionID string, topic string) error {
	if err := s.rdb.Set(ctx, topicKey(sessionID), topic, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session topic: %w", err)
	}
	return nil
}

// SetLastQuery replaces the last-raw-query record with a fresh TTL.
func (s *RedisStore) SetLastQuery(ctx context.Context, sessionID string, query string) error {
	if err := s.rdb.Set(ctx, lastKey(sessionID), query, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session last query: %w", err)
	}
	return nil
}

// Delete drops every record of the session.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, historyKey(sessionID), topicKey(sessionID), lastKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
