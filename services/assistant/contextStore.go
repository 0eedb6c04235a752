// File: services/assistant/contextStore.go
package assistant

import (
	"context"
	"encoding/json"
	"time"

	"glowdesk/models"

	"github.com/go-redis/redis/v8"
)

const assistantContextPrefix = "assistant:ctx:"

// maxHistoryTurns bounds how much of the conversation is replayed into the
// model on each turn.
const maxHistoryTurns = 20

// RedisContextStore keeps the recent message history per conversation so the
// model sees context without the messaging layer having to replay it.
type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

func (s *RedisContextStore) History(ctx context.Context, conversationID string) ([]models.ConversationMessage, error) {
	key := assistantContextPrefix + conversationID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var history []models.ConversationMessage
	if err := json.Unmarshal([]byte(data), &history); err != nil {
		return nil, err
	}
	return history, nil
}

func (s *RedisContextStore) Append(ctx context.Context, conversationID string, msg models.ConversationMessage) error {
	history, err := s.History(ctx, conversationID)
	if err != nil {
		return err
	}
	history = append(history, msg)
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	b, err := json.Marshal(history)
	if err != nil {
		return err
	}
	key := assistantContextPrefix + conversationID
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisContextStore) Clear(ctx context.Context, conversationID string) error {
	key := assistantContextPrefix + conversationID
	return s.client.Del(ctx, key).Err()
}
