package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"messageboard/internal/model"
)

// MessageCache keeps the full message list and single messages in Redis.
// The list is stored under a generation number that every write bumps, so a
// reader that raced a write can only populate a generation nobody reads.
type MessageCache struct {
	client     *redisv9.Client
	prefix     string
	messageTTL time.Duration
	listTTL    time.Duration
}

func NewMessageCache(client *redisv9.Client, prefix string, messageTTL, listTTL time.Duration) *MessageCache {
	if prefix == "" {
		prefix = "messageboard"
	}
	if messageTTL <= 0 {
		messageTTL = 5 * time.Minute
	}
	if listTTL <= 0 {
		listTTL = 30 * time.Second
	}
	return &MessageCache{
		client:     client,
		prefix:     prefix,
		messageTTL: messageTTL,
		listTTL:    listTTL,
	}
}

// ListGeneration returns the current list generation, zero before any write.
func (c *MessageCache) ListGeneration(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.generationKey()).Int64()
	if errors.Is(err, redisv9.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get list generation failed: %w", err)
	}
	return gen, nil
}

// BumpGeneration retires every cached list.
func (c *MessageCache) BumpGeneration(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.generationKey()).Err(); err != nil {
		return fmt.Errorf("redis bump list generation failed: %w", err)
	}
	return nil
}

func (c *MessageCache) GetAll(ctx context.Context, generation int64) ([]model.Message, bool, error) {
	raw, err := c.client.Get(ctx, c.listKey(generation)).Bytes()
	if errors.Is(err, redisv9.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get message list failed: %w", err)
	}

	messages := make([]model.Message, 0)
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached message list failed: %w", err)
	}
	return messages, true, nil
}

func (c *MessageCache) SetAll(ctx context.Context, generation int64, messages []model.Message) error {
	payload, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("marshal message list cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.listKey(generation), payload, c.listTTL).Err(); err != nil {
		return fmt.Errorf("redis set message list failed: %w", err)
	}
	return nil
}

func (c *MessageCache) Get(ctx context.Context, id string) (*model.Message, bool, error) {
	raw, err := c.client.Get(ctx, c.messageKey(id)).Bytes()
	if errors.Is(err, redisv9.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get message failed: %w", err)
	}

	var message model.Message
	if err := json.Unmarshal(raw, &message); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached message failed: %w", err)
	}
	return &message, true, nil
}

// Set caches a single message. Messages never change, so an entry is valid
// for as long as it lives.
func (c *MessageCache) Set(ctx context.Context, message model.Message) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal message cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.messageKey(message.ID), payload, c.messageTTL).Err(); err != nil {
		return fmt.Errorf("redis set message failed: %w", err)
	}
	return nil
}

func (c *MessageCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *MessageCache) listKey(generation int64) string {
	return fmt.Sprintf("%s:messages:all:%d", c.prefix, generation)
}

func (c *MessageCache) generationKey() string {
	return c.prefix + ":messages:generation"
}

func (c *MessageCache) messageKey(id string) string {
	return fmt.Sprintf("%s:messages:id:%s", c.prefix, id)
}

