package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pfrederiksen/cpbl-games/internal/game"
)

// DefaultRedisPrefix namespaces record keys
const DefaultRedisPrefix = "cpbl:game:"

// RedisStore keeps records in Redis/Valkey as JSON strings
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore connects to a redis:// URL and verifies the connection
func NewRedisStore(redisURL, prefix string) (*RedisStore, error) {
	if redisURL == "" {
		return nil, errors.New("redis cache requires a redis URL")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisStoreWithClient(client, prefix), nil
}

// NewRedisStoreWithClient wraps an existing client
func NewRedisStoreWithClient(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) prefixKey(url string) string {
	return s.prefix + url
}

// Load returns the cached record for url
func (s *RedisStore) Load(ctx context.Context, url string) (game.Record, bool, error) {
	data, err := s.client.Get(ctx, s.prefixKey(url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return game.Record{}, false, nil
	}
	if err != nil {
		return game.Record{}, false, fmt.Errorf("redis get: %w", err)
	}

	var rec game.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return game.Record{}, false, fmt.Errorf("decoding cached record: %w", err)
	}
	return rec, true, nil
}

// Save stores rec without expiry
func (s *RedisStore) Save(ctx context.Context, url string, rec game.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	if err := s.client.Set(ctx, s.prefixKey(url), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
