package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore connects to url (redis://[:password@]host:port/db) and pings it.
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{rdb: rdb}, nil
}

func NewRedisStoreFromClient(rdb *redis.Client) *RedisStore { return &RedisStore{rdb: rdb} }

func (s *RedisStore) Create(ctx context.Context, userID uint, ttl time.Duration) (string, error) {
	sid := uuid.NewString()
	if err := s.rdb.Set(ctx, keyPrefix+sid, strconv.FormatUint(uint64(userID), 10), ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return sid, nil
}

func (s *RedisStore) Lookup(ctx context.Context, sid string) (uint, error) {
	val, err := s.rdb.Get(ctx, keyPrefix+sid).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNoSession
	}
	if err != nil {
		return 0, fmt.Errorf("load session: %w", err)
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session %s: %w", sid, err)
	}
	return uint(id), nil
}

func (s *RedisStore) Destroy(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, keyPrefix+sid).Err()
}

func (s *RedisStore) Close() error { return s.rdb.Close() }
