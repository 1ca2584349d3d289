package session

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisStore_BadURL(t *testing.T) {
	_, err := NewRedisStore(context.Background(), "http://not-redis")
	assert.Error(t, err)
}

func TestRedisStore_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisStore(ctx, "redis://127.0.0.1:1/0")
	assert.Error(t, err)

	s := NewRedisStoreFromClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1}))
	defer s.Close()

	_, err = s.Lookup(ctx, "abc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession, "a store outage is not an anonymous session")

	_, err = s.Create(ctx, 1, time.Minute)
	assert.Error(t, err)
}
