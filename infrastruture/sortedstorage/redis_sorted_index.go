package sortedstorage

import (
	"context"
	"time"

	"github.com/beka-birhanu/vinom-mazeview/service/i"
	"github.com/redis/go-redis/v9"
)

// RedisSortedIndex manages a score-ordered set in Redis with TTL support.
type RedisSortedIndex struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSortedIndex initializes a RedisSortedIndex with the provided Redis client and TTL.
func NewRedisSortedIndex(client *redis.Client, ttlSeconds int) (i.SortedIndex, error) {
	return &RedisSortedIndex{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}, nil
}

// Push adds a member with a given score and sets expiration if necessary.
func (rsi *RedisSortedIndex) Push(ctx context.Context, key string, score float64, member string) error {
	_, err := rsi.client.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Result()
	if err != nil {
		return err
	}

	// Set expiration only if it's not already set
	ttl, err := rsi.client.TTL(ctx, key).Result()
	if err == nil && ttl == -1 {
		_ = rsi.client.Expire(ctx, key, rsi.ttl).Err()
	}

	return nil
}

// Latest retrieves up to n members with the highest scores.
func (rsi *RedisSortedIndex) Latest(ctx context.Context, key string, n int64) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	return rsi.client.ZRevRange(ctx, key, 0, n-1).Result()
}

// Count returns the number of members under key.
func (rsi *RedisSortedIndex) Count(ctx context.Context, key string) int64 {
	return rsi.client.ZCard(ctx, key).Val()
}
