package database

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient connects to Redis using a URL of the form
// redis://[:password@]host:port/db and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// PublishBoardEvent publishes a serialized board event to the given channel
func PublishBoardEvent(ctx context.Context, client *redis.Client, channel string, payload []byte) error {
	return client.Publish(ctx, channel, payload).Err()
}

// SubscribeBoardEvents subscribes to board events. The caller owns the
// returned PubSub and must close it.
func SubscribeBoardEvents(ctx context.Context, client *redis.Client, channel string) *redis.PubSub {
	return client.Subscribe(ctx, channel)
}
