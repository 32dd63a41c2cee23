// Package publisher pushes import progress onto Redis streams so other
// processes (the websocket fanout, ops tooling) can follow a running
// backfill without polling the database.
package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alexanderkazanski/ufc-database/internal/ingest"
)

const (
	// ProgressStream carries running batch counters.
	ProgressStream = "ufc.import.progress"

	// EventStream carries per-event completion records.
	EventStream = "ufc.import.events"
)

// RedisStreamPublisher publishes import activity to Redis streams.
type RedisStreamPublisher struct {
	client *redis.Client
}

// NewRedisStreamPublisher creates a publisher from an existing client.
func NewRedisStreamPublisher(client *redis.Client) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
	}
}

// NewRedisStreamPublisherFromURL connects its own client.
func NewRedisStreamPublisherFromURL(redisURL string) (*RedisStreamPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStreamPublisher{
		client: client,
	}, nil
}

// Close closes the Redis connection.
func (rsp *RedisStreamPublisher) Close() error {
	return rsp.client.Close()
}

// PublishProgress publishes the batch counters accumulated so far.
func (rsp *RedisStreamPublisher) PublishProgress(ctx context.Context, counts ingest.Counts) error {
	data, err := json.Marshal(counts)
	if err != nil {
		return err
	}

	return rsp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: ProgressStream,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}

// PublishEventImported publishes one completed event import.
func (rsp *RedisStreamPublisher) PublishEventImported(ctx context.Context, eventName string, counts ingest.Counts) error {
	data, err := json.Marshal(map[string]interface{}{
		"event":  eventName,
		"counts": counts,
	})
	if err != nil {
		return err
	}

	return rsp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: EventStream,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
