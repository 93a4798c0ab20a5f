package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"sieteymedio/pkg/playable/sieteymedio"
)

// DefaultQueue is the Redis list rounds are pushed to
const DefaultQueue = "sieteymedio:rounds"

// Connect returns a client for the Redis server after making sure it answers
func Connect(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("could not connect to Redis at %s: %w", addr, err)
	}

	return client, nil
}

// Redis pushes every completed round, as JSON, onto a Redis list
// Whatever consumes the list owns it; Redis never trims it.
type Redis struct {
	client redis.Cmdable
	queue  string
	logger logrus.FieldLogger
}

// NewRedis returns a recorder that pushes to the queue
func NewRedis(client redis.Cmdable, queue string, logger logrus.FieldLogger) *Redis {
	if queue == "" {
		queue = DefaultQueue
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Redis{
		client: client,
		queue:  queue,
		logger: logger,
	}
}

// RecordRound pushes the round to the end of the queue
func (r *Redis) RecordRound(ctx context.Context, result *sieteymedio.RoundResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal round %d: %w", result.Round, err)
	}

	length, err := r.client.RPush(ctx, r.queue, data).Result()
	if err != nil {
		return fmt.Errorf("could not push to Redis list %s: %w", r.queue, err)
	}

	r.logger.WithFields(logrus.Fields{
		"queue":  r.queue,
		"round":  result.Round,
		"length": length,
	}).Debug("round pushed")
	return nil
}

// ListRounds returns a page of the pushed rounds, most recent first
func (r *Redis) ListRounds(ctx context.Context, offset int64, limit int) ([]*sieteymedio.RoundResult, error) {
	if limit <= 0 {
		return []*sieteymedio.RoundResult{}, nil
	}

	return r.lrange(ctx, -(offset + int64(limit)), -(offset + 1))
}

// ListRoundsWonBy returns a page of the pushed rounds won by the player, most recent first
// The whole queue is read: Redis cannot filter a list.
func (r *Redis) ListRoundsWonBy(ctx context.Context, nickname string, offset int64, limit int) ([]*sieteymedio.RoundResult, error) {
	all, err := r.lrange(ctx, 0, -1)
	if err != nil {
		return nil, err
	}

	won := make([]*sieteymedio.RoundResult, 0)
	for _, result := range all {
		if result.HasWinner() && result.Winner == nickname {
			won = append(won, result)
		}
	}

	return page(won, offset, limit), nil
}

// lrange decodes the rounds between start and stop, most recent first
func (r *Redis) lrange(ctx context.Context, start, stop int64) ([]*sieteymedio.RoundResult, error) {
	items, err := r.client.LRange(ctx, r.queue, start, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("could not read Redis list %s: %w", r.queue, err)
	}

	results := make([]*sieteymedio.RoundResult, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		var result sieteymedio.RoundResult
		if err := json.Unmarshal([]byte(items[i]), &result); err != nil {
			return nil, err
		}

		results = append(results, &result)
	}

	return results, nil
}
