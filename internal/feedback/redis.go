package feedback

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each task's counters in one hash, taskrank:feedback:{id}.
// HINCRBY is atomic on the server.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// OpenRedis connects to redisURL and checks the connection.
func OpenRedis(ctx context.Context, redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return NewRedisStore(client), nil
}

func redisKey(taskID string) string {
	return "taskrank:feedback:" + taskID
}

func (s *RedisStore) Increment(ctx context.Context, taskID, label string) (Counts, error) {
	id, l, err := validate(taskID, label)
	if err != nil {
		return Counts{}, err
	}

	key := redisKey(id)
	pipe := s.client.TxPipeline()
	pipe.HIncrBy(ctx, key, l, 1)
	all := pipe.HGetAll(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return Counts{}, fmt.Errorf("increment feedback for %s: %w", id, err)
	}
	return parseCounts(all.Val())
}

func (s *RedisStore) Get(ctx context.Context, taskID string) (Counts, error) {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return Counts{}, ErrMissingTaskID
	}

	// HGETALL on a missing key yields an empty hash, i.e. zero counts.
	vals, err := s.client.HGetAll(ctx, redisKey(taskID)).Result()
	if err != nil {
		return Counts{}, fmt.Errorf("get feedback for %s: %w", taskID, err)
	}
	return parseCounts(vals)
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func parseCounts(vals map[string]string) (Counts, error) {
	var c Counts
	for field, dst := range map[string]*int64{LabelHelpful: &c.Helpful, LabelDone: &c.Done} {
		raw, ok := vals[field]
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Counts{}, fmt.Errorf("parse %s counter: %w", field, err)
		}
		*dst = n
	}
	return c, nil
}
