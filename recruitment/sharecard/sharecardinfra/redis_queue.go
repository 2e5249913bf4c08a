package sharecardinfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/applymint/recruitment/sharecard"
	"github.com/redis/go-redis/v9"
)

// RedisQueue implements sharecard.Queue with a redis list for ready tasks
// and a sorted set, scored by due time, for delayed retries
type RedisQueue struct {
	client    redis.UniversalClient
	queueName string
	now       func() time.Time
}

// NewRedisQueue creates a new Redis-based queue
func NewRedisQueue(client redis.UniversalClient, queueName string) *RedisQueue {
	return &RedisQueue{
		client:    client,
		queueName: queueName,
		now:       time.Now,
	}
}

func (q *RedisQueue) delayedQueue() string {
	return q.queueName + ":delayed"
}

// Enqueue adds a task to the queue
func (q *RedisQueue) Enqueue(ctx context.Context, task *sharecard.Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal share card task %s: %w", task.ID, err)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue share card task %s: %w", task.ID, err)
	}
	return nil
}

// Dequeue gets a task from the queue (blocking with timeout)
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*sharecard.Task, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		// redis.Nil is returned when timeout occurs
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue share card task: %w", err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	var task sharecard.Task
	if err := json.Unmarshal([]byte(result[1]), &task); err != nil {
		return nil, fmt.Errorf("unmarshal share card task: %w", err)
	}
	return &task, nil
}

// EnqueueDelayed schedules a task for later processing (for retries)
func (q *RedisQueue) EnqueueDelayed(ctx context.Context, task *sharecard.Task, delay time.Duration) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal delayed share card task %s: %w", task.ID, err)
	}

	score := float64(q.now().Add(delay).Unix())
	if err := q.client.ZAdd(ctx, q.delayedQueue(), redis.Z{
		Score:  score,
		Member: data,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue delayed share card task %s: %w", task.ID, err)
	}
	return nil
}

// MoveDelayedToReady moves delayed tasks that are due to the main queue
func (q *RedisQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	due, err := q.client.ZRangeByScore(ctx, q.delayedQueue(), &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%d", q.now().Unix()),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed share card tasks: %w", err)
	}

	if len(due) == 0 {
		return 0, nil
	}

	// MULTI/EXEC: a task leaves the set in the same step it enters the list
	pipe := q.client.TxPipeline()
	for _, task := range due {
		pipe.LPush(ctx, q.queueName, task)
		pipe.ZRem(ctx, q.delayedQueue(), task)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("move delayed share card tasks to ready: %w", err)
	}

	return len(due), nil
}

// Size returns the number of ready and delayed tasks
func (q *RedisQueue) Size(ctx context.Context) (ready, delayed int64, err error) {
	if ready, err = q.client.LLen(ctx, q.queueName).Result(); err != nil {
		return 0, 0, fmt.Errorf("get queue size: %w", err)
	}
	if delayed, err = q.client.ZCard(ctx, q.delayedQueue()).Result(); err != nil {
		return 0, 0, fmt.Errorf("get delayed queue size: %w", err)
	}
	return ready, delayed, nil
}
