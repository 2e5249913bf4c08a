package sharecard

import (
	"context"
	"time"
)

// Queue carries render tasks from the API to the workers
type Queue interface {
	// Enqueue adds a task to the ready queue
	Enqueue(ctx context.Context, task *Task) error

	// Dequeue blocks up to timeout; (nil, nil) when nothing arrived
	Dequeue(ctx context.Context, timeout time.Duration) (*Task, error)

	// EnqueueDelayed schedules a retry
	EnqueueDelayed(ctx context.Context, task *Task, delay time.Duration) error

	// MoveDelayedToReady promotes due retries to the ready queue
	MoveDelayedToReady(ctx context.Context) (int, error)
}
