package sharecardinfra

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/applymint/recruitment/sharecard"
)

type delayedTask struct {
	task *sharecard.Task
	due  time.Time
}

// MemoryQueue is a channel-backed sharecard.Queue for tests and local runs
type MemoryQueue struct {
	ready   chan *sharecard.Task
	mu      sync.Mutex
	delayed []delayedTask
	now     func() time.Time
}

func NewMemoryQueue(capacity int) *MemoryQueue {
	return &MemoryQueue{
		ready: make(chan *sharecard.Task, capacity),
		now:   time.Now,
	}
}

// WithClock replaces the time source used for delayed tasks
func (q *MemoryQueue) WithClock(now func() time.Time) *MemoryQueue {
	q.now = now
	return q
}

func (q *MemoryQueue) Enqueue(ctx context.Context, task *sharecard.Task) error {
	t := *task
	select {
	case q.ready <- &t:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context, timeout time.Duration) (*sharecard.Task, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case t := <-q.ready:
		return t, nil
	case <-timer.C:
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *MemoryQueue) EnqueueDelayed(_ context.Context, task *sharecard.Task, delay time.Duration) error {
	t := *task
	q.mu.Lock()
	defer q.mu.Unlock()
	q.delayed = append(q.delayed, delayedTask{task: &t, due: q.now().Add(delay)})
	return nil
}

func (q *MemoryQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	q.mu.Lock()
	now := q.now()
	var due, pending []delayedTask
	for _, d := range q.delayed {
		if d.due.After(now) {
			pending = append(pending, d)
		} else {
			due = append(due, d)
		}
	}
	q.delayed = pending
	q.mu.Unlock()

	for _, d := range due {
		if err := q.Enqueue(ctx, d.task); err != nil {
			return 0, err
		}
	}
	return len(due), nil
}

// Delayed is the number of pending retries
func (q *MemoryQueue) Delayed() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.delayed)
}
