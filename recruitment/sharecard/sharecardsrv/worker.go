package sharecardsrv

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Abraxas-365/applymint/pkg/logx"
	"github.com/Abraxas-365/applymint/recruitment/sharecard"
)

// Worker drains the share card queue with a fixed pool of goroutines
type Worker struct {
	service      *Service
	queue        sharecard.Queue
	workers      int
	pollTimeout  time.Duration
	moveInterval time.Duration
	wg           sync.WaitGroup
}

func NewWorker(service *Service, queue sharecard.Queue, workers int) *Worker {
	return &Worker{
		service:      service,
		queue:        queue,
		workers:      workers,
		pollTimeout:  5 * time.Second,
		moveInterval: 30 * time.Second,
	}
}

// WithIntervals overrides the dequeue timeout and the delayed-task sweep
// interval; used by tests
func (w *Worker) WithIntervals(pollTimeout, moveInterval time.Duration) *Worker {
	w.pollTimeout = pollTimeout
	w.moveInterval = moveInterval
	return w
}

// Start launches the pool; it stops when ctx is cancelled
func (w *Worker) Start(ctx context.Context) {
	logx.Infof("Starting %d share card workers", w.workers)

	w.wg.Add(1)
	go w.moveDelayedTasks(ctx)

	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.processTasks(ctx, i)
	}
}

// Wait blocks until every goroutine started by Start has returned
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) processTasks(ctx context.Context, workerID int) {
	defer w.wg.Done()
	logx.Debugf("Share card worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Debugf("Share card worker %d stopping", workerID)
			return
		default:
		}

		task, err := w.queue.Dequeue(ctx, w.pollTimeout)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				continue
			}
			logx.Errorf("Share card worker %d dequeue error: %v", workerID, err)
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}
		if task == nil {
			continue
		}

		logx.Debugf("Share card worker %d processing task %s", workerID, task.ID)
		w.service.Handle(ctx, task)
	}
}

func (w *Worker) moveDelayedTasks(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.moveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed share card tasks: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed share card tasks to ready queue", count)
			}
		}
	}
}
