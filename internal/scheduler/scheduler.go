// Package scheduler runs the periodic job-board maintenance tasks.
package scheduler

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/applymint/pkg/logx"
	"github.com/Abraxas-365/applymint/recruitment/job"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Expirer deactivates jobs whose application deadline has passed
type Expirer interface {
	DeactivateExpired(ctx context.Context) (*job.DeactivateExpiredResponse, error)
}

// Scheduler wraps robfig/cron and owns the expiry sweep
type Scheduler struct {
	cron    *cron.Cron
	expirer Expirer
	spec    string // cron spec, e.g. "@every 1h"
}

// New creates a Scheduler that sweeps expired jobs on spec
func New(expirer Expirer, spec string) *Scheduler {
	logger := cronLogger{}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		expirer: expirer,
		spec:    spec,
	}
}

// Start registers the sweep and starts the scheduler. One sweep also runs
// immediately so jobs that expired while the service was down are hidden.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc(%q): %w", s.spec, err)
	}

	s.cron.Start()
	logx.Info("scheduler started", zap.String("expiry_spec", s.spec))

	go s.RunOnce(ctx)
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logx.Info("scheduler stopped")
}

// RunOnce performs one expiry sweep; failures are logged
func (s *Scheduler) RunOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	result, err := s.expirer.DeactivateExpired(ctx)
	if err != nil {
		logx.Error("expiry sweep failed", zap.Error(err))
		return
	}
	if result.Deactivated > 0 {
		logx.Info("expired jobs deactivated", zap.Int64("count", result.Deactivated))
	}
}

// cronLogger forwards robfig/cron logs to logx
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	logx.L().Sugar().Debugw("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	logx.L().Sugar().Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
