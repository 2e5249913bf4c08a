package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Abraxas-365/applymint/internal/scheduler"
	"github.com/Abraxas-365/applymint/recruitment/job"
)

type countingExpirer struct {
	calls atomic.Int32
	err   error
}

func (e *countingExpirer) DeactivateExpired(context.Context) (*job.DeactivateExpiredResponse, error) {
	e.calls.Add(1)
	if e.err != nil {
		return nil, e.err
	}
	return &job.DeactivateExpiredResponse{Deactivated: 2, RanAt: time.Now()}, nil
}

func TestRunOnce(t *testing.T) {
	e := &countingExpirer{}
	s := scheduler.New(e, "@every 1h")

	s.RunOnce(context.Background())
	if e.calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", e.calls.Load())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.RunOnce(ctx)
	if e.calls.Load() != 1 {
		t.Errorf("sweep ran on a cancelled context")
	}
}

func TestRunOnce_ErrorIsLogged(t *testing.T) {
	e := &countingExpirer{err: errors.New("db down")}
	scheduler.New(e, "@every 1h").RunOnce(context.Background())
	if e.calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", e.calls.Load())
	}
}

func TestStart_InvalidSpec(t *testing.T) {
	s := scheduler.New(&countingExpirer{}, "every now and then")
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected an error for an invalid spec")
	}
}

func TestStart_SweepsImmediately(t *testing.T) {
	e := &countingExpirer{}
	s := scheduler.New(e, "@every 1h")
	if err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer s.Stop()

	deadline := time.Now().Add(5 * time.Second)
	for e.calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("no sweep after Start")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
