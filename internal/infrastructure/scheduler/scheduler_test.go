package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"lamf-backoffice/internal/usecase/risk"
)

type sweepFunc func(ctx context.Context) (*risk.SweepResult, error)

func (f sweepFunc) Sweep(ctx context.Context) (*risk.SweepResult, error) { return f(ctx) }

func TestNew_RejectsBadSpec(t *testing.T) {
	if _, err := New("every tuesday", sweepFunc(nil), 0); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestRunOnce_AppliesTimeout(t *testing.T) {
	var sawDeadline bool
	s, err := New("*/5 * * * *", sweepFunc(func(ctx context.Context) (*risk.SweepResult, error) {
		_, sawDeadline = ctx.Deadline()
		return &risk.SweepResult{}, nil
	}), time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	s.RunOnce(context.Background())
	if !sawDeadline {
		t.Fatal("sweep context should carry the configured timeout")
	}
}

func TestRunOnce_SwallowsSweepError(t *testing.T) {
	s, err := New("@hourly", sweepFunc(func(context.Context) (*risk.SweepResult, error) {
		return nil, errors.New("db down")
	}), 0)
	if err != nil {
		t.Fatal(err)
	}
	s.RunOnce(context.Background())
}

func TestRun_FiresAndStops(t *testing.T) {
	var calls int32
	fired := make(chan struct{}, 1)
	s, err := New("@every 1s", sweepFunc(func(context.Context) (*risk.SweepResult, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			fired <- struct{}{}
		}
		return &risk.SweepResult{}, nil
	}), time.Second)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("sweep never ran")
	}
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
