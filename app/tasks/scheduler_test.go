package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"newsdesk/app/feed"
)

type stubSyncer struct {
	runs chan struct{}
	err  error
}

func (s *stubSyncer) Run(ctx context.Context) (*feed.SyncResult, error) {
	select {
	case s.runs <- struct{}{}:
	default:
	}
	return &feed.SyncResult{}, s.err
}

func waitForRun(t *testing.T, runs chan struct{}) {
	t.Helper()

	select {
	case <-runs:
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for sync run")
	}
}

func TestSchedulerRunsImmediately(t *testing.T) {
	syncer := &stubSyncer{runs: make(chan struct{}, 8)}
	scheduler := NewScheduler(syncer, time.Hour)
	scheduler.Start()
	defer scheduler.Stop()

	waitForRun(t, syncer.runs)
}

func TestSchedulerRunsPeriodically(t *testing.T) {
	syncer := &stubSyncer{runs: make(chan struct{}, 8)}
	scheduler := NewScheduler(syncer, 10*time.Millisecond)
	scheduler.Start()
	defer scheduler.Stop()

	// Startup run plus at least two ticks.
	for i := 0; i < 3; i++ {
		waitForRun(t, syncer.runs)
	}
}

func TestSchedulerKeepsRunningAfterFailure(t *testing.T) {
	syncer := &stubSyncer{runs: make(chan struct{}, 8), err: errors.New("upstream down")}
	scheduler := NewScheduler(syncer, 10*time.Millisecond)
	scheduler.Start()
	defer scheduler.Stop()

	for i := 0; i < 3; i++ {
		waitForRun(t, syncer.runs)
	}
}

func TestSchedulerStop(t *testing.T) {
	syncer := &stubSyncer{runs: make(chan struct{}, 8)}
	scheduler := NewScheduler(syncer, 10*time.Millisecond)
	scheduler.Start()

	waitForRun(t, syncer.runs)

	done := make(chan struct{})
	go func() {
		scheduler.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}
