package tasks

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"newsdesk/app/feed"
)

// Syncer runs one feed synchronization pass; satisfied by *feed.Syncer.
type Syncer interface {
	Run(ctx context.Context) (*feed.SyncResult, error)
}

// Scheduler triggers periodic feed synchronization: one run at startup,
// then one per interval. Runs never overlap because the loop is single
// threaded, and each run is bounded by its own timeout.
type Scheduler struct {
	syncer     Syncer
	interval   time.Duration
	runTimeout time.Duration
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

func NewScheduler(syncer Syncer, interval time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		syncer:     syncer,
		interval:   interval,
		runTimeout: 5 * time.Minute,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		s.runOnce()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.runOnce()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) runOnce() {
	runCtx, cancel := context.WithTimeout(s.ctx, s.runTimeout)
	defer cancel()

	if _, err := s.syncer.Run(runCtx); err != nil {
		// The next tick retries; sync is idempotent so a partial run is
		// harmless.
		slog.Error("Scheduled sync failed", "error", err)
	}
}
