// Package poller provides a cancellable fixed-interval polling task. A task
// is started with an identifier, an interval and a check callback, and stops
// itself as soon as the callback reports a terminal result or an error.
package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/socialspark/socialspark-bot/pkg/logger"
)

// CheckFunc performs one status poll for id. Returning done=true or a
// non-nil error stops the task; errors are not retried (fail-fast).
type CheckFunc func(ctx context.Context, id string) (done bool, err error)

// Task is a handle on a running polling loop.
type Task struct {
	id        string
	scheduler gocron.Scheduler
	logger    logger.Logger
	stopOnce  sync.Once
}

// Start begins polling id every interval until check reports a terminal
// result, check fails, ctx is cancelled or Stop is called. A poll already in
// flight when the task stops is discarded: check re-reads ctx before acting.
func Start(ctx context.Context, log logger.Logger, id string, interval time.Duration, check CheckFunc) (*Task, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create poll scheduler: %w", err)
	}

	t := &Task{
		id:        id,
		scheduler: scheduler,
		logger:    log.WithComponent("Poller"),
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				t.Stop()
				return
			}

			done, err := check(ctx, id)
			if err != nil {
				t.logger.Warn("Status poll failed, halting", "id", id, "error", err)
				t.Stop()
				return
			}
			if done {
				t.logger.Debug("Status poll reached terminal state", "id", id)
				t.Stop()
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule status poll: %w", err)
	}

	scheduler.Start()

	go func() {
		<-ctx.Done()
		t.Stop()
	}()

	return t, nil
}

// Stop halts future polls. It is idempotent and safe to call from the poll
// callback itself.
func (t *Task) Stop() {
	t.stopOnce.Do(func() {
		go func() {
			if err := t.scheduler.Shutdown(); err != nil {
				t.logger.Error("Failed to shut down poll scheduler", "id", t.id, "error", err)
			}
		}()
	})
}
