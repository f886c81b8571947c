// Package dispatch drives scheduled posts from pending to a terminal
// status. A tick scans the store for due records and attempts each one's
// platforms; the conditional transition in the store is what keeps a
// record from ever being resolved twice, even with concurrent edits and
// deletes racing the tick.
package dispatch

import (
	"context"
	"log"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"postpilot/internal/models"
	"postpilot/internal/repository"
	"postpilot/internal/service"
)

type Dispatcher struct {
	pr      repository.PostRepository
	po      repository.PublishOutcomeRepository
	pub     service.Publisher
	timeout time.Duration
	limit   int
	running atomic.Bool
}

func NewDispatcher(
	pr repository.PostRepository,
	po repository.PublishOutcomeRepository,
	pub service.Publisher,
	timeout time.Duration,
	limit int) *Dispatcher {
	if limit < 1 {
		limit = 1
	}
	return &Dispatcher{
		pr:      pr,
		po:      po,
		pub:     pub,
		timeout: timeout,
		limit:   limit,
	}
}

// Tick runs one due-set scan. Ticks never overlap: if the previous one is
// still attempting posts, this one returns immediately and the records it
// would have seen are still due on the next tick.
func (d *Dispatcher) Tick() {
	if !d.running.CompareAndSwap(false, true) {
		slog.Info("dispatch tick still running, skipping")
		return
	}
	defer d.running.Store(false)

	ctx := context.Background()

	due, err := d.pr.ListDue(ctx, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, d.limit)

	for _, post := range due {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(post *models.ScheduledPost) {
			defer wg.Done()
			defer func() { <-semaphore }()
			d.process(ctx, post)
		}(post)
	}

	wg.Wait()
}

// process attempts every platform of one due record and applies the
// resulting transition. Any failed attempt, including a partial one,
// marks the record failed; the outcome log shows which platforms went
// out.
func (d *Dispatcher) process(ctx context.Context, post *models.ScheduledPost) {
	var wg sync.WaitGroup
	var failed atomic.Int64

	for _, platform := range post.Platforms {
		wg.Add(1)

		go func(platform string) {
			defer wg.Done()

			err := d.attempt(ctx, post, platform)

			outcome := models.PublishOutcome{
				PostID:   post.ID,
				Platform: platform,
				Success:  err == nil,
			}
			if err != nil {
				failed.Add(1)
				outcome.ErrorMessage = err.Error()
				log.Printf("Error posting %d to %s: %v", post.ID, platform, err)
			}
			if _, err := d.po.Create(ctx, &outcome); err != nil {
				log.Printf("Error saving publish outcome for post %d: %v", post.ID, err)
			}
		}(platform)
	}

	wg.Wait()

	status := models.PostStatusPosted
	if failed.Load() > 0 || len(post.Platforms) == 0 {
		status = models.PostStatusFailed
	}

	n, err := d.pr.Transition(ctx, post.ID, status)
	if err != nil {
		slog.Info(err.Error())
		return
	}
	if n == 0 {
		// Edited, deleted or resolved by someone else since the scan.
		slog.Info("post already resolved, skipping transition", "post_id", post.ID)
	}
}

func (d *Dispatcher) attempt(ctx context.Context, post *models.ScheduledPost, platform string) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.pub.Publish(ctx, post.MediaRef, post.Caption, platform)
}
