package job

import (
	"context"
	"log"
	"log/slog"
	"time"

	"postpilot/internal/repository"
)

type SessionCleanupJob struct {
	sr repository.SessionRepository
}

func NewSessionCleanupJob(sr repository.SessionRepository) *SessionCleanupJob {
	return &SessionCleanupJob{sr: sr}
}

func (j *SessionCleanupJob) Sweep() {
	ctx := context.Background()

	n, err := j.sr.DeleteExpired(ctx, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return
	}
	if n > 0 {
		log.Printf("Removed %d expired sessions", n)
	}
}
