package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/usecase"
)

type submitter interface {
	Submit(ctx context.Context, event usecase.Event) error
}

// StartChallengeSweep submits ExpireChallenges every interval until the scheduler is shut down.
func StartChallengeSweep(ctx context.Context, logger *slog.Logger, interval time.Duration, sub submitter) (gocron.Scheduler, error) {
	log := logger.With("method", "StartChallengeSweep")

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			submitCtx, cancel := context.WithTimeout(ctx, interval)
			defer cancel()

			if submitErr := sub.Submit(submitCtx, usecase.ExpireChallenges{}); submitErr != nil {
				log.Warn("failed to submit challenge sweep", "error", submitErr)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("failed to schedule challenge sweep: %w", err)
	}

	sched.Start()
	log.Info("challenge sweep scheduled", "interval", interval)

	return sched, nil
}
