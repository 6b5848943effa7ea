package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

var ErrQueueFull = errors.New("persistence queue is full")

type scoreRepository interface {
	GetOrCreate(ctx context.Context, name string) (*entity.ScoreRecord, error)
	Increment(ctx context.Context, name string, outcome entity.ScoreOutcome) error
}

type matchRepository interface {
	Save(ctx context.Context, match *entity.MatchRecord) error
}

type persistenceMetrics interface {
	RecordPersistenceFailure(operation string)
}

type job struct {
	operation string
	run       func(ctx context.Context) error
}

// ScoreRecorder writes results in the background so gameplay never waits on storage.
// A single worker runs the jobs in order, which keeps writes for one name serialized.
type ScoreRecorder struct {
	logger  *slog.Logger
	scores  scoreRepository
	matches matchRepository
	metrics persistenceMetrics

	timeout time.Duration
	jobs    chan job
}

func NewScoreRecorder(
	logger *slog.Logger,
	scores scoreRepository,
	matches matchRepository,
	metrics persistenceMetrics,
	queueSize int,
	timeout time.Duration,
) *ScoreRecorder {
	return &ScoreRecorder{
		logger:  logger,
		scores:  scores,
		matches: matches,
		metrics: metrics,

		timeout: timeout,
		jobs:    make(chan job, queueSize),
	}
}

// Run processes jobs until ctx is canceled.
func (that *ScoreRecorder) Run(ctx context.Context) {
	log := that.logger.With("method", "Run")

	for {
		select {
		case <-ctx.Done():
			log.Info("score recorder stopped", "pending", len(that.jobs))
			return
		case next := <-that.jobs:
			that.execute(ctx, next)
		}
	}
}

// Lookup loads or creates the record for name and hands it to done on success.
func (that *ScoreRecorder) Lookup(name string, done func(record *entity.ScoreRecord)) {
	that.enqueue(job{
		operation: "lookup",
		run: func(ctx context.Context) error {
			record, err := that.scores.GetOrCreate(ctx, name)
			if err != nil {
				return err
			}

			done(record)

			return nil
		},
	})
}

func (that *ScoreRecorder) Record(name string, outcome entity.ScoreOutcome) {
	that.enqueue(job{
		operation: "increment",
		run: func(ctx context.Context) error {
			return that.scores.Increment(ctx, name, outcome)
		},
	})
}

func (that *ScoreRecorder) Archive(match *entity.MatchRecord) {
	that.enqueue(job{
		operation: "archive",
		run: func(ctx context.Context) error {
			return that.matches.Save(ctx, match)
		},
	})
}

func (that *ScoreRecorder) enqueue(next job) {
	select {
	case that.jobs <- next:
	default:
		that.logger.Error("failed to enqueue persistence job", "operation", next.operation, "error", ErrQueueFull)
		that.metrics.RecordPersistenceFailure(next.operation)
	}
}

func (that *ScoreRecorder) execute(ctx context.Context, next job) {
	log := that.logger.With("method", "execute", "operation", next.operation)

	ctx, cancel := context.WithTimeout(ctx, that.timeout)
	defer cancel()

	if err := next.run(ctx); err != nil {
		log.Error("persistence job failed", "error", err)
		that.metrics.RecordPersistenceFailure(next.operation)
	}
}
