package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

var ErrScoreNotFound = errors.New("score not found")

const (
	fieldMatchesPlayed = "matches_played"
	fieldWins          = "wins"
	fieldLosses        = "losses"
	fieldDraws         = "draws"
)

type ScoreRepository interface {
	GetOrCreate(ctx context.Context, name string) (*entity.ScoreRecord, error)
	Get(ctx context.Context, name string) (*entity.ScoreRecord, error)
	Increment(ctx context.Context, name string, outcome entity.ScoreOutcome) error
}

type dbScore struct {
	client *redis.Client
}

// dbScoreHash mirrors the redis hash stored under score:<name>.
type dbScoreHash struct {
	MatchesPlayed int64 `redis:"matches_played"`
	Wins          int64 `redis:"wins"`
	Losses        int64 `redis:"losses"`
	Draws         int64 `redis:"draws"`
}

func NewScoreRepository(client *redis.Client) ScoreRepository {
	return &dbScore{
		client: client,
	}
}

func scoreKey(name string) string {
	return "score:" + name
}

func (that *dbScore) GetOrCreate(ctx context.Context, name string) (*entity.ScoreRecord, error) {
	key := scoreKey(name)

	// HSetNX keeps existing counters untouched
	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, field := range []string{fieldMatchesPlayed, fieldWins, fieldLosses, fieldDraws} {
			pipe.HSetNX(ctx, key, field, 0)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create score: %w", err)
	}

	return that.Get(ctx, name)
}

func (that *dbScore) Get(ctx context.Context, name string) (*entity.ScoreRecord, error) {
	response := that.client.HGetAll(ctx, scoreKey(name))
	if err := response.Err(); err != nil {
		return nil, fmt.Errorf("failed to get score: %w", err)
	}

	if len(response.Val()) == 0 {
		return nil, ErrScoreNotFound
	}

	var hash dbScoreHash
	if err := response.Scan(&hash); err != nil {
		return nil, fmt.Errorf("failed to scan score: %w", err)
	}

	return &entity.ScoreRecord{
		Name:          name,
		MatchesPlayed: hash.MatchesPlayed,
		Wins:          hash.Wins,
		Losses:        hash.Losses,
		Draws:         hash.Draws,
	}, nil
}

func (that *dbScore) Increment(ctx context.Context, name string, outcome entity.ScoreOutcome) error {
	field, err := outcomeField(outcome)
	if err != nil {
		return err
	}

	key := scoreKey(name)

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, key, fieldMatchesPlayed, 1)
		pipe.HIncrBy(ctx, key, field, 1)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to increment score: %w", err)
	}

	return nil
}

func outcomeField(outcome entity.ScoreOutcome) (string, error) {
	switch outcome {
	case entity.ScoreWin:
		return fieldWins, nil
	case entity.ScoreLoss:
		return fieldLosses, nil
	case entity.ScoreDraw:
		return fieldDraws, nil
	default:
		return "", fmt.Errorf("unknown score outcome: %q", outcome)
	}
}
