package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	Save(ctx context.Context, match *entity.MatchRecord) error
	GetByID(ctx context.Context, id string) (*entity.MatchRecord, error)
}

type dbMatch struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMatchRepository stores match records that expire after ttl. Zero keeps them forever.
func NewMatchRepository(client *redis.Client, ttl time.Duration) MatchRepository {
	return &dbMatch{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbMatch) Save(ctx context.Context, match *entity.MatchRecord) error {
	matchJSON, err := json.Marshal(match)
	if err != nil {
		return fmt.Errorf("failed to marshal match: %w", err)
	}

	matchKey := "match:" + match.ID
	if err = that.client.Set(ctx, matchKey, matchJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set match: %w", err)
	}

	return nil
}

func (that *dbMatch) GetByID(ctx context.Context, id string) (*entity.MatchRecord, error) {
	matchKey := "match:" + id

	response, err := that.client.Get(ctx, matchKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMatchNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get match by ID: %w", err)
	}

	var match entity.MatchRecord
	if err = json.Unmarshal([]byte(response), &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}

	return &match, nil
}
