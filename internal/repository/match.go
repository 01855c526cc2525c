package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictacbot-backend/internal/entity"
)

var ErrMatchNotFound = errors.New("match not found")

const (
	matchKeyPrefix   = "match:"
	recentMatchesKey = "matches:recent"
)

type MatchRepository interface {
	Create(ctx context.Context, record *entity.MatchRecord) error
	GetByID(ctx context.Context, id string) (*entity.MatchRecord, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.MatchRecord, error)
}

type dbMatch struct {
	client *redis.Client
	keep   int
}

// NewMatchRepository - keeps finished matches in Redis, retaining at most
// keep of them.
func NewMatchRepository(client *redis.Client, keep int) MatchRepository {
	return &dbMatch{
		client: client,
		keep:   keep,
	}
}

func (that *dbMatch) Create(ctx context.Context, record *entity.MatchRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("could not marshal match record: %w", err)
	}

	matchKey := matchKeyPrefix + record.ID
	if err = that.client.Set(ctx, matchKey, recordJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set match record: %w", err)
	}

	if err = that.client.LPush(ctx, recentMatchesKey, record.ID).Err(); err != nil {
		return fmt.Errorf("failed to push match id: %w", err)
	}

	return that.trim(ctx)
}

// trim - drops archived matches beyond the retention window, oldest first.
func (that *dbMatch) trim(ctx context.Context) error {
	for {
		length, err := that.client.LLen(ctx, recentMatchesKey).Result()
		if err != nil {
			return fmt.Errorf("failed to measure match list: %w", err)
		}

		if length <= int64(that.keep) {
			return nil
		}

		oldID, err := that.client.RPop(ctx, recentMatchesKey).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to pop old match id: %w", err)
		}

		if err = that.client.Del(ctx, matchKeyPrefix+oldID).Err(); err != nil {
			return fmt.Errorf("failed to delete old match: %w", err)
		}
	}
}

func (that *dbMatch) GetByID(ctx context.Context, id string) (*entity.MatchRecord, error) {
	matchKey := matchKeyPrefix + id

	response, err := that.client.Get(ctx, matchKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrMatchNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get match by id: %w", err)
	}

	var record entity.MatchRecord
	if err = json.Unmarshal([]byte(response), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match record: %w", err)
	}

	return &record, nil
}

func (that *dbMatch) ListRecent(ctx context.Context, limit int) ([]*entity.MatchRecord, error) {
	ids, err := that.client.LRange(ctx, recentMatchesKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read match list: %w", err)
	}

	records := make([]*entity.MatchRecord, 0, len(ids))

	for _, id := range ids {
		record, err := that.GetByID(ctx, id)
		if errors.Is(err, ErrMatchNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, nil
}
