package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/caro-client/internal/entity"
)

const (
	gameKeyPrefix = "game:"
	recentKey     = "games:recent"

	maxRecentGames = 100
)

var ErrGameNotFound = errors.New("game not found")

// GameRepository - stores session snapshots, one key per session, plus a
// bounded list of the most recently touched session ids.
type GameRepository interface {
	CreateOrUpdate(ctx context.Context, snapshot entity.SessionSnapshot) error
	GetByID(ctx context.Context, id string) (*entity.SessionSnapshot, error)
	DeleteByID(ctx context.Context, id string) error
	ListRecent(ctx context.Context, limit int) ([]*entity.SessionSnapshot, error)
}

type dbGame struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGameRepository - ttl of zero keeps snapshots forever.
func NewGameRepository(client *redis.Client, ttl time.Duration) GameRepository {
	return &dbGame{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, snapshot entity.SessionSnapshot) error {
	gameJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, gameKeyPrefix+snapshot.ID, gameJSON, that.ttl)
		pipe.LRem(ctx, recentKey, 0, snapshot.ID)
		pipe.LPush(ctx, recentKey, snapshot.ID)
		pipe.LTrim(ctx, recentKey, 0, maxRecentGames-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.SessionSnapshot, error) {
	response, err := that.client.Get(ctx, gameKeyPrefix+id).Result()

	if errors.Is(err, redis.Nil) {
		return &entity.SessionSnapshot{}, ErrGameNotFound
	}

	if err != nil {
		return &entity.SessionSnapshot{}, fmt.Errorf("%w by id", err)
	}

	var snapshot entity.SessionSnapshot
	if err = json.Unmarshal([]byte(response), &snapshot); err != nil {
		return &entity.SessionSnapshot{}, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &snapshot, nil
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	var deleted *redis.IntCmd

	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, gameKeyPrefix+id)
		pipe.LRem(ctx, recentKey, 0, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete game by ID: %w", err)
	}

	if deleted.Val() == 0 {
		return ErrGameNotFound
	}

	return nil
}

// ListRecent - newest first. Ids whose snapshot has expired are skipped.
func (that *dbGame) ListRecent(ctx context.Context, limit int) ([]*entity.SessionSnapshot, error) {
	if limit <= 0 || limit > maxRecentGames {
		limit = maxRecentGames
	}

	ids, err := that.client.LRange(ctx, recentKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recent games: %w", err)
	}

	if len(ids) == 0 {
		return []*entity.SessionSnapshot{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = gameKeyPrefix + id
	}

	values, err := that.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get recent games: %w", err)
	}

	snapshots := make([]*entity.SessionSnapshot, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}

		var snapshot entity.SessionSnapshot
		if err = json.Unmarshal([]byte(raw), &snapshot); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game: %w", err)
		}
		snapshots = append(snapshots, &snapshot)
	}

	return snapshots, nil
}
