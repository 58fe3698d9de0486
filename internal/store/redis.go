package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/robalobadob/distle/internal/game"
)

const redisKeyPrefix = "distle:game:"

// redisStore keeps JSON-encoded games in Redis so several server instances
// can share sessions. Entries expire after ttl of inactivity.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps client. A zero ttl keeps games forever.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Save(ctx context.Context, g *game.Game) error {
	b, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", g.ID, err)
	}
	return s.client.Set(ctx, redisKeyPrefix+g.ID, b, s.ttl).Err()
}

func (s *redisStore) Get(ctx context.Context, id string) (*game.Game, error) {
	b, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var g game.Game
	if err := json.Unmarshal(b, &g); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", id, err)
	}
	return &g, nil
}
