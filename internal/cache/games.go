// internal/cache/games.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gamemate/gamemate/internal/models"
)

const (
	gamesListKey = "games:list"
	gamesListTTL = 30 * time.Second
)

// GameCache is an optional Redis read cache for the read-heavy games list.
// A nil *GameCache is valid and disables caching, so callers never need to
// branch on whether Redis is configured.
type GameCache struct {
	rdb *redis.Client
}

// Connect initializes the cache against addr. An empty addr returns a nil
// cache (caching disabled).
func Connect(ctx context.Context, addr string) (*GameCache, error) {
	if addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	return &GameCache{rdb: rdb}, nil
}

// GetList returns the cached games list, or ok=false on miss, error or when
// the cache is disabled.
func (c *GameCache) GetList(ctx context.Context) ([]models.Game, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, gamesListKey).Bytes()
	if err != nil {
		return nil, false
	}
	var games []models.Game
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, false
	}
	return games, true
}

// SetList stores the games list with a short TTL. Failures are ignored: the
// cache is advisory and the database remains the source of truth.
func (c *GameCache) SetList(ctx context.Context, games []models.Game) {
	if c == nil {
		return
	}
	data, err := json.Marshal(games)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, gamesListKey, data, gamesListTTL)
}

// Invalidate drops the cached list after a write.
func (c *GameCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, gamesListKey)
}
