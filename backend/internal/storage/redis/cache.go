// Package redis keeps the active board list in Redis.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/fourchess/fourchess/backend/internal/service"
	"github.com/fourchess/fourchess/shared/config"
	"github.com/fourchess/fourchess/shared/domain"
)

const (
	activeBoardsKey = "fourchess:boards:active"
	// boardsGenKey counts invalidations; it never expires.
	boardsGenKey = "fourchess:boards:gen"
)

// setIfCurrent stores ARGV[2] under KEYS[1] only while KEYS[2] still holds
// the generation ARGV[1]. ARGV[3] is the TTL in milliseconds, 0 for none.
var setIfCurrent = goredis.NewScript(`
if (redis.call('GET', KEYS[2]) or '0') ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`)

var _ service.BoardCache = (*BoardCache)(nil)

type BoardCache struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewClient connects and pings, so a bad address fails at startup.
func NewClient(ctx context.Context, cfg config.Redis) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func NewBoardCache(client *goredis.Client, ttl time.Duration) *BoardCache {
	return &BoardCache{client: client, ttl: ttl}
}

func (c *BoardCache) GetBoards(ctx context.Context) ([]domain.Board, int64, bool, error) {
	vals, err := c.client.MGet(ctx, activeBoardsKey, boardsGenKey).Result()
	if err != nil {
		return nil, 0, false, fmt.Errorf("failed to read board cache: %w", err)
	}
	var gen int64
	if raw, ok := vals[1].(string); ok {
		if gen, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, 0, false, fmt.Errorf("invalid board cache generation %q: %w", raw, err)
		}
	}
	raw, ok := vals[0].(string)
	if !ok {
		return nil, gen, false, nil
	}
	var boards []domain.Board
	if err := json.Unmarshal([]byte(raw), &boards); err != nil {
		// a corrupt entry is a miss; the next SetBoards overwrites it
		return nil, gen, false, nil
	}
	return boards, gen, true, nil
}

// SetBoards is a no-op when an Invalidate ran since gen was read.
func (c *BoardCache) SetBoards(ctx context.Context, gen int64, boards []domain.Board) error {
	if boards == nil {
		boards = []domain.Board{}
	}
	raw, err := json.Marshal(boards)
	if err != nil {
		return fmt.Errorf("failed to encode boards: %w", err)
	}
	err = setIfCurrent.Run(ctx, c.client,
		[]string{activeBoardsKey, boardsGenKey},
		strconv.FormatInt(gen, 10), raw, c.ttl.Milliseconds(),
	).Err()
	if err != nil {
		return fmt.Errorf("failed to write board cache: %w", err)
	}
	return nil
}

// Invalidate bumps the generation and drops the entry in one transaction.
func (c *BoardCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Incr(ctx, boardsGenKey)
		pipe.Del(ctx, activeBoardsKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate board cache: %w", err)
	}
	return nil
}
