package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	errx "github.com/storefront-core/server/internal/core/error"
	"github.com/storefront-core/server/internal/model"
	logx "github.com/storefront-core/server/pkg/logger"
)

// RedisActivityJournal keeps one list per session. The key expires together
// with the session and is deleted when the session ends.
type RedisActivityJournal struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisActivityJournal(rdb redis.Cmdable, ttl time.Duration) *RedisActivityJournal {
	return &RedisActivityJournal{rdb: rdb, ttl: ttl}
}

func (j *RedisActivityJournal) activityKey(sessionID string) string {
	return fmt.Sprintf("storefront:session:%s:activity", sessionID)
}

func (j *RedisActivityJournal) Append(ctx context.Context, sessionID string, entry model.ActivityEntry) error {
	b, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal activity entry: %w", err)
	}
	key := j.activityKey(sessionID)

	if err := j.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to append cart activity")
		return errx.WrapRedis(err)
	}
	return touch(ctx, j.rdb, key, j.ttl)
}

func (j *RedisActivityJournal) Load(ctx context.Context, sessionID string) ([]model.ActivityEntry, error) {
	key := j.activityKey(sessionID)

	rows, err := j.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		logx.Error().Err(err).Str("key", key).Msg("failed to load cart activity")
		return nil, errx.WrapRedis(err)
	}

	entries := make([]model.ActivityEntry, 0, len(rows))
	for i, s := range rows {
		var e model.ActivityEntry
		if err := json.Unmarshal([]byte(s), &e); err != nil {
			return nil, fmt.Errorf("unmarshal activity entry at index %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	sortByVersion(entries)
	return entries, nil
}

func (j *RedisActivityJournal) Clear(ctx context.Context, sessionID string) error {
	key := j.activityKey(sessionID)
	if err := j.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete cart activity")
		return errx.WrapRedis(err)
	}
	return nil
}

// Appends from concurrent requests may land out of order.
func sortByVersion(entries []model.ActivityEntry) {
	sort.SliceStable(entries, func(a, b int) bool { return entries[a].Version < entries[b].Version })
}

var _ model.ActivityJournal = (*RedisActivityJournal)(nil)
