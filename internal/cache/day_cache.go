package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	dom "github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyDayPrefix = "tasks:day:"

// DayCache caches one day-list per (user, date) in Redis. Writes to a
// user's tasks invalidate every cached day of that user.
type DayCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewDayCache returns a new DayCache.
func NewDayCache(rdb *redis.Client, ttl time.Duration) *DayCache {
	return &DayCache{rdb: rdb, ttl: ttl}
}

func dayKey(userID int64, date string) string {
	return keyDayPrefix + strconv.FormatInt(userID, 10) + ":" + date
}

// GetDay returns the cached list for (userID, date), or nil on miss.
func (c *DayCache) GetDay(ctx context.Context, userID int64, date string) ([]dom.Task, error) {
	b, err := c.rdb.Get(ctx, dayKey(userID, date)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Task
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetDay stores the list for (userID, date).
func (c *DayCache) SetDay(ctx context.Context, userID int64, date string, list []dom.Task) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, dayKey(userID, date), b, c.ttl).Err()
}

// InvalidateUser removes every cached day list of the user (cache
// invalidation on write; a move touches two days, so all days go).
func (c *DayCache) InvalidateUser(ctx context.Context, userID int64) error {
	pattern := keyDayPrefix + strconv.FormatInt(userID, 10) + ":*"
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
