package store

import (
	"context"
	"strconv"

	"github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/cache"
	dom "github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/domain"

	"golang.org/x/sync/singleflight"
)

// CachedStore decorates a Store with a Redis day-list cache. Reads are
// singleflight-guarded per (scope, date); every write invalidates the
// owner's cached days. Cache errors are ignored: the inner store stays
// authoritative.
type CachedStore struct {
	inner Store
	cache *cache.DayCache
	sf    singleflight.Group
}

// NewCachedStore wraps inner. If c is nil, inner is returned unwrapped.
func NewCachedStore(inner Store, c *cache.DayCache) Store {
	if c == nil {
		return inner
	}
	return &CachedStore{inner: inner, cache: c}
}

func (s *CachedStore) ListByDate(ctx context.Context, scope Scope, date string) ([]dom.Task, error) {
	key := dayFlightKey(scope, date)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if list, err := s.cache.GetDay(ctx, int64(scope), date); err == nil && list != nil {
			return list, nil
		}
		list, err := s.inner.ListByDate(ctx, scope, date)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetDay(ctx, int64(scope), date, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Task), nil
}

func (s *CachedStore) Create(ctx context.Context, scope Scope, t dom.Task) (dom.Task, error) {
	out, err := s.inner.Create(ctx, scope, t)
	if err != nil {
		return dom.Task{}, err
	}
	_ = s.cache.InvalidateUser(ctx, int64(scope))
	return out, nil
}

func (s *CachedStore) Update(ctx context.Context, scope Scope, id string, p Patch) error {
	if err := s.inner.Update(ctx, scope, id, p); err != nil {
		return err
	}
	_ = s.cache.InvalidateUser(ctx, int64(scope))
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, scope Scope, id string) error {
	if err := s.inner.Delete(ctx, scope, id); err != nil {
		return err
	}
	_ = s.cache.InvalidateUser(ctx, int64(scope))
	return nil
}

func (s *CachedStore) ListBefore(ctx context.Context, scope Scope, date string) ([]dom.Task, error) {
	// The past view spans many days; serve it from the inner store.
	return s.inner.ListBefore(ctx, scope, date)
}

func dayFlightKey(scope Scope, date string) string {
	return strconv.FormatInt(int64(scope), 10) + ":" + date
}
