package records

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"awards-portal/internal/common/logger"
	"awards-portal/internal/common/metrics"
	"awards-portal/internal/models"
)

const cacheKeyPrefix = "application:"

// An update bumps the record's generation before dropping the cached copy. A
// read-through only stores what it loaded if the generation it saw before
// loading is still current, so a slow reader cannot put back a row that an
// update has already replaced.
var (
	invalidateScript = redis.NewScript(`
redis.call('INCR', KEYS[2])
redis.call('PEXPIRE', KEYS[2], ARGV[1])
return redis.call('DEL', KEYS[1])`)

	populateScript = redis.NewScript(`
if (redis.call('GET', KEYS[2]) or '0') ~= ARGV[1] then
  return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1`)
)

// CachedStore is a read-through Redis cache in front of another Store.
// Cache failures are logged and the call falls through to the wrapped store.
type CachedStore struct {
	next   Store
	redis  redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedStore(next Store, rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *CachedStore {
	return &CachedStore{
		next:   next,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "record-cache"}),
	}
}

func cacheKey(id string) string {
	return cacheKeyPrefix + id
}

func generationKey(id string) string {
	return cacheKeyPrefix + id + ":gen"
}

func (c *CachedStore) keys(id string) []string {
	return []string{cacheKey(id), generationKey(id)}
}

func (c *CachedStore) Create(ctx context.Context, payload *models.SubmissionPayload, updatedBy string) (string, error) {
	return c.next.Create(ctx, payload, updatedBy)
}

func (c *CachedStore) Update(ctx context.Context, id string, payload *models.SubmissionPayload, updatedBy string) error {
	if err := c.next.Update(ctx, id, payload, updatedBy); err != nil {
		return err
	}
	if err := invalidateScript.Run(ctx, c.redis, c.keys(id), c.ttl.Milliseconds()).Err(); err != nil {
		c.logger.Warn("failed to invalidate cached record", map[string]interface{}{
			"applicationId": id,
			"error":         err.Error(),
		})
	}
	return nil
}

func (c *CachedStore) Get(ctx context.Context, id string) (*models.Record, error) {
	populate := true
	cached, err := c.redis.Get(ctx, cacheKey(id)).Result()
	switch {
	case err == nil:
		var r models.Record
		if jsonErr := json.Unmarshal([]byte(cached), &r); jsonErr == nil {
			metrics.RecordCacheLookups.WithLabelValues("hit").Inc()
			return &r, nil
		}
		metrics.RecordCacheLookups.WithLabelValues("error").Inc()
	case errors.Is(err, redis.Nil):
		metrics.RecordCacheLookups.WithLabelValues("miss").Inc()
	default:
		populate = false
		metrics.RecordCacheLookups.WithLabelValues("error").Inc()
		c.logger.Warn("record cache read failed", map[string]interface{}{
			"applicationId": id,
			"error":         err.Error(),
		})
	}

	generation := "0"
	if populate {
		generation, err = c.redis.Get(ctx, generationKey(id)).Result()
		switch {
		case errors.Is(err, redis.Nil):
			generation = "0"
		case err != nil:
			populate = false
		}
	}

	r, err := c.next.Get(ctx, id)
	if err != nil || r == nil {
		return r, err
	}

	if populate {
		c.populate(ctx, id, r, generation)
	}
	return r, nil
}

func (c *CachedStore) populate(ctx context.Context, id string, r *models.Record, generation string) {
	data, err := json.Marshal(r)
	if err != nil {
		return
	}
	stored, err := populateScript.Run(ctx, c.redis, c.keys(id), generation, data, c.ttl.Milliseconds()).Int()
	if err != nil {
		c.logger.Warn("record cache write failed", map[string]interface{}{
			"applicationId": id,
			"error":         err.Error(),
		})
		return
	}
	if stored == 0 {
		c.logger.Debug("record changed while loading, not cached", map[string]interface{}{
			"applicationId": id,
		})
	}
}

func (c *CachedStore) List(ctx context.Context) ([]models.Record, error) {
	return c.next.List(ctx)
}
