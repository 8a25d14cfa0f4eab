package ratings

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const summaryKeyPrefix = "slicepoll:summary:"

// Cache holds aggregated summaries in Redis for a short TTL so hot result
// pages do not re-run the aggregate query on every request. All methods are
// best-effort and nil-safe: tests and cacheless deployments pass nil.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

type cachedSummary struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

func (c *Cache) Get(ctx context.Context, surveyID string) (Summary, bool) {
	if c == nil || c.rdb == nil {
		return Summary{}, false
	}
	raw, err := c.rdb.Get(ctx, summaryKeyPrefix+surveyID).Bytes()
	if err != nil {
		return Summary{}, false
	}
	var cs cachedSummary
	if err := json.Unmarshal(raw, &cs); err != nil {
		return Summary{}, false
	}
	return Summary{SurveyID: surveyID, Count: cs.Count, Average: cs.Average}, true
}

func (c *Cache) Set(ctx context.Context, surveyID string, s Summary) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(cachedSummary{Count: s.Count, Average: s.Average})
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, summaryKeyPrefix+surveyID, raw, c.ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context, surveyID string) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, summaryKeyPrefix+surveyID).Err()
}
