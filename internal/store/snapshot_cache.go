package store

import (
	"context"
	"encoding/json"
	"time"

	"kimoncrm-survey/internal/domain"
)

// SnapshotCache 快照读缓存（KV 之上的类型化封装）。
// 权威数据在 surveys 表，缓存只为高频的向导页读取兜底；
// 保存路径上写穿，TTL 防缓存长期漂移。
type SnapshotCache struct {
	kv  KV
	ttl time.Duration
}

func NewSnapshotCache(kv KV, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{kv: kv, ttl: ttl}
}

func cacheKey(surveyID string) string {
	return "proposal:survey:" + surveyID + ":snapshot"
}

// Get 缓存未命中返回 ErrMiss
func (c *SnapshotCache) Get(ctx context.Context, surveyID string) (*domain.SurveySnapshot, error) {
	raw, err := c.kv.Get(ctx, cacheKey(surveyID))
	if err != nil {
		return nil, err
	}
	var snapshot domain.SurveySnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		// 缓存内容损坏按未命中处理，由权威存储兜底
		return nil, ErrMiss
	}
	return &snapshot, nil
}

func (c *SnapshotCache) Put(ctx context.Context, surveyID string, snapshot *domain.SurveySnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return c.kv.Set(ctx, cacheKey(surveyID), string(raw), c.ttl)
}

func (c *SnapshotCache) Invalidate(ctx context.Context, surveyID string) error {
	return c.kv.Del(ctx, cacheKey(surveyID))
}
