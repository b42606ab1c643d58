package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	previewPort "timelineforum/internal/ports/preview"
)

const previewTTL = 24 * time.Hour

// PreviewCacheRedis stores fetched link previews keyed by URL so repeated
// pastes of the same link skip the outbound fetch.
type PreviewCacheRedis struct {
	Client *redis.Client
}

func NewPreviewCacheRedis(client *redis.Client) *PreviewCacheRedis {
	return &PreviewCacheRedis{Client: client}
}

func cacheKey(url string) string {
	return "preview:" + url
}

func (r *PreviewCacheRedis) Get(ctx context.Context, url string) (*previewPort.Preview, error) {
	raw, err := r.Client.Get(ctx, cacheKey(url)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var p previewPort.Preview
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PreviewCacheRedis) Set(ctx context.Context, url string, p *previewPort.Preview) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, cacheKey(url), raw, previewTTL).Err()
}
