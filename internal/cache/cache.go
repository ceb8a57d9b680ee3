package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dnascimb/video-upload-service/internal/entity"
)

// ErrMiss reports that a record is not cached.
var ErrMiss = errors.New("cache: miss")

// Videos stores JSON-encoded video records in Redis with a TTL. It takes
// redis.Cmdable so tests can substitute a mock client.
type Videos struct {
	client redis.Cmdable
	ttl    time.Duration
}

func New(client redis.Cmdable, ttl time.Duration) *Videos {
	return &Videos{client: client, ttl: ttl}
}

func cacheKey(id uint) string {
	return fmt.Sprintf("video:%d", id)
}

func (c *Videos) Get(ctx context.Context, id uint) (*entity.Video, error) {
	val, err := c.client.Get(ctx, cacheKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, err
	}
	var v entity.Video
	if err := json.Unmarshal([]byte(val), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Videos) Set(ctx context.Context, v *entity.Video) error {
	if v == nil {
		return errors.New("cache: nil video")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(v.ID), data, c.ttl).Err()
}
