package cache

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/dnascimb/video-upload-service/internal/entity"
	"github.com/dnascimb/video-upload-service/internal/repository"
)

// CachedVideos is a read-through decorator over a repository.Videos.
// Records are immutable once created, so cached entries can never go
// stale; the cache is an optimization, never a correctness dependency,
// and every cache failure degrades to the underlying store.
type CachedVideos struct {
	next  repository.Videos
	store *Videos
	log   *zap.Logger
}

var _ repository.Videos = (*CachedVideos)(nil)

func NewCachedVideos(next repository.Videos, store *Videos, log *zap.Logger) *CachedVideos {
	return &CachedVideos{next: next, store: store, log: log}
}

func (c *CachedVideos) Create(ctx context.Context, v *entity.Video) error {
	if err := c.next.Create(ctx, v); err != nil {
		return err
	}
	if err := c.store.Set(ctx, v); err != nil {
		c.log.Warn("cache populate failed", zap.Uint("id", v.ID), zap.Error(err))
	}
	return nil
}

func (c *CachedVideos) GetByID(ctx context.Context, id uint) (*entity.Video, error) {
	v, err := c.store.Get(ctx, id)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, ErrMiss) {
		c.log.Warn("cache read failed", zap.Uint("id", id), zap.Error(err))
	}

	v, err = c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.store.Set(ctx, v); err != nil {
		c.log.Warn("cache populate failed", zap.Uint("id", id), zap.Error(err))
	}
	return v, nil
}
