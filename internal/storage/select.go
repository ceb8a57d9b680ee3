package storage

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Settings drives the one-shot backend selection at process startup.
type Settings struct {
	ObjectStore  ObjectStoreConfig
	LocalDir     string
	ProbeTimeout time.Duration
}

// Select decides the active backend exactly once. The object store wins
// when it is fully configured and its bucket answers a reachability
// probe; anything else degrades to local disk with a logged warning. The
// selection is never re-evaluated per request.
func Select(ctx context.Context, s Settings, log *zap.Logger) (Backend, error) {
	if !s.ObjectStore.Complete() {
		log.Info("object store not configured, using local disk",
			zap.String("dir", s.LocalDir))
		return NewLocalDisk(s.LocalDir)
	}

	store, err := NewObjectStore(s.ObjectStore)
	if err == nil {
		probeCtx, cancel := context.WithTimeout(ctx, s.ProbeTimeout)
		defer cancel()
		if err = store.Probe(probeCtx); err == nil {
			log.Info("object store selected",
				zap.String("endpoint", s.ObjectStore.Endpoint),
				zap.String("bucket", s.ObjectStore.Bucket))
			return store, nil
		}
	}

	log.Warn("object store unavailable, falling back to local disk",
		zap.String("dir", s.LocalDir),
		zap.Error(err))
	return NewLocalDisk(s.LocalDir)
}
