package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSelectWithoutObjectStoreConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")

	backend, err := Select(context.Background(), Settings{
		LocalDir:     dir,
		ProbeTimeout: time.Second,
	}, zap.NewNop())
	require.NoError(t, err)

	_, ok := backend.(*LocalDisk)
	assert.True(t, ok)

	// The local storage directory is created as a side effect.
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSelectWithPartialObjectStoreConfig(t *testing.T) {
	backend, err := Select(context.Background(), Settings{
		ObjectStore: ObjectStoreConfig{
			Endpoint: "localhost:9000",
			// credentials and bucket missing
		},
		LocalDir:     t.TempDir(),
		ProbeTimeout: time.Second,
	}, zap.NewNop())
	require.NoError(t, err)

	_, ok := backend.(*LocalDisk)
	assert.True(t, ok)
}

func TestSelectProbeFailureFallsBack(t *testing.T) {
	// Nothing listens on port 1, so the reachability probe fails fast.
	backend, err := Select(context.Background(), Settings{
		ObjectStore: ObjectStoreConfig{
			Endpoint:        "127.0.0.1:1",
			AccessKeyID:     "key",
			SecretAccessKey: "secret",
			Bucket:          "videos",
		},
		LocalDir:     t.TempDir(),
		ProbeTimeout: 500 * time.Millisecond,
	}, zap.NewNop())
	require.NoError(t, err)

	_, ok := backend.(*LocalDisk)
	assert.True(t, ok)
}
