package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errReader struct{}

func (errReader) Read([]byte) (int, error) {
	return 0, errors.New("stream broke")
}

func TestLocalDiskPut(t *testing.T) {
	l, err := NewLocalDisk(t.TempDir())
	require.NoError(t, err)

	loc, err := l.Put(context.Background(), "clip.mp4", strings.NewReader("0123456789"), 10)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(l.Root(), "clip.mp4"), loc)

	data, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(data))

	ok, err := l.Exists(context.Background(), loc)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalDiskPutOverwrite(t *testing.T) {
	l, err := NewLocalDisk(t.TempDir())
	require.NoError(t, err)

	_, err = l.Put(context.Background(), "clip.mp4", strings.NewReader("first"), 5)
	require.NoError(t, err)

	// Same key again: last write wins.
	loc, err := l.Put(context.Background(), "clip.mp4", strings.NewReader("second"), 6)
	require.NoError(t, err)

	data, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestLocalDiskPutSubdirKey(t *testing.T) {
	l, err := NewLocalDisk(t.TempDir())
	require.NoError(t, err)

	loc, err := l.Put(context.Background(), "thumbs/clip.mp4", strings.NewReader("x"), 1)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(l.Root(), "thumbs", "clip.mp4"), loc)
}

func TestLocalDiskRejectsBadKeys(t *testing.T) {
	l, err := NewLocalDisk(t.TempDir())
	require.NoError(t, err)

	keys := []string{
		"",
		".",
		"..",
		"../etc/passwd",
		"a/../../escape",
		"/etc/passwd",
		"nested/../../escape",
	}
	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			_, err := l.Put(context.Background(), key, strings.NewReader("x"), 1)
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}

	// Nothing may have escaped or been left behind.
	entries, err := os.ReadDir(l.Root())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalDiskPutFailureLeavesNothing(t *testing.T) {
	l, err := NewLocalDisk(t.TempDir())
	require.NoError(t, err)

	_, err = l.Put(context.Background(), "clip.mp4", errReader{}, -1)
	assert.ErrorIs(t, err, ErrWriteFailed)

	// The temp file is cleaned up and no partial object is visible.
	entries, err := os.ReadDir(l.Root())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalDiskPutCancelledContext(t *testing.T) {
	l, err := NewLocalDisk(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = l.Put(ctx, "clip.mp4", strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, ErrWriteFailed)
}

func TestLocalDiskExistsMissing(t *testing.T) {
	l, err := NewLocalDisk(t.TempDir())
	require.NoError(t, err)

	ok, err := l.Exists(context.Background(), filepath.Join(l.Root(), "nope.mp4"))
	require.NoError(t, err)
	assert.False(t, ok)
}
