package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalDisk stores objects as plain files under a root directory. It is
// the fallback backend when no object store is configured or reachable.
type LocalDisk struct {
	root string
}

var _ Backend = (*LocalDisk)(nil)

func NewLocalDisk(root string) (*LocalDisk, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalDisk{root: abs}, nil
}

// Root returns the absolute directory objects are written under.
func (l *LocalDisk) Root() string {
	return l.root
}

// sanitizeKey rejects keys that could escape the root directory.
func sanitizeKey(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if filepath.IsAbs(key) || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	clean := filepath.Clean(key)
	if clean == "." || strings.HasPrefix(clean, string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return clean, nil
}

// Put writes to a temp file in the destination directory, syncs it, then
// renames it into place. A reader can therefore never observe a partial
// object, and any failure leaves nothing behind but the final file from
// an earlier successful write.
func (l *LocalDisk) Put(ctx context.Context, key string, r io.Reader, size int64) (string, error) {
	clean, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	dest := filepath.Join(l.root, clean)
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	return dest, nil
}

func (l *LocalDisk) Exists(ctx context.Context, location string) (bool, error) {
	if _, err := os.Stat(location); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
