package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dnascimb/video-upload-service/internal/entity"
	"github.com/dnascimb/video-upload-service/internal/repository"
	"github.com/dnascimb/video-upload-service/internal/storage"
)

// ErrInvalidInput marks client mistakes: missing file, empty filename.
var ErrInvalidInput = errors.New("service: invalid input")

// Uploader runs the upload pipeline: read the stream, write the bytes to
// the active backend, then record metadata. The metadata row is written
// strictly after the bytes, so a row never points at content that was
// not stored. The reverse can happen: a crash between the storage write
// and the DB insert leaves an orphan object with no row. That is the
// accepted degraded state; no reconciliation job exists here.
type Uploader struct {
	Backend storage.Backend
	Videos  repository.Videos

	// Probe extracts a media duration from the buffered upload; nil
	// disables probing. Probe failures never fail the upload.
	Probe func(data []byte) (float64, error)

	// PutTimeout bounds the storage write; zero means no extra bound
	// beyond the request context.
	PutTimeout time.Duration

	Log *zap.Logger
}

// Upload persists one file and returns the created record. The reported
// size is the count of bytes actually read from r; any client-declared
// size is ignored.
func (u *Uploader) Upload(ctx context.Context, filename string, r io.Reader) (*entity.Video, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, fmt.Errorf("%w: empty filename", ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload stream: %w", err)
	}
	if err := ctx.Err(); err != nil {
		// Client went away mid-read: abort before touching storage.
		return nil, err
	}

	key := filepath.Base(filename)

	putCtx := ctx
	if u.PutTimeout > 0 {
		var cancel context.CancelFunc
		putCtx, cancel = context.WithTimeout(ctx, u.PutTimeout)
		defer cancel()
	}
	location, err := u.Backend.Put(putCtx, key, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	video := &entity.Video{
		Filename:        filename,
		FileSize:        int64(len(data)),
		StorageLocation: location,
	}

	if u.Probe != nil {
		if d, perr := u.Probe(data); perr != nil {
			u.Log.Debug("duration probe failed",
				zap.String("filename", filename), zap.Error(perr))
		} else {
			video.DurationSec = &d
		}
	}

	if err := u.Videos.Create(ctx, video); err != nil {
		// The bytes are already written; this failure orphans them.
		u.Log.Error("metadata create failed after storage write",
			zap.String("location", location), zap.Error(err))
		return nil, err
	}

	u.Log.Info("upload complete",
		zap.Uint("id", video.ID),
		zap.String("filename", filename),
		zap.Int64("size", video.FileSize),
		zap.String("location", location))
	return video, nil
}
