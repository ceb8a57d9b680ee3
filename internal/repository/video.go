package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dnascimb/video-upload-service/internal/entity"
)

var (
	ErrNotFound = errors.New("repository: video not found")
	ErrDatabase = errors.New("repository: database error")
)

// Videos is the metadata store. Records are created once and read back
// by id; there is no update or delete.
type Videos interface {
	Create(ctx context.Context, v *entity.Video) error
	GetByID(ctx context.Context, id uint) (*entity.Video, error)
}

type GormVideos struct {
	db *gorm.DB
}

var _ Videos = (*GormVideos)(nil)

func NewGormVideos(db *gorm.DB) *GormVideos {
	return &GormVideos{db: db}
}

// Create persists v and fills in its ID and UploadTime. Driver errors
// are wrapped under ErrDatabase; the raw text stays in the chain for
// logging and is never surfaced to clients.
func (r *GormVideos) Create(ctx context.Context, v *entity.Video) error {
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	return nil
}

func (r *GormVideos) GetByID(ctx context.Context, id uint) (*entity.Video, error) {
	var v entity.Video
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	return &v, nil
}
