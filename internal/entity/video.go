package entity

import (
	"time"
)

// Video is the canonical metadata record for an uploaded file. A row is
// only written after the bytes are durably stored, and records are
// immutable once created.
type Video struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Filename        string    `gorm:"index;not null" json:"filename"`
	FileSize        int64     `gorm:"not null" json:"fileSize"`
	StorageLocation string    `gorm:"not null" json:"storageLocation"`
	UploadTime      time.Time `gorm:"autoCreateTime;index" json:"uploadTime"`
	DurationSec     *float64  `json:"duration,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}
