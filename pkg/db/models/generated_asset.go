package models

import (
	"time"

	"github.com/anodeen/HeadShot/pkg/enums"
)

// GeneratedAsset is a deliverable rendition tied to a job. Rows are written
// in the same transaction as the job; visibility is gated at read time on
// the job's derived completion.
type GeneratedAsset struct {
	ID            int64              `gorm:"column:id;primaryKey;autoIncrement"`
	JobID         int64              `gorm:"column:job_id;not null;index"`
	Variant       enums.AssetVariant `gorm:"column:variant;type:text;not null"`
	DownloadToken string             `gorm:"column:download_token;type:text;not null;uniqueIndex"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
}
