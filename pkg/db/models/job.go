package models

import (
	"time"

	"github.com/anodeen/HeadShot/pkg/enums"
)

// Job is one generation request against an order. No status column exists:
// CreatedAt alone drives the derived state. SourceJobID is set only on
// rerun clones.
type Job struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID     int64      `gorm:"column:order_id;not null;index"`
	SourceJobID *int64     `gorm:"column:source_job_id"`
	Plan        enums.Plan `gorm:"column:plan;type:text;not null"`
	Style       string     `gorm:"column:style;type:text;not null"`
	Background  string     `gorm:"column:background;type:text;not null"`
	Outfit      string     `gorm:"column:outfit;type:text;not null"`
	UploadCount int        `gorm:"column:upload_count;not null"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
}
