package models

import (
	"time"

	"github.com/anodeen/HeadShot/pkg/enums"
)

// Notification is an append-only tenant feed entry.
type Notification struct {
	ID        int64                  `gorm:"column:id;primaryKey;autoIncrement"`
	TenantID  int64                  `gorm:"column:tenant_id;not null;index"`
	Type      enums.NotificationType `gorm:"column:type;type:text;not null"`
	Message   string                 `gorm:"column:message;type:text;not null"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
}
