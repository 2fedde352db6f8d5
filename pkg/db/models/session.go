package models

import "time"

// Session maps an opaque bearer token to a tenant. Rows live until logout or
// until the retention sweeper prunes them.
type Session struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Token     string    `gorm:"column:token;type:text;not null;uniqueIndex"`
	TenantID  int64     `gorm:"column:tenant_id;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
