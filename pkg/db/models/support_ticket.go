package models

import "time"

// SupportTicket is an append-only contact record. OrderID is optional and
// not verified against the orders table.
type SupportTicket struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	TenantID  int64     `gorm:"column:tenant_id;not null;index"`
	Email     string    `gorm:"column:email;type:text;not null"`
	OrderID   *int64    `gorm:"column:order_id"`
	Message   string    `gorm:"column:message;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
