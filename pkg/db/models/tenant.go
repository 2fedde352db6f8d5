package models

import "time"

// Tenant is the canonical customer identity. Email is stored lowercased and
// is immutable after registration.
type Tenant struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Email        string    `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;type:text;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
