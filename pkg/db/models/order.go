package models

import (
	"time"

	"github.com/anodeen/HeadShot/pkg/enums"
)

// Order is a purchased package instance. AmountCents is derived server-side
// and RerunCredits only ever decreases, floored at zero.
type Order struct {
	ID            int64               `gorm:"column:id;primaryKey;autoIncrement"`
	TenantID      int64               `gorm:"column:tenant_id;not null;index"`
	Plan          enums.Plan          `gorm:"column:plan;type:text;not null"`
	TeamSize      int                 `gorm:"column:team_size;not null;default:1"`
	RerunCredits  int                 `gorm:"column:rerun_credits;not null;default:1"`
	AmountCents   int64               `gorm:"column:amount_cents;not null"`
	PaymentStatus enums.PaymentStatus `gorm:"column:payment_status;type:text;not null"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
}
