package support

import (
	"context"

	"github.com/anodeen/HeadShot/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for support tickets.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, ticket *models.SupportTicket) (*models.SupportTicket, error)
	CountForTenant(ctx context.Context, tenantID int64) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a support repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, ticket *models.SupportTicket) (*models.SupportTicket, error) {
	if err := r.db.WithContext(ctx).Create(ticket).Error; err != nil {
		return nil, err
	}
	return ticket, nil
}

func (r *repository) CountForTenant(ctx context.Context, tenantID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SupportTicket{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}
