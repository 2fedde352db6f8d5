package tenants

import (
	"context"

	"github.com/anodeen/HeadShot/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for tenant identities.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error)
	FindByEmail(ctx context.Context, email string) (*models.Tenant, error)
	FindByID(ctx context.Context, id int64) (*models.Tenant, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a tenants repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error) {
	if err := r.db.WithContext(ctx).Create(tenant).Error; err != nil {
		return nil, err
	}
	return tenant, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&tenant).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&tenant).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}
