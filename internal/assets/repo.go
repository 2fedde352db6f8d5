package assets

import (
	"context"

	"github.com/anodeen/HeadShot/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for generated assets.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateBatch(ctx context.Context, assets []models.GeneratedAsset) error
	ListByJobID(ctx context.Context, jobID int64) ([]models.GeneratedAsset, error)
	FindByTokenForTenant(ctx context.Context, token string, tenantID int64) (*models.GeneratedAsset, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an assets repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateBatch(ctx context.Context, assets []models.GeneratedAsset) error {
	if len(assets) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&assets).Error
}

func (r *repository) ListByJobID(ctx context.Context, jobID int64) ([]models.GeneratedAsset, error) {
	var assets []models.GeneratedAsset
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("id ASC").
		Find(&assets).Error
	if err != nil {
		return nil, err
	}
	return assets, nil
}

// FindByTokenForTenant resolves a download token only when the owning chain
// (asset -> job -> order) lands on the tenant.
func (r *repository) FindByTokenForTenant(ctx context.Context, token string, tenantID int64) (*models.GeneratedAsset, error) {
	var asset models.GeneratedAsset
	err := r.db.WithContext(ctx).
		Joins("JOIN jobs ON jobs.id = generated_assets.job_id").
		Joins("JOIN orders ON orders.id = jobs.order_id").
		Where("generated_assets.download_token = ? AND orders.tenant_id = ?", token, tenantID).
		First(&asset).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}
