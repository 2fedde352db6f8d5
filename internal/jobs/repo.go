package jobs

import (
	"context"
	"time"

	"github.com/anodeen/HeadShot/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the job ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, job *models.Job) (*models.Job, error)
	FindByIDForTenant(ctx context.Context, jobID, tenantID int64) (*models.Job, error)
	ListForTenant(ctx context.Context, tenantID int64, limit int) ([]models.Job, error)
	DeleteCascade(ctx context.Context, jobID int64) error
	CountForTenant(ctx context.Context, tenantID int64) (int64, error)
	CountCompletedForTenant(ctx context.Context, tenantID int64, completedCutoff time.Time) (int64, error)
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a jobs repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

// FindByIDForTenant resolves a job only when its parent order belongs to the
// tenant. Cross-tenant ids surface as record-not-found.
func (r *repository) FindByIDForTenant(ctx context.Context, jobID, tenantID int64) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).
		Joins("JOIN orders ON orders.id = jobs.order_id").
		Where("jobs.id = ? AND orders.tenant_id = ?", jobID, tenantID).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *repository) ListForTenant(ctx context.Context, tenantID int64, limit int) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Joins("JOIN orders ON orders.id = jobs.order_id").
		Where("orders.tenant_id = ?", tenantID).
		Order("jobs.id DESC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// DeleteCascade removes a job's assets before the job row. Callers check
// ownership first and run this inside a transaction.
func (r *repository) DeleteCascade(ctx context.Context, jobID int64) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("job_id = ?", jobID).Delete(&models.GeneratedAsset{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", jobID).Delete(&models.Job{}).Error
}

func (r *repository) CountForTenant(ctx context.Context, tenantID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Joins("JOIN orders ON orders.id = jobs.order_id").
		Where("orders.tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}

// CountCompletedForTenant counts jobs whose derived status is completed, i.e.
// created at or before the caller-computed cutoff (now minus the processing
// window).
func (r *repository) CountCompletedForTenant(ctx context.Context, tenantID int64, completedCutoff time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Joins("JOIN orders ON orders.id = jobs.order_id").
		Where("orders.tenant_id = ? AND jobs.created_at <= ?", tenantID, completedCutoff).
		Count(&count).Error
	return count, err
}

// DeleteCreatedBefore removes jobs past the output retention window together
// with their assets, child rows first.
func (r *repository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := r.db.WithContext(ctx)

	if err := tx.
		Where("job_id IN (?)", tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.Job{}).
			Select("id").
			Where("created_at < ?", cutoff)).
		Delete(&models.GeneratedAsset{}).Error; err != nil {
		return 0, err
	}
	res := tx.Where("created_at < ?", cutoff).Delete(&models.Job{})
	return res.RowsAffected, res.Error
}
