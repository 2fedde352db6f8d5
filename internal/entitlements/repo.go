package entitlements

import (
	"context"

	"github.com/anodeen/HeadShot/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for orders and their credit balances.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByIDForTenant(ctx context.Context, id, tenantID int64) (*models.Order, error)
	ListForTenant(ctx context.Context, tenantID int64, limit int) ([]models.Order, error)
	DebitRerunCredit(ctx context.Context, orderID int64) (bool, error)
	DeleteCascade(ctx context.Context, orderID int64) error
	CountForTenant(ctx context.Context, tenantID int64) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) FindByIDForTenant(ctx context.Context, id, tenantID int64) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListForTenant(ctx context.Context, tenantID int64, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("id DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// DebitRerunCredit decrements the balance only while it is positive. The
// conditional update makes concurrent debits against a balance of 1 resolve
// to exactly one winner.
func (r *repository) DebitRerunCredit(ctx context.Context, orderID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND rerun_credits > 0", orderID).
		UpdateColumn("rerun_credits", gorm.Expr("rerun_credits - 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteCascade removes an order's assets, then its jobs, then the order row,
// child before parent so an interrupted transaction never strands references.
// Callers check ownership first and run this inside a transaction.
func (r *repository) DeleteCascade(ctx context.Context, orderID int64) error {
	tx := r.db.WithContext(ctx)

	if err := tx.
		Where("job_id IN (?)", tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.Job{}).
			Select("id").
			Where("order_id = ?", orderID)).
		Delete(&models.GeneratedAsset{}).Error; err != nil {
		return err
	}
	if err := tx.Where("order_id = ?", orderID).Delete(&models.Job{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", orderID).Delete(&models.Order{}).Error
}

func (r *repository) CountForTenant(ctx context.Context, tenantID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}
