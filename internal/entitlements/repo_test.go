package entitlements

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/anodeen/HeadShot/pkg/db/models"
	"github.com/anodeen/HeadShot/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.Job{}, &models.GeneratedAsset{}))
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, tenantID int64, credits int) *models.Order {
	t.Helper()
	order := &models.Order{
		TenantID:      tenantID,
		Plan:          enums.PlanBasic,
		TeamSize:      1,
		RerunCredits:  credits,
		AmountCents:   2900,
		PaymentStatus: enums.PaymentStatusPaid,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestListForTenantNewestFirstCapped(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		seedOrder(t, db, 1, 1)
	}
	seedOrder(t, db, 2, 1)

	orders, err := repo.ListForTenant(ctx, 1, 20)
	require.NoError(t, err)
	require.Len(t, orders, 20)
	for i := 1; i < len(orders); i++ {
		assert.Greater(t, orders[i-1].ID, orders[i].ID, "orders must be newest first")
	}
	for _, o := range orders {
		assert.Equal(t, int64(1), o.TenantID)
	}
}

func TestFindByIDForTenantMasksOtherTenants(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, 1, 1)

	found, err := repo.FindByIDForTenant(ctx, order.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = repo.FindByIDForTenant(ctx, order.ID, 2)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestDebitRerunCreditStopsAtZero(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, 1, 1)

	ok, err := repo.DebitRerunCredit(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DebitRerunCredit(ctx, order.ID)
	require.NoError(t, err)
	assert.False(t, ok, "second debit must fail once the balance is zero")

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, 0, reloaded.RerunCredits)
}

func TestDeleteCascadeRemovesJobsAndAssets(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, 1, 1)
	other := seedOrder(t, db, 1, 1)

	for i, target := range []*models.Order{order, other} {
		job := &models.Job{
			OrderID:     target.ID,
			Plan:        enums.PlanBasic,
			Style:       "studio",
			Background:  "white",
			Outfit:      "suit",
			UploadCount: 8,
		}
		require.NoError(t, db.Create(job).Error)
		require.NoError(t, db.Create(&models.GeneratedAsset{
			JobID:         job.ID,
			Variant:       enums.AssetVariantClassic,
			DownloadToken: fmt.Sprintf("token-%d", i),
		}).Error)
	}

	require.NoError(t, repo.DeleteCascade(ctx, order.ID))

	var orderCount, jobCount, assetCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.Job{}).Count(&jobCount).Error)
	require.NoError(t, db.Model(&models.GeneratedAsset{}).Count(&assetCount).Error)
	assert.Equal(t, int64(1), orderCount, "the sibling order must survive")
	assert.Equal(t, int64(1), jobCount)
	assert.Equal(t, int64(1), assetCount)
}
