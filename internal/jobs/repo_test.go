package jobs

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/anodeen/HeadShot/pkg/db/models"
	"github.com/anodeen/HeadShot/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupJobsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.Job{}, &models.GeneratedAsset{}))
	return db
}

func seedPaidOrder(t *testing.T, db *gorm.DB, tenantID int64) *models.Order {
	t.Helper()
	order := &models.Order{
		TenantID:      tenantID,
		Plan:          enums.PlanBasic,
		TeamSize:      1,
		RerunCredits:  1,
		AmountCents:   2900,
		PaymentStatus: enums.PaymentStatusPaid,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func seedJob(t *testing.T, db *gorm.DB, orderID int64) *models.Job {
	t.Helper()
	job := &models.Job{
		OrderID:     orderID,
		Plan:        enums.PlanBasic,
		Style:       "studio",
		Background:  "white",
		Outfit:      "suit",
		UploadCount: 8,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

func TestFindByIDForTenantWalksOwnershipChain(t *testing.T) {
	db := setupJobsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedPaidOrder(t, db, 1)
	job := seedJob(t, db, order.ID)

	found, err := repo.FindByIDForTenant(ctx, job.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, job.ID, found.ID)

	_, err = repo.FindByIDForTenant(ctx, job.ID, 2)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound), "cross-tenant lookup must read as missing")
}

func TestListForTenantNewestFirstCapped(t *testing.T) {
	db := setupJobsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedPaidOrder(t, db, 1)
	foreign := seedPaidOrder(t, db, 2)
	for i := 0; i < 25; i++ {
		seedJob(t, db, order.ID)
	}
	seedJob(t, db, foreign.ID)

	rows, err := repo.ListForTenant(ctx, 1, 20)
	require.NoError(t, err)
	require.Len(t, rows, 20)
	for i := 1; i < len(rows); i++ {
		assert.Greater(t, rows[i-1].ID, rows[i].ID)
	}
	for _, row := range rows {
		assert.Equal(t, order.ID, row.OrderID)
	}
}

func TestDeleteCascadeRemovesAssetsFirst(t *testing.T) {
	db := setupJobsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedPaidOrder(t, db, 1)
	job := seedJob(t, db, order.ID)
	keep := seedJob(t, db, order.ID)
	for i, target := range []*models.Job{job, keep} {
		require.NoError(t, db.Create(&models.GeneratedAsset{
			JobID:         target.ID,
			Variant:       enums.AssetVariantClassic,
			DownloadToken: fmt.Sprintf("token-%d", i),
		}).Error)
	}

	require.NoError(t, repo.DeleteCascade(ctx, job.ID))

	var jobCount, assetCount int64
	require.NoError(t, db.Model(&models.Job{}).Count(&jobCount).Error)
	require.NoError(t, db.Model(&models.GeneratedAsset{}).Count(&assetCount).Error)
	assert.Equal(t, int64(1), jobCount)
	assert.Equal(t, int64(1), assetCount)
}

func TestCompletedCountUsesCutoff(t *testing.T) {
	db := setupJobsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedPaidOrder(t, db, 1)
	now := time.Now()

	done := &models.Job{OrderID: order.ID, Plan: enums.PlanBasic, Style: "s", Background: "b", Outfit: "o", UploadCount: 8, CreatedAt: now.Add(-30 * time.Second)}
	pending := &models.Job{OrderID: order.ID, Plan: enums.PlanBasic, Style: "s", Background: "b", Outfit: "o", UploadCount: 8, CreatedAt: now.Add(-10 * time.Second)}
	require.NoError(t, db.Create(done).Error)
	require.NoError(t, db.Create(pending).Error)

	total, err := repo.CountForTenant(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	completed, err := repo.CountCompletedForTenant(ctx, 1, now.Add(-25*time.Second))
	require.NoError(t, err)
	assert.Equal(t, int64(1), completed)
}

func TestDeleteCreatedBeforeSweepsJobsAndAssets(t *testing.T) {
	db := setupJobsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedPaidOrder(t, db, 1)
	old := &models.Job{OrderID: order.ID, Plan: enums.PlanBasic, Style: "s", Background: "b", Outfit: "o", UploadCount: 8, CreatedAt: time.Now().Add(-31 * 24 * time.Hour)}
	require.NoError(t, db.Create(old).Error)
	require.NoError(t, db.Create(&models.GeneratedAsset{JobID: old.ID, Variant: enums.AssetVariantModern, DownloadToken: "stale"}).Error)
	fresh := seedJob(t, db, order.ID)

	swept, err := repo.DeleteCreatedBefore(ctx, time.Now().Add(-30*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), swept)

	var assetCount int64
	require.NoError(t, db.Model(&models.GeneratedAsset{}).Count(&assetCount).Error)
	assert.Zero(t, assetCount)

	_, err = repo.FindByIDForTenant(ctx, fresh.ID, 1)
	assert.NoError(t, err)
}
