package notifications

import (
	"context"
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

func setupNotificationsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Notification{}))
	return db
}

func TestListForTenantIsScopedAndNewestFirst(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, &models.Notification{
			TenantID: 1,
			Type:     enums.NotificationTypeOrderCreated,
			Message:  "Payment successful. Order created.",
		})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, &models.Notification{
		TenantID: 2,
		Type:     enums.NotificationTypeJobAccepted,
		Message:  "Generation job accepted.",
	})
	require.NoError(t, err)

	rows, err := repo.ListForTenant(ctx, 1, 20)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Greater(t, rows[0].ID, rows[1].ID)
	for _, row := range rows {
		assert.Equal(t, int64(1), row.TenantID)
	}
}

func TestDeleteCreatedBefore(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	old := &models.Notification{TenantID: 1, Type: enums.NotificationTypeOrderCreated, Message: "old", CreatedAt: time.Now().Add(-40 * 24 * time.Hour)}
	require.NoError(t, db.Create(old).Error)
	_, err := repo.Create(ctx, &models.Notification{TenantID: 1, Type: enums.NotificationTypeOrderCreated, Message: "fresh"})
	require.NoError(t, err)

	deleted, err := repo.DeleteCreatedBefore(ctx, time.Now().Add(-30*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	rows, err := repo.ListForTenant(ctx, 1, 20)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "fresh", rows[0].Message)
}
