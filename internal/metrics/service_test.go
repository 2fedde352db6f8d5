package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/anodeen/HeadShot/internal/entitlements"
	"github.com/anodeen/HeadShot/internal/jobs"
	"github.com/anodeen/HeadShot/internal/support"
	"github.com/anodeen/HeadShot/pkg/db/models"
	"github.com/anodeen/HeadShot/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupMetricsService(t *testing.T) (Service, *gorm.DB, *time.Time) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.Job{}, &models.SupportTicket{}))

	current := time.Now()
	svc, err := NewService(ServiceParams{
		Orders:  entitlements.NewRepository(db),
		Jobs:    jobs.NewRepository(db),
		Support: support.NewRepository(db),
		Now:     func() time.Time { return current },
	})
	require.NoError(t, err)
	return svc, db, &current
}

func TestSnapshotAggregatesTenantScope(t *testing.T) {
	svc, db, now := setupMetricsService(t)
	ctx := context.Background()

	order := &models.Order{TenantID: 1, Plan: enums.PlanBasic, TeamSize: 1, RerunCredits: 1, AmountCents: 2900, PaymentStatus: enums.PaymentStatusPaid}
	require.NoError(t, db.Create(order).Error)
	foreign := &models.Order{TenantID: 2, Plan: enums.PlanBasic, TeamSize: 1, RerunCredits: 1, AmountCents: 2900, PaymentStatus: enums.PaymentStatusPaid}
	require.NoError(t, db.Create(foreign).Error)

	for _, age := range []time.Duration{30 * time.Second, 30 * time.Second, 10 * time.Second} {
		require.NoError(t, db.Create(&models.Job{
			OrderID: order.ID, Plan: enums.PlanBasic, Style: "s", Background: "b", Outfit: "o",
			UploadCount: 8, CreatedAt: now.Add(-age),
		}).Error)
	}
	require.NoError(t, db.Create(&models.SupportTicket{TenantID: 1, Email: "a@b.com", Message: "hi"}).Error)
	require.NoError(t, db.Create(&models.SupportTicket{TenantID: 2, Email: "x@y.com", Message: "yo"}).Error)

	snap, err := svc.Snapshot(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.Orders)
	assert.Equal(t, int64(3), snap.Jobs)
	assert.Equal(t, int64(2), snap.CompletedJobs)
	assert.Equal(t, int64(1), snap.SupportTickets)
	assert.InDelta(t, 33.3, snap.EstimatedConversionRate, 0.001)
}

func TestSnapshotZeroJobsHasZeroConversion(t *testing.T) {
	svc, db, _ := setupMetricsService(t)

	order := &models.Order{TenantID: 1, Plan: enums.PlanBasic, TeamSize: 1, RerunCredits: 1, AmountCents: 2900, PaymentStatus: enums.PaymentStatusPaid}
	require.NoError(t, db.Create(order).Error)

	snap, err := svc.Snapshot(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.Orders)
	assert.Zero(t, snap.Jobs)
	assert.Zero(t, snap.EstimatedConversionRate)
}
