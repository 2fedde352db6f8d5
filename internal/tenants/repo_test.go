package tenants

import (
	"context"
	"errors"
	"testing"

	"github.com/anodeen/HeadShot/pkg/db/models"
	pkgerrors "github.com/anodeen/HeadShot/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTenantsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Tenant{}))
	return db
}

func TestCreateAndFindTenant(t *testing.T) {
	db := setupTenantsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Tenant{
		Email:        "casey@example.com",
		PasswordHash: "digest",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	byEmail, err := repo.FindByEmail(ctx, "casey@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "casey@example.com", byID.Email)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestDuplicateEmailHitsUniqueIndex(t *testing.T) {
	db := setupTenantsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.Tenant{Email: "dup@example.com", PasswordHash: "a"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.Tenant{Email: "dup@example.com", PasswordHash: "b"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsUniqueViolation(err))
}
