package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openfms/backend/internal/domain/acquisition"
	"github.com/openfms/backend/internal/domain/shared"
	"github.com/openfms/backend/internal/infrastructure/persistence/models"
)

func setupAcquisitionTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.PurchaseRequestModel{},
		&models.SolicitationModel{},
		&models.ContractModel{},
	)
	require.NoError(t, err)

	return db
}

func newTestPurchaseRequest(t *testing.T, number string) *acquisition.PurchaseRequest {
	pr, err := acquisition.NewPurchaseRequest(number, "Survey equipment", "jdoe",
		decimal.NewFromInt(85000), "96X3123.B2100", "CC-ENG")
	require.NoError(t, err)
	return pr
}

func TestGormPurchaseRequestRepository_SaveAndFind(t *testing.T) {
	db := setupAcquisitionTestDB(t)
	repo := NewGormPurchaseRequestRepository(db)
	ctx := context.Background()

	t.Run("round-trips a purchase request", func(t *testing.T) {
		pr := newTestPurchaseRequest(t, "PR-2026-0001")
		require.NoError(t, pr.SubmitForCertification("jdoe"))
		require.NoError(t, repo.Save(ctx, pr))

		found, err := repo.FindByID(ctx, pr.ID)
		require.NoError(t, err)

		assert.Equal(t, pr.ID, found.ID)
		assert.Equal(t, "PR-2026-0001", found.RequestNumber)
		assert.Equal(t, acquisition.PRStatusPendingCertification, found.Status)
		assert.True(t, found.Amount.Equal(decimal.NewFromInt(85000)))
		assert.Equal(t, pr.Version, found.Version)

		require.NotNil(t, found.AuditLog.Last())
		assert.Equal(t, "jdoe", found.AuditLog.Last().User)
	})

	t.Run("finds by request number", func(t *testing.T) {
		found, err := repo.FindByNumber(ctx, "PR-2026-0001")
		require.NoError(t, err)
		assert.Equal(t, "PR-2026-0001", found.RequestNumber)
	})

	t.Run("save updates an existing request in place", func(t *testing.T) {
		found, err := repo.FindByNumber(ctx, "PR-2026-0001")
		require.NoError(t, err)

		require.NoError(t, found.CertifyFunds("rm.lee", "Authority verified at B2100"))
		require.NoError(t, repo.Save(ctx, found))

		reloaded, err := repo.FindByID(ctx, found.ID)
		require.NoError(t, err)
		assert.Equal(t, acquisition.PRStatusFundsCertified, reloaded.Status)
		assert.Equal(t, found.Version, reloaded.Version)

		_, total, err := repo.List(ctx, "", 0, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("returns not found for unknown ID", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormPurchaseRequestRepository_List(t *testing.T) {
	db := setupAcquisitionTestDB(t)
	repo := NewGormPurchaseRequestRepository(db)
	ctx := context.Background()

	draft := newTestPurchaseRequest(t, "PR-2026-0010")
	require.NoError(t, repo.Save(ctx, draft))

	pending := newTestPurchaseRequest(t, "PR-2026-0011")
	require.NoError(t, pending.SubmitForCertification("jdoe"))
	require.NoError(t, repo.Save(ctx, pending))

	t.Run("filters by status", func(t *testing.T) {
		results, total, err := repo.List(ctx, acquisition.PRStatusPendingCertification, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, results, 1)
		assert.Equal(t, "PR-2026-0011", results[0].RequestNumber)
	})

	t.Run("empty status returns all", func(t *testing.T) {
		_, total, err := repo.List(ctx, "", 0, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})
}
