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

	"github.com/openfms/backend/internal/domain/ledger"
	"github.com/openfms/backend/internal/domain/shared"
	"github.com/openfms/backend/internal/infrastructure/persistence/models"
)

func setupLedgerTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.TransactionModel{}, &models.LineModel{}, &models.FundNodeModel{})
	require.NoError(t, err)

	return db
}

func newCommitmentTransaction(t *testing.T, requestNumber string, amount int64) *ledger.Transaction {
	tx, err := ledger.GenerateCommitmentFromPurchaseRequest(ledger.PurchaseCommitment{
		RequestNumber: requestNumber,
		Description:   "Survey equipment",
		Amount:        decimal.NewFromInt(amount),
		FundingCode:   "96X3123.B2100",
		CostCenter:    "CC-ENG",
	}, "jdoe")
	require.NoError(t, err)
	return tx
}

func TestGormTransactionRepository_SaveAndFind(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewGormTransactionRepository(db)
	ctx := context.Background()

	t.Run("round-trips a transaction with its lines", func(t *testing.T) {
		tx := newCommitmentTransaction(t, "PR-2026-0001", 85000)
		require.NoError(t, repo.Save(ctx, tx))

		found, err := repo.FindByID(ctx, tx.ID)
		require.NoError(t, err)

		assert.Equal(t, tx.ID, found.ID)
		assert.Equal(t, ledger.TypeCommitment, found.Type)
		assert.Equal(t, ledger.SourceAcquisition, found.SourceModule)
		assert.Equal(t, "PR-2026-0001", found.ReferenceID)
		assert.Equal(t, ledger.StatusPosted, found.Status)
		assert.True(t, found.TotalAmount.Equal(decimal.NewFromInt(85000)))

		require.Len(t, found.Lines, 2)
		assert.Equal(t, ledger.AccountAllotments, found.Lines[0].AccountCode)
		assert.Equal(t, ledger.AccountCommitments, found.Lines[1].AccountCode)
		assert.True(t, found.Balanced())

		require.NotNil(t, found.AuditLog.Last())
		assert.Equal(t, "POSTED", found.AuditLog.Last().Action)
	})

	t.Run("returns not found for unknown ID", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormTransactionRepository_List(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewGormTransactionRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newCommitmentTransaction(t, "PR-2026-0001", 85000)))
	require.NoError(t, repo.Save(ctx, newCommitmentTransaction(t, "PR-2026-0002", 42000)))

	obligation, err := ledger.GenerateObligationFromContract(
		"W912EK-26-C-0001", "Survey equipment award",
		decimal.NewFromInt(83500), decimal.Zero, "96X3123.B2100", "CC-ENG", "ko.smith")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, obligation))

	t.Run("filters by type", func(t *testing.T) {
		results, total, err := repo.List(ctx, ledger.ListFilter{Type: ledger.TypeCommitment})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, results, 2)
	})

	t.Run("filters by reference", func(t *testing.T) {
		results, total, err := repo.List(ctx, ledger.ListFilter{ReferenceID: "W912EK-26-C-0001"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, results, 1)
		assert.Equal(t, ledger.TypeObligation, results[0].Type)
	})

	t.Run("paginates", func(t *testing.T) {
		results, total, err := repo.List(ctx, ledger.ListFilter{Page: 1, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, results, 2)
	})
}

func TestGormTransactionRepository_TotalsByAccount(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewGormTransactionRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newCommitmentTransaction(t, "PR-2026-0001", 85000)))
	require.NoError(t, repo.Save(ctx, newCommitmentTransaction(t, "PR-2026-0002", 15000)))

	totals, err := repo.TotalsByAccount(ctx)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	byAccount := make(map[string]ledger.AccountTotal, len(totals))
	for _, total := range totals {
		byAccount[total.AccountCode] = total
	}

	allotments := byAccount[ledger.AccountAllotments]
	assert.Equal(t, "Allotments - Realized Resources", allotments.Title)
	assert.True(t, allotments.Debits.Equal(decimal.NewFromInt(100000)))
	assert.True(t, allotments.Credits.Equal(decimal.Zero))

	commitments := byAccount[ledger.AccountCommitments]
	assert.True(t, commitments.Credits.Equal(decimal.NewFromInt(100000)))
}

func TestGormPostingStore_SavePosted(t *testing.T) {
	db := setupLedgerTestDB(t)
	store := NewGormPostingStore(db)
	treeRepo := NewGormFundTreeRepository(db)
	txRepo := NewGormTransactionRepository(db)
	ctx := context.Background()

	t.Run("persists transaction and tree snapshot together", func(t *testing.T) {
		tree := buildAuthorityTree(t)
		allot := tree.Children[0].Children[0]
		require.NoError(t, allot.Obligate(decimal.NewFromInt(85000)))

		tx := newCommitmentTransaction(t, "PR-2026-0001", 85000)
		require.NoError(t, store.SavePosted(ctx, tx, tree))

		found, err := txRepo.FindByID(ctx, tx.ID)
		require.NoError(t, err)
		assert.Equal(t, tx.ID, found.ID)

		loaded, err := treeRepo.LoadTree(ctx)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		node := loaded.Find("96X3123.B2100")
		require.NotNil(t, node)
		assert.True(t, node.AmountObligated.Equal(decimal.NewFromInt(85000)))
	})

	t.Run("nil tree leaves the stored snapshot untouched", func(t *testing.T) {
		tx := newCommitmentTransaction(t, "PR-2026-0002", 1000)
		require.NoError(t, store.SavePosted(ctx, tx, nil))

		loaded, err := treeRepo.LoadTree(ctx)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		node := loaded.Find("96X3123.B2100")
		require.NotNil(t, node)
		assert.True(t, node.AmountObligated.Equal(decimal.NewFromInt(85000)))
	})
}

func TestGormPostingStore_FailedWriteLeavesNoPartialState(t *testing.T) {
	db := setupLedgerTestDB(t)
	store := NewGormPostingStore(db)
	treeRepo := NewGormFundTreeRepository(db)
	txRepo := NewGormTransactionRepository(db)
	ctx := context.Background()

	tx := newCommitmentTransaction(t, "PR-2026-0003", 500)
	require.NoError(t, store.SavePosted(ctx, tx, nil))

	// Re-posting the same transaction ID fails; neither the duplicate row
	// nor the accompanying tree snapshot may survive.
	err := store.SavePosted(ctx, tx, buildAuthorityTree(t))
	require.Error(t, err)

	_, total, err := txRepo.List(ctx, ledger.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	loaded, err := treeRepo.LoadTree(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
