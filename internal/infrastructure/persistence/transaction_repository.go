package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/openfms/backend/internal/domain/fundcontrol"
	"github.com/openfms/backend/internal/domain/ledger"
	"github.com/openfms/backend/internal/domain/shared"
	"github.com/openfms/backend/internal/infrastructure/persistence/models"
)

// GormTransactionRepository implements ledger.TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Save persists a posted transaction with its lines
func (r *GormTransactionRepository) Save(ctx context.Context, tx *ledger.Transaction) error {
	var model models.TransactionModel
	model.FromDomain(tx)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByID finds a transaction by its ID, lines in posting order
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List finds transactions matching the filter, newest first
func (r *GormTransactionRepository) List(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TransactionModel{})
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type.String())
	}
	if filter.SourceModule != "" {
		query = query.Where("source_module = ?", filter.SourceModule)
	}
	if filter.ReferenceID != "" {
		query = query.Where("reference_id = ?", filter.ReferenceID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var rows []models.TransactionModel
	if err := query.
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("date DESC, created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	transactions := make([]*ledger.Transaction, len(rows))
	for i := range rows {
		transactions[i] = rows[i].ToDomain()
	}
	return transactions, total, nil
}

// TotalsByAccount sums debit and credit activity per account
func (r *GormTransactionRepository) TotalsByAccount(ctx context.Context) ([]ledger.AccountTotal, error) {
	var rows []struct {
		AccountCode string
		Debits      decimal.Decimal
		Credits     decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.LineModel{}).
		Select("account_code, COALESCE(SUM(debit), 0) AS debits, COALESCE(SUM(credit), 0) AS credits").
		Group("account_code").
		Order("account_code ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make([]ledger.AccountTotal, 0, len(rows))
	for _, row := range rows {
		total := ledger.AccountTotal{
			AccountCode: row.AccountCode,
			Debits:      row.Debits,
			Credits:     row.Credits,
		}
		if account, ok := ledger.LookupAccount(row.AccountCode); ok {
			total.Title = account.Title
		}
		totals = append(totals, total)
	}
	return totals, nil
}

// Ensure GormTransactionRepository implements ledger.TransactionRepository
var _ ledger.TransactionRepository = (*GormTransactionRepository)(nil)

// GormPostingStore persists a posted transaction together with the
// authority tree consumed by it in one database transaction, so a
// failed tree write never leaves an orphaned ledger entry.
type GormPostingStore struct {
	db *gorm.DB
}

// NewGormPostingStore creates a new GormPostingStore
func NewGormPostingStore(db *gorm.DB) *GormPostingStore {
	return &GormPostingStore{db: db}
}

// SavePosted writes the transaction and, when root is non-nil, the
// updated authority tree snapshot atomically
func (s *GormPostingStore) SavePosted(ctx context.Context, tx *ledger.Transaction, root *fundcontrol.Node) error {
	var model models.TransactionModel
	model.FromDomain(tx)

	return s.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		if err := dbtx.Create(&model).Error; err != nil {
			return err
		}
		if root == nil {
			return nil
		}
		if err := dbtx.Where("1 = 1").Delete(&models.FundNodeModel{}).Error; err != nil {
			return err
		}
		rows := flattenTree(root, nil)
		return dbtx.Create(&rows).Error
	})
}
