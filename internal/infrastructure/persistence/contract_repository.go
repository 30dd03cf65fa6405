package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openfms/backend/internal/domain/acquisition"
	"github.com/openfms/backend/internal/domain/shared"
	"github.com/openfms/backend/internal/infrastructure/persistence/models"
)

// GormContractRepository implements acquisition.ContractRepository using GORM
type GormContractRepository struct {
	db *gorm.DB
}

// NewGormContractRepository creates a new GormContractRepository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

// Save creates or updates a contract
func (r *GormContractRepository) Save(ctx context.Context, c *acquisition.Contract) error {
	var model models.ContractModel
	model.FromDomain(c)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByID finds a contract by its ID
func (r *GormContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*acquisition.Contract, error) {
	var model models.ContractModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a contract by its contract number
func (r *GormContractRepository) FindByNumber(ctx context.Context, contractNumber string) (*acquisition.Contract, error) {
	var model models.ContractModel
	if err := r.db.WithContext(ctx).
		Where("contract_number = ?", contractNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List finds contracts, optionally filtered by status, newest first
func (r *GormContractRepository) List(ctx context.Context, status acquisition.ContractStatus, page, pageSize int) ([]*acquisition.Contract, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ContractModel{})
	if status != "" {
		query = query.Where("status = ?", status.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page > 0 && pageSize > 0 {
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var rows []models.ContractModel
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	contracts := make([]*acquisition.Contract, len(rows))
	for i := range rows {
		contracts[i] = rows[i].ToDomain()
	}
	return contracts, total, nil
}

// Ensure GormContractRepository implements ContractRepository
var _ acquisition.ContractRepository = (*GormContractRepository)(nil)
