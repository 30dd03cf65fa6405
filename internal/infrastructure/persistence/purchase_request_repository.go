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

// GormPurchaseRequestRepository implements acquisition.PurchaseRequestRepository using GORM
type GormPurchaseRequestRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRequestRepository creates a new GormPurchaseRequestRepository
func NewGormPurchaseRequestRepository(db *gorm.DB) *GormPurchaseRequestRepository {
	return &GormPurchaseRequestRepository{db: db}
}

// Save creates or updates a purchase request
func (r *GormPurchaseRequestRepository) Save(ctx context.Context, pr *acquisition.PurchaseRequest) error {
	var model models.PurchaseRequestModel
	model.FromDomain(pr)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByID finds a purchase request by its ID
func (r *GormPurchaseRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*acquisition.PurchaseRequest, error) {
	var model models.PurchaseRequestModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a purchase request by its request number
func (r *GormPurchaseRequestRepository) FindByNumber(ctx context.Context, requestNumber string) (*acquisition.PurchaseRequest, error) {
	var model models.PurchaseRequestModel
	if err := r.db.WithContext(ctx).
		Where("request_number = ?", requestNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List finds purchase requests, optionally filtered by status, newest first
func (r *GormPurchaseRequestRepository) List(ctx context.Context, status acquisition.PurchaseRequestStatus, page, pageSize int) ([]*acquisition.PurchaseRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PurchaseRequestModel{})
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

	var rows []models.PurchaseRequestModel
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	requests := make([]*acquisition.PurchaseRequest, len(rows))
	for i := range rows {
		requests[i] = rows[i].ToDomain()
	}
	return requests, total, nil
}

// Ensure GormPurchaseRequestRepository implements PurchaseRequestRepository
var _ acquisition.PurchaseRequestRepository = (*GormPurchaseRequestRepository)(nil)
