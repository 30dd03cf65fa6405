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

// GormSolicitationRepository implements acquisition.SolicitationRepository using GORM
type GormSolicitationRepository struct {
	db *gorm.DB
}

// NewGormSolicitationRepository creates a new GormSolicitationRepository
func NewGormSolicitationRepository(db *gorm.DB) *GormSolicitationRepository {
	return &GormSolicitationRepository{db: db}
}

// Save creates or updates a solicitation
func (r *GormSolicitationRepository) Save(ctx context.Context, sol *acquisition.Solicitation) error {
	var model models.SolicitationModel
	model.FromDomain(sol)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByID finds a solicitation by its ID
func (r *GormSolicitationRepository) FindByID(ctx context.Context, id uuid.UUID) (*acquisition.Solicitation, error) {
	var model models.SolicitationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a solicitation by its solicitation number
func (r *GormSolicitationRepository) FindByNumber(ctx context.Context, solicitationNumber string) (*acquisition.Solicitation, error) {
	var model models.SolicitationModel
	if err := r.db.WithContext(ctx).
		Where("solicitation_number = ?", solicitationNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List finds solicitations, newest first
func (r *GormSolicitationRepository) List(ctx context.Context, page, pageSize int) ([]*acquisition.Solicitation, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SolicitationModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page > 0 && pageSize > 0 {
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var rows []models.SolicitationModel
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	solicitations := make([]*acquisition.Solicitation, len(rows))
	for i := range rows {
		solicitations[i] = rows[i].ToDomain()
	}
	return solicitations, total, nil
}

// Ensure GormSolicitationRepository implements SolicitationRepository
var _ acquisition.SolicitationRepository = (*GormSolicitationRepository)(nil)
