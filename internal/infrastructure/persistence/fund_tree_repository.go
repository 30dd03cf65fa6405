package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openfms/backend/internal/domain/fundcontrol"
	"github.com/openfms/backend/internal/domain/shared"
	"github.com/openfms/backend/internal/infrastructure/persistence/models"
)

// GormFundTreeRepository implements fundcontrol.Repository using GORM.
// The tree is stored as flat rows with parent references and rebuilt on
// load; SaveTree replaces the whole snapshot atomically.
type GormFundTreeRepository struct {
	db *gorm.DB
}

// NewGormFundTreeRepository creates a new GormFundTreeRepository
func NewGormFundTreeRepository(db *gorm.DB) *GormFundTreeRepository {
	return &GormFundTreeRepository{db: db}
}

// LoadTree returns the stored authority tree, or nil when none is installed
func (r *GormFundTreeRepository) LoadTree(ctx context.Context) (*fundcontrol.Node, error) {
	var rows []models.FundNodeModel
	if err := r.db.WithContext(ctx).
		Order("position ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return assembleTree(rows)
}

// SaveTree replaces the stored authority tree in a single transaction
func (r *GormFundTreeRepository) SaveTree(ctx context.Context, root *fundcontrol.Node) error {
	if root == nil {
		return shared.NewDomainError("INVALID_INPUT", "Authority tree root cannot be nil")
	}
	rows := flattenTree(root, nil)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.FundNodeModel{}).Error; err != nil {
			return err
		}
		return tx.Create(&rows).Error
	})
}

// assembleTree rebuilds the node hierarchy from flat rows. Exactly one
// row without a parent is expected.
func assembleTree(rows []models.FundNodeModel) (*fundcontrol.Node, error) {
	nodes := make(map[uuid.UUID]*fundcontrol.Node, len(rows))
	for _, row := range rows {
		nodes[row.ID] = &fundcontrol.Node{
			Name:            row.Name,
			Code:            row.Code,
			Level:           fundcontrol.Level(row.Level),
			TotalAuthority:  row.TotalAuthority,
			AmountObligated: row.AmountObligated,
			Children:        make([]*fundcontrol.Node, 0),
		}
	}

	var root *fundcontrol.Node
	for _, row := range rows {
		node := nodes[row.ID]
		if row.ParentID == nil {
			if root != nil {
				return nil, shared.NewDomainError("INVALID_STATE", "Authority tree has multiple roots")
			}
			root = node
			continue
		}
		parent, ok := nodes[*row.ParentID]
		if !ok {
			return nil, shared.NewDomainError("INVALID_STATE", "Authority tree row references a missing parent")
		}
		parent.AddChild(node)
	}
	if root == nil {
		return nil, shared.NewDomainError("INVALID_STATE", "Authority tree has no root")
	}
	return root, nil
}

// flattenTree converts the hierarchy to flat rows, assigning fresh IDs
func flattenTree(node *fundcontrol.Node, parentID *uuid.UUID) []models.FundNodeModel {
	id := uuid.New()
	rows := []models.FundNodeModel{{
		ID:              id,
		ParentID:        parentID,
		Name:            node.Name,
		Code:            node.Code,
		Level:           node.Level.String(),
		TotalAuthority:  node.TotalAuthority,
		AmountObligated: node.AmountObligated,
	}}
	for i, child := range node.Children {
		childRows := flattenTree(child, &id)
		childRows[0].Position = i
		rows = append(rows, childRows...)
	}
	return rows
}

// Ensure GormFundTreeRepository implements fundcontrol.Repository
var _ fundcontrol.Repository = (*GormFundTreeRepository)(nil)
