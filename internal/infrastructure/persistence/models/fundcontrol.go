package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FundNodeModel is one row of the funding authority tree, stored flat
// with a parent reference and reassembled on load. Position preserves
// sibling order.
type FundNodeModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	ParentID        *uuid.UUID      `gorm:"type:uuid;index"`
	Name            string          `gorm:"type:varchar(200);not null"`
	Code            string          `gorm:"type:varchar(50);not null;index"`
	Level           string          `gorm:"type:varchar(20);not null"`
	TotalAuthority  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	AmountObligated decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Position        int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (FundNodeModel) TableName() string {
	return "fund_nodes"
}
