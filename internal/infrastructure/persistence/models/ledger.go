package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openfms/backend/internal/domain/ledger"
	"github.com/openfms/backend/internal/domain/shared"
)

// TransactionModel is the persistence model for a posted ledger transaction
type TransactionModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	Date         time.Time       `gorm:"not null;index"`
	Type         string          `gorm:"type:varchar(30);not null;index"`
	Description  string          `gorm:"type:text"`
	SourceModule string          `gorm:"type:varchar(30);not null;index"`
	ReferenceID  string          `gorm:"type:varchar(100);not null;index"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status       string          `gorm:"type:varchar(10);not null"`
	CreatedBy    string          `gorm:"type:varchar(100);not null"`
	AuditLog     shared.AuditLog `gorm:"type:jsonb;default:'[]'"`
	Lines        []LineModel     `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "ledger_transactions"
}

// LineModel is one debit or credit row of a transaction
type LineModel struct {
	ID            uint            `gorm:"primaryKey;autoIncrement"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position      int             `gorm:"not null"`
	AccountCode   string          `gorm:"type:varchar(10);not null;index"`
	Description   string          `gorm:"type:text"`
	Debit         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Credit        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	FundingCode   string          `gorm:"type:varchar(50);index"`
	CostCenter    string          `gorm:"type:varchar(50);index"`
}

// TableName returns the table name for GORM
func (LineModel) TableName() string {
	return "ledger_lines"
}

// ToDomain converts the persistence model to a domain Transaction
func (m *TransactionModel) ToDomain() *ledger.Transaction {
	lines := make([]ledger.Line, len(m.Lines))
	for i, lm := range m.Lines {
		lines[i] = ledger.Line{
			AccountCode: lm.AccountCode,
			Description: lm.Description,
			Debit:       lm.Debit,
			Credit:      lm.Credit,
			FundingCode: lm.FundingCode,
			CostCenter:  lm.CostCenter,
		}
	}
	return &ledger.Transaction{
		ID:           m.ID,
		Date:         m.Date,
		Type:         ledger.TransactionType(m.Type),
		Description:  m.Description,
		SourceModule: m.SourceModule,
		ReferenceID:  m.ReferenceID,
		TotalAmount:  m.TotalAmount,
		Status:       ledger.PostingStatus(m.Status),
		CreatedBy:    m.CreatedBy,
		Lines:        lines,
		AuditLog:     m.AuditLog,
	}
}

// FromDomain populates the persistence model from a domain Transaction
func (m *TransactionModel) FromDomain(tx *ledger.Transaction) {
	m.ID = tx.ID
	m.Date = tx.Date
	m.Type = tx.Type.String()
	m.Description = tx.Description
	m.SourceModule = tx.SourceModule
	m.ReferenceID = tx.ReferenceID
	m.TotalAmount = tx.TotalAmount
	m.Status = tx.Status.String()
	m.CreatedBy = tx.CreatedBy
	m.AuditLog = tx.AuditLog
	m.Lines = make([]LineModel, len(tx.Lines))
	for i, line := range tx.Lines {
		m.Lines[i] = LineModel{
			TransactionID: tx.ID,
			Position:      i,
			AccountCode:   line.AccountCode,
			Description:   line.Description,
			Debit:         line.Debit,
			Credit:        line.Credit,
			FundingCode:   line.FundingCode,
			CostCenter:    line.CostCenter,
		}
	}
}
