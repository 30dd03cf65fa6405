package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openfms/backend/internal/domain/acquisition"
	"github.com/openfms/backend/internal/domain/shared"
)

// QuoteList stores vendor quotes as a JSON column
type QuoteList []acquisition.VendorQuote

// Value implements driver.Valuer
func (q QuoteList) Value() (driver.Value, error) {
	if q == nil {
		return "[]", nil
	}
	data, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (q *QuoteList) Scan(value interface{}) error {
	return scanJSON(value, q)
}

// ModificationList stores executed contract modifications as a JSON column
type ModificationList []acquisition.ContractModification

// Value implements driver.Valuer
func (l ModificationList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (l *ModificationList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T as JSON", value)
	}
	return json.Unmarshal(data, dest)
}

// PurchaseRequestModel is the persistence model for the PurchaseRequest aggregate
type PurchaseRequestModel struct {
	AggregateModel
	RequestNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description   string          `gorm:"type:text"`
	Requestor     string          `gorm:"type:varchar(100);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	FundingCode   string          `gorm:"type:varchar(50);index"`
	CostCenter    string          `gorm:"type:varchar(50)"`
	Status        string          `gorm:"type:varchar(30);not null;index"`
	AuditLog      shared.AuditLog `gorm:"type:jsonb;default:'[]'"`
}

// TableName returns the table name for GORM
func (PurchaseRequestModel) TableName() string {
	return "purchase_requests"
}

// ToDomain converts the persistence model to a domain PurchaseRequest
func (m *PurchaseRequestModel) ToDomain() *acquisition.PurchaseRequest {
	pr := &acquisition.PurchaseRequest{
		RequestNumber: m.RequestNumber,
		Description:   m.Description,
		Requestor:     m.Requestor,
		Amount:        m.Amount,
		FundingCode:   m.FundingCode,
		CostCenter:    m.CostCenter,
		Status:        acquisition.PurchaseRequestStatus(m.Status),
		AuditLog:      m.AuditLog,
	}
	m.PopulateAggregateRoot(&pr.BaseAggregateRoot)
	return pr
}

// FromDomain populates the persistence model from a domain PurchaseRequest
func (m *PurchaseRequestModel) FromDomain(pr *acquisition.PurchaseRequest) {
	m.FromDomainAggregateRoot(pr.BaseAggregateRoot)
	m.RequestNumber = pr.RequestNumber
	m.Description = pr.Description
	m.Requestor = pr.Requestor
	m.Amount = pr.Amount
	m.FundingCode = pr.FundingCode
	m.CostCenter = pr.CostCenter
	m.Status = pr.Status.String()
	m.AuditLog = pr.AuditLog
}

// SolicitationModel is the persistence model for the Solicitation aggregate
type SolicitationModel struct {
	AggregateModel
	SolicitationNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Title              string          `gorm:"type:varchar(200);not null"`
	PurchaseRequestID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status             string          `gorm:"type:varchar(30);not null;index"`
	Quotes             QuoteList       `gorm:"type:jsonb;default:'[]'"`
	AuditLog           shared.AuditLog `gorm:"type:jsonb;default:'[]'"`
}

// TableName returns the table name for GORM
func (SolicitationModel) TableName() string {
	return "solicitations"
}

// ToDomain converts the persistence model to a domain Solicitation
func (m *SolicitationModel) ToDomain() *acquisition.Solicitation {
	sol := &acquisition.Solicitation{
		SolicitationNumber: m.SolicitationNumber,
		Title:              m.Title,
		PurchaseRequestID:  m.PurchaseRequestID,
		Status:             acquisition.SolicitationStatus(m.Status),
		Quotes:             []acquisition.VendorQuote(m.Quotes),
		AuditLog:           m.AuditLog,
	}
	m.PopulateAggregateRoot(&sol.BaseAggregateRoot)
	return sol
}

// FromDomain populates the persistence model from a domain Solicitation
func (m *SolicitationModel) FromDomain(sol *acquisition.Solicitation) {
	m.FromDomainAggregateRoot(sol.BaseAggregateRoot)
	m.SolicitationNumber = sol.SolicitationNumber
	m.Title = sol.Title
	m.PurchaseRequestID = sol.PurchaseRequestID
	m.Status = sol.Status.String()
	m.Quotes = QuoteList(sol.Quotes)
	m.AuditLog = sol.AuditLog
}

// ContractModel is the persistence model for the Contract aggregate
type ContractModel struct {
	AggregateModel
	ContractNumber string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	VendorName     string           `gorm:"type:varchar(200);not null"`
	Description    string           `gorm:"type:text"`
	Value          decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	PoPStart       time.Time        `gorm:"not null"`
	PoPEnd         time.Time        `gorm:"not null"`
	FundingCode    string           `gorm:"type:varchar(50);index"`
	CostCenter     string           `gorm:"type:varchar(50)"`
	Status         string           `gorm:"type:varchar(10);not null;index"`
	Modifications  ModificationList `gorm:"type:jsonb;default:'[]'"`
	AuditLog       shared.AuditLog  `gorm:"type:jsonb;default:'[]'"`
}

// TableName returns the table name for GORM
func (ContractModel) TableName() string {
	return "contracts"
}

// ToDomain converts the persistence model to a domain Contract
func (m *ContractModel) ToDomain() *acquisition.Contract {
	c := &acquisition.Contract{
		ContractNumber: m.ContractNumber,
		VendorName:     m.VendorName,
		Description:    m.Description,
		Value:          m.Value,
		PoPStart:       m.PoPStart,
		PoPEnd:         m.PoPEnd,
		FundingCode:    m.FundingCode,
		CostCenter:     m.CostCenter,
		Status:         acquisition.ContractStatus(m.Status),
		Modifications:  []acquisition.ContractModification(m.Modifications),
		AuditLog:       m.AuditLog,
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Contract
func (m *ContractModel) FromDomain(c *acquisition.Contract) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.ContractNumber = c.ContractNumber
	m.VendorName = c.VendorName
	m.Description = c.Description
	m.Value = c.Value
	m.PoPStart = c.PoPStart
	m.PoPEnd = c.PoPEnd
	m.FundingCode = c.FundingCode
	m.CostCenter = c.CostCenter
	m.Status = c.Status.String()
	m.Modifications = ModificationList(c.Modifications)
	m.AuditLog = c.AuditLog
}
