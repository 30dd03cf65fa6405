package acquisition

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openfms/backend/internal/domain/shared"
)

// ContractStatus represents the state of an awarded contract
type ContractStatus string

const (
	ContractStatusActive ContractStatus = "ACTIVE"
	ContractStatusClosed ContractStatus = "CLOSED"
)

// IsValid checks if the status is valid
func (s ContractStatus) IsValid() bool {
	return s == ContractStatusActive || s == ContractStatusClosed
}

// String returns the string representation
func (s ContractStatus) String() string {
	return string(s)
}

// ContractModification is one executed change to a contract. Once
// executed, a modification is immutable.
type ContractModification struct {
	Number      string          `json:"number"`
	Description string          `json:"description"`
	AmountDelta decimal.Decimal `json:"amount_delta"`
	ExecutedAt  time.Time       `json:"executed_at"`
	ExecutedBy  string          `json:"executed_by"`
}

// Contract is a fixed-price award against a certified purchase request
type Contract struct {
	shared.BaseAggregateRoot
	ContractNumber string                 `json:"contract_number"`
	VendorName     string                 `json:"vendor_name"`
	Description    string                 `json:"description"`
	Value          decimal.Decimal        `json:"value"`
	PoPStart       time.Time              `json:"pop_start"`
	PoPEnd         time.Time              `json:"pop_end"`
	FundingCode    string                 `json:"funding_code"`
	CostCenter     string                 `json:"cost_center"`
	Status         ContractStatus         `json:"status"`
	Modifications  []ContractModification `json:"modifications"`
	AuditLog       shared.AuditLog        `json:"audit_log"`
}

// NewContract awards a fixed-price contract with the given period of
// performance.
func NewContract(contractNumber, vendorName, description string, value decimal.Decimal, popStart, popEnd time.Time, fundingCode, costCenter, awardedBy string) (*Contract, error) {
	if contractNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Contract requires a contract number")
	}
	if vendorName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Contract requires a vendor name")
	}
	if !value.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Contract value must be positive")
	}
	if !popEnd.After(popStart) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Period of performance must end after it starts")
	}

	c := &Contract{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ContractNumber:    contractNumber,
		VendorName:        vendorName,
		Description:       description,
		Value:             value,
		PoPStart:          popStart,
		PoPEnd:            popEnd,
		FundingCode:       fundingCode,
		CostCenter:        costCenter,
		Status:            ContractStatusActive,
	}
	c.AuditLog = c.AuditLog.Append(awardedBy, "AWARDED",
		fmt.Sprintf("Awarded to %s for %s", vendorName, value))
	c.AddDomainEvent(NewContractAwardedEvent(c.GetID(), contractNumber, vendorName, value))
	return c, nil
}

// NextModificationNumber returns the number the next modification will
// receive (P00001, P00002, ...).
func (c *Contract) NextModificationNumber() string {
	return fmt.Sprintf("P%05d", len(c.Modifications)+1)
}

// ExecuteModification appends a sequentially numbered modification and
// applies its signed delta to the contract value. A zero delta is an
// administrative change with no value impact.
func (c *Contract) ExecuteModification(description string, amountDelta decimal.Decimal, user string) (*ContractModification, error) {
	if c.Status != ContractStatusActive {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Contract %s is %s; modifications are not allowed", c.ContractNumber, c.Status))
	}
	newValue := c.Value.Add(amountDelta)
	if !newValue.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Modification would reduce contract %s value to %s", c.ContractNumber, newValue))
	}

	mod := ContractModification{
		Number:      c.NextModificationNumber(),
		Description: description,
		AmountDelta: amountDelta,
		ExecutedAt:  time.Now(),
		ExecutedBy:  user,
	}
	c.Modifications = append(c.Modifications, mod)
	c.Value = newValue
	c.AuditLog = c.AuditLog.Append(user, "MODIFICATION_EXECUTED",
		fmt.Sprintf("%s: delta %s, new value %s", mod.Number, amountDelta, newValue))
	c.IncrementVersion()
	c.AddDomainEvent(NewContractModifiedEvent(c.GetID(), c.ContractNumber, mod.Number, amountDelta, newValue))
	return &mod, nil
}

// Closeout closes the contract. Closeout is terminal; a closed contract
// cannot be reopened or modified.
func (c *Contract) Closeout(user string) error {
	if c.Status != ContractStatusActive {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Contract %s is already %s", c.ContractNumber, c.Status))
	}
	c.Status = ContractStatusClosed
	c.AuditLog = c.AuditLog.Append(user, "CLOSED", "Contract closed out")
	c.IncrementVersion()
	c.AddDomainEvent(NewContractClosedEvent(c.GetID(), c.ContractNumber))
	return nil
}
