package acquisition

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openfms/backend/internal/domain/shared"
)

// Event types for the acquisition context
const (
	EventTypePurchaseRequestCertified = "acquisition.purchase_request.certified"
	EventTypeSolicitationAdvanced     = "acquisition.solicitation.advanced"
	EventTypeContractAwarded          = "acquisition.contract.awarded"
	EventTypeContractModified         = "acquisition.contract.modified"
	EventTypeContractClosed           = "acquisition.contract.closed"
)

// PurchaseRequestCertifiedEvent is raised when funds are certified
type PurchaseRequestCertifiedEvent struct {
	shared.BaseDomainEvent
	RequestNumber string          `json:"request_number"`
	Amount        decimal.Decimal `json:"amount"`
}

// NewPurchaseRequestCertifiedEvent creates a certification event
func NewPurchaseRequestCertifiedEvent(prID uuid.UUID, requestNumber string, amount decimal.Decimal) *PurchaseRequestCertifiedEvent {
	return &PurchaseRequestCertifiedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseRequestCertified, "PurchaseRequest", prID),
		RequestNumber:   requestNumber,
		Amount:          amount,
	}
}

// SolicitationAdvancedEvent is raised on each phase transition
type SolicitationAdvancedEvent struct {
	shared.BaseDomainEvent
	SolicitationNumber string             `json:"solicitation_number"`
	Phase              SolicitationStatus `json:"phase"`
}

// NewSolicitationAdvancedEvent creates a phase transition event
func NewSolicitationAdvancedEvent(solID uuid.UUID, solicitationNumber string, phase SolicitationStatus) *SolicitationAdvancedEvent {
	return &SolicitationAdvancedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventTypeSolicitationAdvanced, "Solicitation", solID),
		SolicitationNumber: solicitationNumber,
		Phase:              phase,
	}
}

// ContractAwardedEvent is raised when a contract is awarded
type ContractAwardedEvent struct {
	shared.BaseDomainEvent
	ContractNumber string          `json:"contract_number"`
	VendorName     string          `json:"vendor_name"`
	Value          decimal.Decimal `json:"value"`
}

// NewContractAwardedEvent creates an award event
func NewContractAwardedEvent(contractID uuid.UUID, contractNumber, vendorName string, value decimal.Decimal) *ContractAwardedEvent {
	return &ContractAwardedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractAwarded, "Contract", contractID),
		ContractNumber:  contractNumber,
		VendorName:      vendorName,
		Value:           value,
	}
}

// ContractModifiedEvent is raised when a modification is executed
type ContractModifiedEvent struct {
	shared.BaseDomainEvent
	ContractNumber string          `json:"contract_number"`
	ModNumber      string          `json:"mod_number"`
	AmountDelta    decimal.Decimal `json:"amount_delta"`
	NewValue       decimal.Decimal `json:"new_value"`
}

// NewContractModifiedEvent creates a modification event
func NewContractModifiedEvent(contractID uuid.UUID, contractNumber, modNumber string, amountDelta, newValue decimal.Decimal) *ContractModifiedEvent {
	return &ContractModifiedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractModified, "Contract", contractID),
		ContractNumber:  contractNumber,
		ModNumber:       modNumber,
		AmountDelta:     amountDelta,
		NewValue:        newValue,
	}
}

// ContractClosedEvent is raised on closeout
type ContractClosedEvent struct {
	shared.BaseDomainEvent
	ContractNumber string `json:"contract_number"`
}

// NewContractClosedEvent creates a closeout event
func NewContractClosedEvent(contractID uuid.UUID, contractNumber string) *ContractClosedEvent {
	return &ContractClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractClosed, "Contract", contractID),
		ContractNumber:  contractNumber,
	}
}
