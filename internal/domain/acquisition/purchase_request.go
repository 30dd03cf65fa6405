package acquisition

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/openfms/backend/internal/domain/shared"
)

// PurchaseRequestStatus represents the lifecycle state of a purchase request
type PurchaseRequestStatus string

const (
	PRStatusDraft                PurchaseRequestStatus = "DRAFT"
	PRStatusPendingCertification PurchaseRequestStatus = "PENDING_CERTIFICATION"
	PRStatusFundsCertified       PurchaseRequestStatus = "FUNDS_CERTIFIED"
	PRStatusConverted            PurchaseRequestStatus = "CONVERTED"
)

// IsValid checks if the status is valid
func (s PurchaseRequestStatus) IsValid() bool {
	switch s {
	case PRStatusDraft, PRStatusPendingCertification, PRStatusFundsCertified, PRStatusConverted:
		return true
	}
	return false
}

// String returns the string representation
func (s PurchaseRequestStatus) String() string {
	return string(s)
}

var prTransitions = map[PurchaseRequestStatus][]PurchaseRequestStatus{
	PRStatusDraft:                {PRStatusPendingCertification},
	PRStatusPendingCertification: {PRStatusFundsCertified},
	PRStatusFundsCertified:       {PRStatusConverted},
	PRStatusConverted:            {},
}

// CanTransitionTo checks if a transition to the target status is allowed
func (s PurchaseRequestStatus) CanTransitionTo(target PurchaseRequestStatus) bool {
	for _, allowed := range prTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// PurchaseRequest is a funding request for goods or services. It must
// have funds certified against the authority tree before it can be
// converted into a contract.
type PurchaseRequest struct {
	shared.BaseAggregateRoot
	RequestNumber string                `json:"request_number"`
	Description   string                `json:"description"`
	Requestor     string                `json:"requestor"`
	Amount        decimal.Decimal       `json:"amount"`
	FundingCode   string                `json:"funding_code"`
	CostCenter    string                `json:"cost_center"`
	Status        PurchaseRequestStatus `json:"status"`
	AuditLog      shared.AuditLog       `json:"audit_log"`
}

// NewPurchaseRequest creates a purchase request in draft status
func NewPurchaseRequest(requestNumber, description, requestor string, amount decimal.Decimal, fundingCode, costCenter string) (*PurchaseRequest, error) {
	if requestNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Purchase request requires a request number")
	}
	if requestor == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Purchase request requires a requestor")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Purchase request amount must be positive")
	}

	pr := &PurchaseRequest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RequestNumber:     requestNumber,
		Description:       description,
		Requestor:         requestor,
		Amount:            amount,
		FundingCode:       fundingCode,
		CostCenter:        costCenter,
		Status:            PRStatusDraft,
	}
	pr.AuditLog = pr.AuditLog.Append(requestor, "CREATED", fmt.Sprintf("Purchase request for %s", amount))
	return pr, nil
}

func (pr *PurchaseRequest) transition(target PurchaseRequestStatus, user, action, details string) error {
	if !pr.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Purchase request %s cannot move from %s to %s", pr.RequestNumber, pr.Status, target))
	}
	pr.Status = target
	pr.AuditLog = pr.AuditLog.Append(user, action, details)
	pr.IncrementVersion()
	return nil
}

// SubmitForCertification queues the request for a funds check
func (pr *PurchaseRequest) SubmitForCertification(user string) error {
	return pr.transition(PRStatusPendingCertification, user, "SUBMITTED", "Submitted for funds certification")
}

// CertifyFunds marks the request funds-certified after a passed authority
// check and raises the certification event.
func (pr *PurchaseRequest) CertifyFunds(user, details string) error {
	if err := pr.transition(PRStatusFundsCertified, user, "FUNDS_CERTIFIED", details); err != nil {
		return err
	}
	pr.AddDomainEvent(NewPurchaseRequestCertifiedEvent(pr.GetID(), pr.RequestNumber, pr.Amount))
	return nil
}

// MarkConverted records that the request became a contract
func (pr *PurchaseRequest) MarkConverted(user, contractNumber string) error {
	return pr.transition(PRStatusConverted, user, "CONVERTED",
		fmt.Sprintf("Converted to contract %s", contractNumber))
}
