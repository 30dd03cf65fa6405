package acquisition

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/openfms/backend/internal/domain/shared"
)

// SolicitationStatus represents the phase of a solicitation
type SolicitationStatus string

const (
	SolStatusRequirementRefinement SolicitationStatus = "REQUIREMENT_REFINEMENT"
	SolStatusMarketResearch        SolicitationStatus = "MARKET_RESEARCH"
	SolStatusActiveSolicitation    SolicitationStatus = "ACTIVE_SOLICITATION"
	SolStatusEvaluatingQuotes      SolicitationStatus = "EVALUATING_QUOTES"
	SolStatusReadyForAward         SolicitationStatus = "READY_FOR_AWARD"
	SolStatusAwarded               SolicitationStatus = "AWARDED"
)

// solicitationPhases is the ordered lifecycle; each phase may only advance
// to its immediate successor.
var solicitationPhases = []SolicitationStatus{
	SolStatusRequirementRefinement,
	SolStatusMarketResearch,
	SolStatusActiveSolicitation,
	SolStatusEvaluatingQuotes,
	SolStatusReadyForAward,
	SolStatusAwarded,
}

// IsValid checks if the status is valid
func (s SolicitationStatus) IsValid() bool {
	for _, phase := range solicitationPhases {
		if s == phase {
			return true
		}
	}
	return false
}

// String returns the string representation
func (s SolicitationStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the target is the immediate next phase
func (s SolicitationStatus) CanTransitionTo(target SolicitationStatus) bool {
	for i, phase := range solicitationPhases {
		if s == phase {
			return i+1 < len(solicitationPhases) && solicitationPhases[i+1] == target
		}
	}
	return false
}

// Solicitation tracks the competitive process from requirement to award
type Solicitation struct {
	shared.BaseAggregateRoot
	SolicitationNumber string             `json:"solicitation_number"`
	Title              string             `json:"title"`
	PurchaseRequestID  uuid.UUID          `json:"purchase_request_id"`
	Status             SolicitationStatus `json:"status"`
	Quotes             []VendorQuote      `json:"quotes"`
	AuditLog           shared.AuditLog    `json:"audit_log"`
}

// NewSolicitation creates a solicitation in the requirement refinement phase
func NewSolicitation(solicitationNumber, title string, purchaseRequestID uuid.UUID, createdBy string) (*Solicitation, error) {
	if solicitationNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Solicitation requires a solicitation number")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Solicitation requires a title")
	}

	sol := &Solicitation{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		SolicitationNumber: solicitationNumber,
		Title:              title,
		PurchaseRequestID:  purchaseRequestID,
		Status:             SolStatusRequirementRefinement,
	}
	sol.AuditLog = sol.AuditLog.Append(createdBy, "CREATED", "Solicitation opened")
	return sol, nil
}

// Advance moves the solicitation to the given phase. Skipping phases or
// moving backwards is rejected.
func (s *Solicitation) Advance(target SolicitationStatus, user string) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown solicitation phase %q", target))
	}
	if !s.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Solicitation %s cannot move from %s to %s", s.SolicitationNumber, s.Status, target))
	}
	s.Status = target
	s.AuditLog = s.AuditLog.Append(user, "ADVANCED", fmt.Sprintf("Entered phase %s", target))
	s.IncrementVersion()
	s.AddDomainEvent(NewSolicitationAdvancedEvent(s.GetID(), s.SolicitationNumber, target))
	return nil
}

// AddQuote records a vendor quote. Quotes are only accepted while the
// solicitation is open or under evaluation.
func (s *Solicitation) AddQuote(quote VendorQuote, user string) error {
	if err := quote.Validate(); err != nil {
		return err
	}
	if s.Status != SolStatusActiveSolicitation && s.Status != SolStatusEvaluatingQuotes {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Solicitation %s is not accepting quotes in phase %s", s.SolicitationNumber, s.Status))
	}
	s.Quotes = append(s.Quotes, quote)
	s.AuditLog = s.AuditLog.Append(user, "QUOTE_RECEIVED",
		fmt.Sprintf("Quote from %s for %s", quote.VendorName, quote.Amount))
	return nil
}
