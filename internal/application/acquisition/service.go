package acquisition

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appledger "github.com/openfms/backend/internal/application/ledger"
	"github.com/openfms/backend/internal/domain/acquisition"
	"github.com/openfms/backend/internal/domain/fundcontrol"
	"github.com/openfms/backend/internal/domain/ledger"
	"github.com/openfms/backend/internal/domain/shared"
)

// NarrativeDrafter produces a human-readable justification for a
// lifecycle action. Drafting is best effort: a failure or an empty
// result never blocks the operation it annotates.
type NarrativeDrafter interface {
	Draft(ctx context.Context, subject string, facts map[string]string) (string, error)
}

// Service coordinates the acquisition lifecycle: certification, award,
// modification, and closeout, each emitting its ledger transactions
// through the posting service.
type Service struct {
	prRepo    acquisition.PurchaseRequestRepository
	solRepo   acquisition.SolicitationRepository
	conRepo   acquisition.ContractRepository
	fundRepo  fundcontrol.Repository
	validator *fundcontrol.Validator
	posting   *appledger.PostingService
	events    shared.EventPublisher
	narrative NarrativeDrafter
	logger    *zap.Logger
}

// NewService creates a new acquisition Service. The narrative drafter is
// optional and may be nil.
func NewService(
	prRepo acquisition.PurchaseRequestRepository,
	solRepo acquisition.SolicitationRepository,
	conRepo acquisition.ContractRepository,
	fundRepo fundcontrol.Repository,
	validator *fundcontrol.Validator,
	posting *appledger.PostingService,
	events shared.EventPublisher,
	narrative NarrativeDrafter,
	logger *zap.Logger,
) *Service {
	return &Service{
		prRepo:    prRepo,
		solRepo:   solRepo,
		conRepo:   conRepo,
		fundRepo:  fundRepo,
		validator: validator,
		posting:   posting,
		events:    events,
		narrative: narrative,
		logger:    logger,
	}
}

// CreatePurchaseRequestRequest carries the fields of a new purchase request
type CreatePurchaseRequestRequest struct {
	RequestNumber string
	Description   string
	Requestor     string
	Amount        decimal.Decimal
	FundingCode   string
	CostCenter    string
}

// CreatePurchaseRequest creates a draft purchase request and submits it
// for funds certification.
func (s *Service) CreatePurchaseRequest(ctx context.Context, req CreatePurchaseRequestRequest) (*acquisition.PurchaseRequest, error) {
	existing, err := s.prRepo.FindByNumber(ctx, req.RequestNumber)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to check request number: %w", err)
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS",
			fmt.Sprintf("Purchase request %s already exists", req.RequestNumber))
	}

	pr, err := acquisition.NewPurchaseRequest(req.RequestNumber, req.Description, req.Requestor,
		req.Amount, req.FundingCode, req.CostCenter)
	if err != nil {
		return nil, err
	}
	if err := pr.SubmitForCertification(req.Requestor); err != nil {
		return nil, err
	}
	if err := s.prRepo.Save(ctx, pr); err != nil {
		return nil, fmt.Errorf("failed to save purchase request: %w", err)
	}

	s.logger.Info("purchase request created",
		zap.String("request_number", pr.RequestNumber),
		zap.String("amount", pr.Amount.String()))
	return pr, nil
}

// CertifyResult is the outcome of a certification attempt. A failed
// authority check is a normal business outcome, not an error.
type CertifyResult struct {
	Success       bool            `json:"success"`
	Message       string          `json:"message"`
	TransactionID uuid.UUID       `json:"transaction_id,omitempty"`
	NodeCode      string          `json:"node_code,omitempty"`
	Available     decimal.Decimal `json:"available"`
	Narrative     string          `json:"narrative,omitempty"`
}

// CertifyPurchaseRequest runs the authority check for a pending purchase
// request. On a passed check it posts the commitment transaction and
// applies the FundsCertified transition; on a failed check nothing is
// mutated and the result carries the violation message.
func (s *Service) CertifyPurchaseRequest(ctx context.Context, prID uuid.UUID, certifiedBy string) (*CertifyResult, error) {
	pr, err := s.prRepo.FindByID(ctx, prID)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase request: %w", err)
	}
	if pr == nil {
		return nil, shared.ErrNotFound
	}
	if pr.Status != acquisition.PRStatusPendingCertification {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Purchase request %s is %s, not pending certification", pr.RequestNumber, pr.Status))
	}

	tree, err := s.fundRepo.LoadTree(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load fund tree: %w", err)
	}

	check := fundcontrol.AuthorityCheck{
		FundingCode: pr.FundingCode,
		Amount:      pr.Amount,
		Reference:   pr.RequestNumber,
	}
	result := s.validator.Validate(check, tree)
	if !result.Valid {
		s.logger.Warn("funds certification failed",
			zap.String("request_number", pr.RequestNumber),
			zap.String("reason", result.Message))
		return &CertifyResult{Success: false, Message: result.Message, Available: result.Available}, nil
	}

	tx, err := ledger.GenerateCommitmentFromPurchaseRequest(ledger.PurchaseCommitment{
		RequestNumber: pr.RequestNumber,
		Description:   pr.Description,
		Amount:        pr.Amount,
		FundingCode:   pr.FundingCode,
		CostCenter:    pr.CostCenter,
	}, certifiedBy)
	if err != nil {
		return nil, err
	}
	posted, err := s.posting.Post(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := pr.CertifyFunds(certifiedBy, result.Message); err != nil {
		return nil, err
	}
	if err := s.prRepo.Save(ctx, pr); err != nil {
		return nil, fmt.Errorf("failed to save purchase request: %w", err)
	}
	s.publishEvents(ctx, pr)

	out := &CertifyResult{
		Success:       true,
		Message:       result.Message,
		TransactionID: posted.TransactionID,
		NodeCode:      posted.NodeCode,
		Available:     posted.RemainingAuthority,
	}
	out.Narrative = s.draft(ctx, "funds certification", map[string]string{
		"request_number": pr.RequestNumber,
		"amount":         pr.Amount.String(),
		"funding_code":   pr.FundingCode,
		"node":           posted.NodeCode,
	})
	return out, nil
}

// CreateSolicitationRequest carries the fields of a new solicitation
type CreateSolicitationRequest struct {
	SolicitationNumber string
	Title              string
	PurchaseRequestID  uuid.UUID
	CreatedBy          string
}

// CreateSolicitation opens a solicitation against a certified purchase request
func (s *Service) CreateSolicitation(ctx context.Context, req CreateSolicitationRequest) (*acquisition.Solicitation, error) {
	pr, err := s.prRepo.FindByID(ctx, req.PurchaseRequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase request: %w", err)
	}
	if pr == nil {
		return nil, shared.ErrNotFound
	}
	if pr.Status != acquisition.PRStatusFundsCertified {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Purchase request %s must be funds-certified before solicitation", pr.RequestNumber))
	}

	sol, err := acquisition.NewSolicitation(req.SolicitationNumber, req.Title, req.PurchaseRequestID, req.CreatedBy)
	if err != nil {
		return nil, err
	}
	if err := s.solRepo.Save(ctx, sol); err != nil {
		return nil, fmt.Errorf("failed to save solicitation: %w", err)
	}
	return sol, nil
}

// AdvanceSolicitation moves a solicitation one phase forward
func (s *Service) AdvanceSolicitation(ctx context.Context, solID uuid.UUID, target acquisition.SolicitationStatus, user string) (*acquisition.Solicitation, error) {
	sol, err := s.solRepo.FindByID(ctx, solID)
	if err != nil {
		return nil, fmt.Errorf("failed to find solicitation: %w", err)
	}
	if sol == nil {
		return nil, shared.ErrNotFound
	}
	if err := sol.Advance(target, user); err != nil {
		return nil, err
	}
	if err := s.solRepo.Save(ctx, sol); err != nil {
		return nil, fmt.Errorf("failed to save solicitation: %w", err)
	}
	s.publishEvents(ctx, sol)
	return sol, nil
}

// AddQuote records a vendor quote on an open solicitation
func (s *Service) AddQuote(ctx context.Context, solID uuid.UUID, quote acquisition.VendorQuote, user string) (*acquisition.Solicitation, error) {
	sol, err := s.solRepo.FindByID(ctx, solID)
	if err != nil {
		return nil, fmt.Errorf("failed to find solicitation: %w", err)
	}
	if sol == nil {
		return nil, shared.ErrNotFound
	}
	if err := sol.AddQuote(quote, user); err != nil {
		return nil, err
	}
	if err := s.solRepo.Save(ctx, sol); err != nil {
		return nil, fmt.Errorf("failed to save solicitation: %w", err)
	}
	return sol, nil
}

// AwardContractRequest carries the award decision
type AwardContractRequest struct {
	PurchaseRequestID uuid.UUID
	SolicitationID    uuid.UUID
	ContractNumber    string
	VendorName        string
	Amount            decimal.Decimal
	AwardedBy         string
}

// AwardResult is the outcome of a contract award
type AwardResult struct {
	Contract      *acquisition.Contract `json:"contract"`
	TransactionID uuid.UUID             `json:"transaction_id"`
	Narrative     string                `json:"narrative,omitempty"`
}

// AwardContract awards a fixed-price contract with a one-year period of
// performance starting today, posts the obligation, and converts the
// purchase request. The obligation liquidates the commitment posted at
// certification, so an award at the certified amount consumes no further
// authority; only growth beyond the certified amount does, and the node
// ceiling at posting time is still enforced on that growth. The award
// path runs no additional advisory authority check.
func (s *Service) AwardContract(ctx context.Context, req AwardContractRequest) (*AwardResult, error) {
	pr, err := s.prRepo.FindByID(ctx, req.PurchaseRequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase request: %w", err)
	}
	if pr == nil {
		return nil, shared.ErrNotFound
	}
	if pr.Status != acquisition.PRStatusFundsCertified {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Purchase request %s must be funds-certified before award", pr.RequestNumber))
	}

	var sol *acquisition.Solicitation
	if req.SolicitationID != uuid.Nil {
		sol, err = s.solRepo.FindByID(ctx, req.SolicitationID)
		if err != nil {
			return nil, fmt.Errorf("failed to find solicitation: %w", err)
		}
		if sol != nil && sol.Status != acquisition.SolStatusReadyForAward {
			return nil, shared.NewDomainError("INVALID_STATE",
				fmt.Sprintf("Solicitation %s is not ready for award", sol.SolicitationNumber))
		}
	}

	popStart := time.Now()
	contract, err := acquisition.NewContract(req.ContractNumber, req.VendorName, pr.Description,
		req.Amount, popStart, popStart.AddDate(1, 0, 0), pr.FundingCode, pr.CostCenter, req.AwardedBy)
	if err != nil {
		return nil, err
	}

	tx, err := ledger.GenerateObligationFromContract(contract.ContractNumber, contract.Description,
		contract.Value, pr.Amount, contract.FundingCode, contract.CostCenter, req.AwardedBy)
	if err != nil {
		return nil, err
	}
	posted, err := s.posting.Post(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := s.conRepo.Save(ctx, contract); err != nil {
		return nil, fmt.Errorf("failed to save contract: %w", err)
	}
	if err := pr.MarkConverted(req.AwardedBy, contract.ContractNumber); err != nil {
		return nil, err
	}
	if err := s.prRepo.Save(ctx, pr); err != nil {
		return nil, fmt.Errorf("failed to save purchase request: %w", err)
	}
	if sol != nil {
		if err := sol.Advance(acquisition.SolStatusAwarded, req.AwardedBy); err != nil {
			return nil, err
		}
		if err := s.solRepo.Save(ctx, sol); err != nil {
			return nil, fmt.Errorf("failed to save solicitation: %w", err)
		}
		s.publishEvents(ctx, sol)
	}
	s.publishEvents(ctx, contract)
	s.publishEvents(ctx, pr)

	s.logger.Info("contract awarded",
		zap.String("contract_number", contract.ContractNumber),
		zap.String("vendor", contract.VendorName),
		zap.String("value", contract.Value.String()))

	out := &AwardResult{Contract: contract, TransactionID: posted.TransactionID}
	out.Narrative = s.draft(ctx, "contract award", map[string]string{
		"contract_number": contract.ContractNumber,
		"vendor":          contract.VendorName,
		"value":           contract.Value.String(),
		"request_number":  pr.RequestNumber,
	})
	return out, nil
}

// ModificationResult is the outcome of an executed modification
type ModificationResult struct {
	Contract      *acquisition.Contract             `json:"contract"`
	Modification  *acquisition.ContractModification `json:"modification"`
	TransactionID uuid.UUID                         `json:"transaction_id,omitempty"`
}

// ExecuteModification appends a modification to an active contract and
// posts the obligation adjustment when the delta is non-zero.
func (s *Service) ExecuteModification(ctx context.Context, contractID uuid.UUID, description string, amountDelta decimal.Decimal, user string) (*ModificationResult, error) {
	contract, err := s.conRepo.FindByID(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to find contract: %w", err)
	}
	if contract == nil {
		return nil, shared.ErrNotFound
	}

	mod, err := contract.ExecuteModification(description, amountDelta, user)
	if err != nil {
		return nil, err
	}

	result := &ModificationResult{Contract: contract, Modification: mod}

	tx, err := ledger.GenerateContractModificationAdjustment(ledger.ModificationAdjustment{
		ContractNumber: contract.ContractNumber,
		ModNumber:      mod.Number,
		Description:    description,
		AmountDelta:    amountDelta,
		FundingCode:    contract.FundingCode,
		CostCenter:     contract.CostCenter,
	}, user)
	if err != nil {
		return nil, err
	}
	if tx != nil {
		posted, err := s.posting.Post(ctx, tx)
		if err != nil {
			return nil, err
		}
		result.TransactionID = posted.TransactionID
	}

	if err := s.conRepo.Save(ctx, contract); err != nil {
		return nil, fmt.Errorf("failed to save contract: %w", err)
	}
	s.publishEvents(ctx, contract)
	return result, nil
}

// CloseoutContract closes an active contract. Closeout is irreversible.
func (s *Service) CloseoutContract(ctx context.Context, contractID uuid.UUID, user string) (*acquisition.Contract, error) {
	contract, err := s.conRepo.FindByID(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to find contract: %w", err)
	}
	if contract == nil {
		return nil, shared.ErrNotFound
	}
	if err := contract.Closeout(user); err != nil {
		return nil, err
	}
	if err := s.conRepo.Save(ctx, contract); err != nil {
		return nil, fmt.Errorf("failed to save contract: %w", err)
	}
	s.publishEvents(ctx, contract)

	s.logger.Info("contract closed out", zap.String("contract_number", contract.ContractNumber))
	return contract, nil
}

// GetPurchaseRequest returns a purchase request by id
func (s *Service) GetPurchaseRequest(ctx context.Context, id uuid.UUID) (*acquisition.PurchaseRequest, error) {
	pr, err := s.prRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase request: %w", err)
	}
	if pr == nil {
		return nil, shared.ErrNotFound
	}
	return pr, nil
}

// ListPurchaseRequests returns purchase requests, optionally by status
func (s *Service) ListPurchaseRequests(ctx context.Context, status acquisition.PurchaseRequestStatus, page, pageSize int) ([]*acquisition.PurchaseRequest, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.prRepo.List(ctx, status, page, pageSize)
}

// GetSolicitation returns a solicitation by id
func (s *Service) GetSolicitation(ctx context.Context, id uuid.UUID) (*acquisition.Solicitation, error) {
	sol, err := s.solRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find solicitation: %w", err)
	}
	if sol == nil {
		return nil, shared.ErrNotFound
	}
	return sol, nil
}

// ListSolicitations returns solicitations
func (s *Service) ListSolicitations(ctx context.Context, page, pageSize int) ([]*acquisition.Solicitation, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.solRepo.List(ctx, page, pageSize)
}

// GetContract returns a contract by id
func (s *Service) GetContract(ctx context.Context, id uuid.UUID) (*acquisition.Contract, error) {
	contract, err := s.conRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find contract: %w", err)
	}
	if contract == nil {
		return nil, shared.ErrNotFound
	}
	return contract, nil
}

// ListContracts returns contracts, optionally by status
func (s *Service) ListContracts(ctx context.Context, status acquisition.ContractStatus, page, pageSize int) ([]*acquisition.Contract, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.conRepo.List(ctx, status, page, pageSize)
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	return page, pageSize
}

func (s *Service) publishEvents(ctx context.Context, agg shared.AggregateRoot) {
	events := agg.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish domain events", zap.Error(err))
	}
	agg.ClearDomainEvents()
}

func (s *Service) draft(ctx context.Context, subject string, facts map[string]string) string {
	if s.narrative == nil {
		return ""
	}
	text, err := s.narrative.Draft(ctx, subject, facts)
	if err != nil {
		s.logger.Warn("narrative drafting failed", zap.String("subject", subject), zap.Error(err))
		return ""
	}
	return text
}
