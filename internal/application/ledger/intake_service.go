package ledger

import (
	"context"

	"go.uber.org/zap"

	"github.com/openfms/backend/internal/domain/ledger"
	"github.com/openfms/backend/internal/domain/shared"
)

// IntakeService turns source documents from the feeder modules into
// posted ledger transactions. Each method generates the balanced entry
// for its document and runs it through the posting service, so the
// authority ceiling applies uniformly regardless of origin.
type IntakeService struct {
	posting *PostingService
	logger  *zap.Logger
}

// NewIntakeService creates a new IntakeService
func NewIntakeService(posting *PostingService, logger *zap.Logger) *IntakeService {
	return &IntakeService{posting: posting, logger: logger}
}

// RecordProjectOrderObligation obligates funds for a project order.
// Only budget officers and resource managers may request this.
func (s *IntakeService) RecordProjectOrderObligation(ctx context.Context, o ledger.ProjectOrder, requestedBy shared.Role, createdBy string) (*PostResult, error) {
	tx, err := ledger.GenerateObligationFromProjectOrder(o, requestedBy, createdBy)
	if err != nil {
		return nil, err
	}
	return s.posting.Post(ctx, tx)
}

// RecordTravelObligation obligates the estimated cost of a travel order
func (s *IntakeService) RecordTravelObligation(ctx context.Context, o ledger.TravelOrder, createdBy string) (*PostResult, error) {
	tx, err := ledger.GenerateTravelObligation(o, createdBy)
	if err != nil {
		return nil, err
	}
	return s.posting.Post(ctx, tx)
}

// RecordExpenseAccrual records an incurred, unpaid expense
func (s *IntakeService) RecordExpenseAccrual(ctx context.Context, e ledger.Expense, createdBy string) (*PostResult, error) {
	tx, err := ledger.GenerateAccrualFromExpense(e, createdBy)
	if err != nil {
		return nil, err
	}
	return s.posting.Post(ctx, tx)
}

// RecordExpenseDisbursement records the payment of an accrued expense
func (s *IntakeService) RecordExpenseDisbursement(ctx context.Context, e ledger.Expense, createdBy string) (*PostResult, error) {
	tx, err := ledger.GenerateDisbursementFromExpense(e, createdBy)
	if err != nil {
		return nil, err
	}
	return s.posting.Post(ctx, tx)
}

// RecordQuarterlyDepreciation posts one quarter of straight-line
// depreciation for an asset
func (s *IntakeService) RecordQuarterlyDepreciation(ctx context.Context, a ledger.Asset, createdBy string) (*PostResult, error) {
	tx, err := ledger.GenerateQuarterlyDepreciation(a, createdBy)
	if err != nil {
		return nil, err
	}
	return s.posting.Post(ctx, tx)
}

// RecordAssetCapitalization moves an acquisition from expense to the
// equipment account
func (s *IntakeService) RecordAssetCapitalization(ctx context.Context, a ledger.Asset, createdBy string) (*PostResult, error) {
	tx, err := ledger.GenerateCapitalizationFromAsset(a, createdBy)
	if err != nil {
		return nil, err
	}
	return s.posting.Post(ctx, tx)
}

// RecordAssetDisposal writes off the remaining book value of an asset
func (s *IntakeService) RecordAssetDisposal(ctx context.Context, a ledger.Asset, createdBy string) (*PostResult, error) {
	tx, err := ledger.GenerateDisposalFromAsset(a, createdBy)
	if err != nil {
		return nil, err
	}
	return s.posting.Post(ctx, tx)
}

// RecordOutgrantRevenue records revenue earned from an outgrant agreement
func (s *IntakeService) RecordOutgrantRevenue(ctx context.Context, o ledger.Outgrant, createdBy string) (*PostResult, error) {
	tx, err := ledger.GenerateRevenueFromOutgrant(o, createdBy)
	if err != nil {
		return nil, err
	}
	return s.posting.Post(ctx, tx)
}

// RecordRelocationExpense records an employee relocation benefit expense
func (s *IntakeService) RecordRelocationExpense(ctx context.Context, b ledger.RelocationBenefit, createdBy string) (*PostResult, error) {
	tx, err := ledger.GenerateExpenseFromRelocationBenefit(b, createdBy)
	if err != nil {
		return nil, err
	}
	return s.posting.Post(ctx, tx)
}

// RecordCostTransfer moves recorded cost between cost centers
func (s *IntakeService) RecordCostTransfer(ctx context.Context, t ledger.CostTransfer, createdBy string) (*PostResult, error) {
	tx, err := ledger.GenerateCostTransfer(t, createdBy)
	if err != nil {
		return nil, err
	}
	return s.posting.Post(ctx, tx)
}
