package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/openfms/backend/internal/domain/fundcontrol"
	"github.com/openfms/backend/internal/domain/ledger"
	"github.com/openfms/backend/internal/domain/shared"
)

// PostingStore atomically persists a posted transaction together with the
// fund tree snapshot it affected. A nil root means no authority change.
type PostingStore interface {
	SavePosted(ctx context.Context, tx *ledger.Transaction, root *fundcontrol.Node) error
}

// PostingService is the sink for engine-emitted transactions. Posting a
// transaction that consumes authority also applies the obligation to the
// stored fund tree; the ceiling check on the node is the hard invariant
// regardless of any advisory validation done earlier.
type PostingService struct {
	store    PostingStore
	txRepo   ledger.TransactionRepository
	fundRepo fundcontrol.Repository
	logger   *zap.Logger
}

// NewPostingService creates a new PostingService
func NewPostingService(
	store PostingStore,
	txRepo ledger.TransactionRepository,
	fundRepo fundcontrol.Repository,
	logger *zap.Logger,
) *PostingService {
	return &PostingService{
		store:    store,
		txRepo:   txRepo,
		fundRepo: fundRepo,
		logger:   logger,
	}
}

// PostResult describes the outcome of a posting
type PostResult struct {
	TransactionID      uuid.UUID       `json:"transaction_id"`
	NodeCode           string          `json:"node_code,omitempty"`
	RemainingAuthority decimal.Decimal `json:"remaining_authority"`
}

// Post records a transaction in the general ledger. Transactions that
// consume authority must fit within the matched node's remaining
// authority or the whole posting fails with no change.
func (s *PostingService) Post(ctx context.Context, tx *ledger.Transaction) (*PostResult, error) {
	if tx == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "No transaction to post")
	}
	if !tx.Balanced() {
		return nil, shared.ErrUnbalancedTransaction
	}

	result := &PostResult{TransactionID: tx.ID}

	var root *fundcontrol.Node
	impact := tx.AuthorityImpact()
	if !impact.IsZero() {
		var err error
		root, err = s.fundRepo.LoadTree(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load fund tree: %w", err)
		}

		fundingCode := txFundingCode(tx)
		var node *fundcontrol.Node
		if root != nil {
			node = root.Find(fundingCode)
		}
		if node == nil {
			s.logger.Warn("no fund control node matches posting; authority untracked",
				zap.String("transaction_id", tx.ID.String()),
				zap.String("funding_code", fundingCode),
				zap.String("type", tx.Type.String()))
			root = nil
		} else {
			if impact.IsPositive() {
				if err := node.Obligate(impact); err != nil {
					return nil, err
				}
			} else {
				if err := node.Release(impact.Neg()); err != nil {
					return nil, err
				}
			}
			result.NodeCode = node.Code
			result.RemainingAuthority = node.Available()
		}
	}

	if err := s.store.SavePosted(ctx, tx, root); err != nil {
		return nil, fmt.Errorf("failed to save posting: %w", err)
	}

	s.logger.Info("transaction posted",
		zap.String("transaction_id", tx.ID.String()),
		zap.String("type", tx.Type.String()),
		zap.String("reference", tx.ReferenceID),
		zap.String("amount", tx.TotalAmount.String()))
	return result, nil
}

// GetTransaction returns a posted transaction by id
func (s *PostingService) GetTransaction(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	if tx == nil {
		return nil, shared.ErrNotFound
	}
	return tx, nil
}

// ListTransactions returns posted transactions matching the filter
func (s *PostingService) ListTransactions(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 200 {
		filter.PageSize = 50
	}
	return s.txRepo.List(ctx, filter)
}

// TrialBalance summarizes debit and credit activity per account
type TrialBalance struct {
	Accounts     []ledger.AccountTotal `json:"accounts"`
	TotalDebits  decimal.Decimal       `json:"total_debits"`
	TotalCredits decimal.Decimal       `json:"total_credits"`
	Balanced     bool                  `json:"balanced"`
}

// GetTrialBalance aggregates all posted activity into a trial balance
func (s *PostingService) GetTrialBalance(ctx context.Context) (*TrialBalance, error) {
	totals, err := s.txRepo.TotalsByAccount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate account totals: %w", err)
	}

	tb := &TrialBalance{
		Accounts:     totals,
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}
	for _, at := range totals {
		tb.TotalDebits = tb.TotalDebits.Add(at.Debits)
		tb.TotalCredits = tb.TotalCredits.Add(at.Credits)
	}
	tb.Balanced = tb.TotalDebits.Equal(tb.TotalCredits)
	return tb, nil
}

func txFundingCode(tx *ledger.Transaction) string {
	for _, line := range tx.Lines {
		if line.FundingCode != "" {
			return line.FundingCode
		}
	}
	return ""
}
