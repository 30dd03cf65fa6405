package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openfms/backend/internal/domain/shared"
)

// TransactionType classifies a general-ledger transaction
type TransactionType string

const (
	TypeCommitment           TransactionType = "COMMITMENT"
	TypeObligation           TransactionType = "OBLIGATION"
	TypeObligationAdjustment TransactionType = "OBLIGATION_ADJUSTMENT"
	TypeAccrual              TransactionType = "ACCRUAL"
	TypeDisbursement         TransactionType = "DISBURSEMENT"
	TypeRevenue              TransactionType = "REVENUE"
	TypeAdjustingEntry       TransactionType = "ADJUSTING_ENTRY"
	TypeCapitalization       TransactionType = "CAPITALIZATION"
	TypeDisposal             TransactionType = "DISPOSAL"
	TypeExpense              TransactionType = "EXPENSE"
)

// IsValid checks if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TypeCommitment, TypeObligation, TypeObligationAdjustment,
		TypeAccrual, TypeDisbursement, TypeRevenue, TypeAdjustingEntry,
		TypeCapitalization, TypeDisposal, TypeExpense:
		return true
	}
	return false
}

// String returns the string representation
func (t TransactionType) String() string {
	return string(t)
}

// PostingStatus represents the posting state of a transaction
type PostingStatus string

const (
	StatusDraft  PostingStatus = "DRAFT"
	StatusPosted PostingStatus = "POSTED"
)

// IsValid checks if the posting status is valid
func (s PostingStatus) IsValid() bool {
	return s == StatusDraft || s == StatusPosted
}

// String returns the string representation
func (s PostingStatus) String() string {
	return string(s)
}

// Line is a single debit or credit within a transaction. Exactly one of
// Debit and Credit is positive; the other is zero.
type Line struct {
	AccountCode string          `json:"account_code"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	FundingCode string          `json:"funding_code,omitempty"`
	CostCenter  string          `json:"cost_center,omitempty"`
}

// NewDebitLine creates a debit line against an account
func NewDebitLine(account Account, description string, amount decimal.Decimal, fundingCode, costCenter string) Line {
	return Line{
		AccountCode: account.Code,
		Description: description,
		Debit:       amount,
		Credit:      decimal.Zero,
		FundingCode: fundingCode,
		CostCenter:  costCenter,
	}
}

// NewCreditLine creates a credit line against an account
func NewCreditLine(account Account, description string, amount decimal.Decimal, fundingCode, costCenter string) Line {
	return Line{
		AccountCode: account.Code,
		Description: description,
		Debit:       decimal.Zero,
		Credit:      amount,
		FundingCode: fundingCode,
		CostCenter:  costCenter,
	}
}

// Validate checks the line invariants
func (l Line) Validate() error {
	if _, ok := LookupAccount(l.AccountCode); !ok {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown account code %q", l.AccountCode))
	}
	debitSet := l.Debit.IsPositive()
	creditSet := l.Credit.IsPositive()
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Line amounts cannot be negative")
	}
	if debitSet == creditSet {
		return shared.NewDomainError("INVALID_INPUT", "Line must carry exactly one of debit or credit")
	}
	return nil
}

// Amount returns the positive side of the line
func (l Line) Amount() decimal.Decimal {
	if l.Debit.IsPositive() {
		return l.Debit
	}
	return l.Credit
}

// Transaction is an immutable, balanced double-entry ledger transaction.
// Once posted, a transaction is never edited; corrections are posted as
// new adjusting transactions.
type Transaction struct {
	ID           uuid.UUID       `json:"id"`
	Date         time.Time       `json:"date"`
	Type         TransactionType `json:"type"`
	Description  string          `json:"description"`
	SourceModule string          `json:"source_module"`
	ReferenceID  string          `json:"reference_id"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       PostingStatus   `json:"status"`
	CreatedBy    string          `json:"created_by"`
	Lines        []Line          `json:"lines"`
	AuditLog     shared.AuditLog `json:"audit_log"`
}

// NewTransaction assembles and validates a balanced transaction. The
// transaction is created in POSTED status with an initial audit entry.
func NewTransaction(txType TransactionType, sourceModule, referenceID, description, createdBy string, lines []Line) (*Transaction, error) {
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid transaction type %q", txType))
	}
	if len(lines) < 2 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Transaction requires at least two lines")
	}
	for i, line := range lines {
		if err := line.Validate(); err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Line %d: %s", i+1, err.Error()))
		}
	}

	tx := &Transaction{
		ID:           uuid.New(),
		Date:         time.Now(),
		Type:         txType,
		Description:  description,
		SourceModule: sourceModule,
		ReferenceID:  referenceID,
		Status:       StatusPosted,
		CreatedBy:    createdBy,
		Lines:        lines,
	}
	if !tx.Balanced() {
		return nil, shared.NewDomainError("UNBALANCED_TRANSACTION",
			fmt.Sprintf("Transaction debits %s do not equal credits %s", tx.TotalDebits(), tx.TotalCredits()))
	}
	tx.TotalAmount = tx.TotalDebits()
	tx.AuditLog = tx.AuditLog.Append(createdBy, "POSTED", fmt.Sprintf("%s transaction for %s", txType, tx.TotalAmount))
	return tx, nil
}

// TotalDebits sums the debit side of all lines
func (t *Transaction) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range t.Lines {
		total = total.Add(line.Debit)
	}
	return total
}

// TotalCredits sums the credit side of all lines
func (t *Transaction) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range t.Lines {
		total = total.Add(line.Credit)
	}
	return total
}

// Balanced reports whether total debits equal total credits
func (t *Transaction) Balanced() bool {
	return t.TotalDebits().Equal(t.TotalCredits())
}

// AuthorityImpact returns the signed amount by which this transaction
// consumes funding authority. A commitment consumes its full amount. An
// obligation consumes what it credits to undelivered orders net of any
// commitment it liquidates, so obligating previously committed funds does
// not consume authority twice. A deobligating adjustment returns
// authority; all other types have no impact.
func (t *Transaction) AuthorityImpact() decimal.Decimal {
	switch t.Type {
	case TypeCommitment:
		return t.TotalAmount
	case TypeObligation:
		impact := decimal.Zero
		for _, line := range t.Lines {
			switch line.AccountCode {
			case AccountUndeliveredOrders:
				impact = impact.Add(line.Credit)
			case AccountCommitments:
				impact = impact.Sub(line.Debit)
			}
		}
		return impact
	case TypeObligationAdjustment:
		for _, line := range t.Lines {
			if line.AccountCode == AccountAllotments && line.Debit.IsPositive() {
				return t.TotalAmount
			}
		}
		return t.TotalAmount.Neg()
	}
	return decimal.Zero
}

// RecordAudit appends an entry to the transaction's audit log
func (t *Transaction) RecordAudit(user, action, details string) {
	t.AuditLog = t.AuditLog.Append(user, action, details)
}
