package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/openfms/backend/internal/domain/shared"
)

// Typed inputs for the transaction generators. Each input validates its
// own fields; generators reject invalid inputs before building lines.

// PurchaseCommitment reserves funds for a purchase request before award
type PurchaseCommitment struct {
	RequestNumber string          `json:"request_number"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	FundingCode   string          `json:"funding_code"`
	CostCenter    string          `json:"cost_center"`
}

// Validate checks the commitment fields
func (c PurchaseCommitment) Validate() error {
	if c.RequestNumber == "" {
		return shared.NewDomainError("INVALID_INPUT", "Purchase commitment requires a request number")
	}
	return requirePositive("Commitment amount", c.Amount)
}

// ProjectOrder is a reimbursable work order placed against a project
type ProjectOrder struct {
	OrderNumber string          `json:"order_number"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	FundingCode string          `json:"funding_code"`
	CostCenter  string          `json:"cost_center"`
}

// Validate checks the project order fields
func (o ProjectOrder) Validate() error {
	if o.OrderNumber == "" {
		return shared.NewDomainError("INVALID_INPUT", "Project order requires an order number")
	}
	return requirePositive("Project order amount", o.Amount)
}

// Expense is an incurred cost, either payable or already paid
type Expense struct {
	ExpenseNumber string          `json:"expense_number"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	FundingCode   string          `json:"funding_code"`
	CostCenter    string          `json:"cost_center"`
	Paid          bool            `json:"paid"`
}

// Validate checks the expense fields
func (e Expense) Validate() error {
	if e.ExpenseNumber == "" {
		return shared.NewDomainError("INVALID_INPUT", "Expense requires an expense number")
	}
	return requirePositive("Expense amount", e.Amount)
}

// Asset is a capitalized item of general equipment
type Asset struct {
	AssetNumber             string          `json:"asset_number"`
	Description             string          `json:"description"`
	AcquisitionCost         decimal.Decimal `json:"acquisition_cost"`
	UsefulLifeYears         int             `json:"useful_life_years"`
	AccumulatedDepreciation decimal.Decimal `json:"accumulated_depreciation"`
	FundingCode             string          `json:"funding_code"`
	CostCenter              string          `json:"cost_center"`
}

// Validate checks the asset fields
func (a Asset) Validate() error {
	if a.AssetNumber == "" {
		return shared.NewDomainError("INVALID_INPUT", "Asset requires an asset number")
	}
	if err := requirePositive("Asset acquisition cost", a.AcquisitionCost); err != nil {
		return err
	}
	if a.AccumulatedDepreciation.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Accumulated depreciation cannot be negative")
	}
	return nil
}

// NetBookValue returns acquisition cost less accumulated depreciation
func (a Asset) NetBookValue() decimal.Decimal {
	return a.AcquisitionCost.Sub(a.AccumulatedDepreciation)
}

// TravelOrder authorizes official travel and obligates its estimated cost
type TravelOrder struct {
	OrderNumber   string          `json:"order_number"`
	Traveler      string          `json:"traveler"`
	Purpose       string          `json:"purpose"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	FundingCode   string          `json:"funding_code"`
	CostCenter    string          `json:"cost_center"`
}

// Validate checks the travel order fields
func (o TravelOrder) Validate() error {
	if o.OrderNumber == "" {
		return shared.NewDomainError("INVALID_INPUT", "Travel order requires an order number")
	}
	if o.Traveler == "" {
		return shared.NewDomainError("INVALID_INPUT", "Travel order requires a traveler")
	}
	return requirePositive("Travel order estimated cost", o.EstimatedCost)
}

// CostTransfer moves recorded cost from one cost center to another
type CostTransfer struct {
	TransferNumber string          `json:"transfer_number"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	FundingCode    string          `json:"funding_code"`
	FromCostCenter string          `json:"from_cost_center"`
	ToCostCenter   string          `json:"to_cost_center"`
}

// Validate checks the cost transfer fields
func (t CostTransfer) Validate() error {
	if t.TransferNumber == "" {
		return shared.NewDomainError("INVALID_INPUT", "Cost transfer requires a transfer number")
	}
	if t.FromCostCenter == "" || t.ToCostCenter == "" {
		return shared.NewDomainError("INVALID_INPUT", "Cost transfer requires both source and destination cost centers")
	}
	if t.FromCostCenter == t.ToCostCenter {
		return shared.NewDomainError("INVALID_INPUT", "Cost transfer source and destination cost centers must differ")
	}
	return requirePositive("Cost transfer amount", t.Amount)
}

// Outgrant is a lease or license of property to an outside party,
// producing revenue receivable
type Outgrant struct {
	AgreementNumber string          `json:"agreement_number"`
	Grantee         string          `json:"grantee"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	FundingCode     string          `json:"funding_code"`
	CostCenter      string          `json:"cost_center"`
}

// Validate checks the outgrant fields
func (o Outgrant) Validate() error {
	if o.AgreementNumber == "" {
		return shared.NewDomainError("INVALID_INPUT", "Outgrant requires an agreement number")
	}
	if o.Grantee == "" {
		return shared.NewDomainError("INVALID_INPUT", "Outgrant requires a grantee")
	}
	return requirePositive("Outgrant amount", o.Amount)
}

// RelocationBenefit is an employee relocation entitlement expense
type RelocationBenefit struct {
	CaseNumber  string          `json:"case_number"`
	Claimant    string          `json:"claimant"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	FundingCode string          `json:"funding_code"`
	CostCenter  string          `json:"cost_center"`
}

// Validate checks the relocation benefit fields
func (b RelocationBenefit) Validate() error {
	if b.CaseNumber == "" {
		return shared.NewDomainError("INVALID_INPUT", "Relocation benefit requires a case number")
	}
	if b.Claimant == "" {
		return shared.NewDomainError("INVALID_INPUT", "Relocation benefit requires a claimant")
	}
	return requirePositive("Relocation benefit amount", b.Amount)
}

// ModificationAdjustment carries the signed change in obligated value
// produced by a contract modification. A positive delta increases the
// recorded obligation, a negative delta deobligates.
type ModificationAdjustment struct {
	ContractNumber string          `json:"contract_number"`
	ModNumber      string          `json:"mod_number"`
	Description    string          `json:"description"`
	AmountDelta    decimal.Decimal `json:"amount_delta"`
	FundingCode    string          `json:"funding_code"`
	CostCenter     string          `json:"cost_center"`
}

// Validate checks the modification adjustment fields
func (m ModificationAdjustment) Validate() error {
	if m.ContractNumber == "" {
		return shared.NewDomainError("INVALID_INPUT", "Modification adjustment requires a contract number")
	}
	if m.ModNumber == "" {
		return shared.NewDomainError("INVALID_INPUT", "Modification adjustment requires a modification number")
	}
	return nil
}

func requirePositive(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", field+" must be positive")
	}
	return nil
}
