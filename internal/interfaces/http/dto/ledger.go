package dto

import (
	"github.com/shopspring/decimal"
)

// TransactionListRequest filters the posted transaction listing
type TransactionListRequest struct {
	Type         string `form:"type" binding:"omitempty"`
	SourceModule string `form:"source_module" binding:"omitempty"`
	ReferenceID  string `form:"reference_id" binding:"omitempty"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=200"`
}

// ProjectOrderRequest records a reimbursable project order obligation.
// The requesting role is checked against the obligation allow-list.
type ProjectOrderRequest struct {
	OrderNumber string          `json:"order_number" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	FundingCode string          `json:"funding_code"`
	CostCenter  string          `json:"cost_center"`
	RequestedBy string          `json:"requested_by" binding:"required,role"`
}

// TravelOrderRequest obligates the estimated cost of official travel
type TravelOrderRequest struct {
	OrderNumber   string          `json:"order_number" binding:"required"`
	Traveler      string          `json:"traveler" binding:"required"`
	Purpose       string          `json:"purpose"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	FundingCode   string          `json:"funding_code"`
	CostCenter    string          `json:"cost_center"`
}

// ExpenseRequest records an incurred cost, accrued or disbursed
type ExpenseRequest struct {
	ExpenseNumber string          `json:"expense_number" binding:"required"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	FundingCode   string          `json:"funding_code"`
	CostCenter    string          `json:"cost_center"`
	Paid          bool            `json:"paid"`
}

// AssetRequest describes an item of general equipment for the
// capitalization, depreciation, and disposal entries
type AssetRequest struct {
	AssetNumber             string          `json:"asset_number" binding:"required"`
	Description             string          `json:"description"`
	AcquisitionCost         decimal.Decimal `json:"acquisition_cost"`
	UsefulLifeYears         int             `json:"useful_life_years"`
	AccumulatedDepreciation decimal.Decimal `json:"accumulated_depreciation"`
	FundingCode             string          `json:"funding_code"`
	CostCenter              string          `json:"cost_center"`
}

// OutgrantRequest records revenue earned from a lease or license of
// property to an outside party
type OutgrantRequest struct {
	AgreementNumber string          `json:"agreement_number" binding:"required"`
	Grantee         string          `json:"grantee" binding:"required"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	FundingCode     string          `json:"funding_code"`
	CostCenter      string          `json:"cost_center"`
}

// RelocationRequest records an employee relocation benefit expense
type RelocationRequest struct {
	CaseNumber  string          `json:"case_number" binding:"required"`
	Claimant    string          `json:"claimant" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	FundingCode string          `json:"funding_code"`
	CostCenter  string          `json:"cost_center"`
}

// CostTransferRequest moves recorded cost between cost centers
type CostTransferRequest struct {
	TransferNumber string          `json:"transfer_number" binding:"required"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	FundingCode    string          `json:"funding_code"`
	FromCostCenter string          `json:"from_cost_center" binding:"required"`
	ToCostCenter   string          `json:"to_cost_center" binding:"required"`
}
