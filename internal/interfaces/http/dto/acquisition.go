package dto

import (
	"github.com/shopspring/decimal"
)

// CreatePurchaseRequestRequest opens a purchase request and submits it
// for funds certification
type CreatePurchaseRequestRequest struct {
	RequestNumber string          `json:"request_number" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	Requestor     string          `json:"requestor" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	FundingCode   string          `json:"funding_code"`
	CostCenter    string          `json:"cost_center"`
}

// PurchaseRequestListRequest filters the purchase request listing
type PurchaseRequestListRequest struct {
	Status   string `form:"status" binding:"omitempty"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=200"`
}

// CreateSolicitationRequest opens a solicitation against a certified
// purchase request
type CreateSolicitationRequest struct {
	SolicitationNumber string `json:"solicitation_number" binding:"required"`
	Title              string `json:"title" binding:"required"`
	PurchaseRequestID  string `json:"purchase_request_id" binding:"required,uuid"`
}

// AdvanceSolicitationRequest moves a solicitation to the target phase
type AdvanceSolicitationRequest struct {
	Target string `json:"target" binding:"required"`
}

// AddQuoteRequest records a vendor quote on an open solicitation
type AddQuoteRequest struct {
	VendorName string          `json:"vendor_name" binding:"required"`
	Amount     decimal.Decimal `json:"amount"`
	Notes      string          `json:"notes"`
}

// AwardContractRequest awards a fixed-price contract from a certified
// purchase request. The solicitation is optional for simplified
// acquisitions below the competition threshold.
type AwardContractRequest struct {
	PurchaseRequestID string          `json:"purchase_request_id" binding:"required,uuid"`
	SolicitationID    string          `json:"solicitation_id" binding:"omitempty,uuid"`
	ContractNumber    string          `json:"contract_number" binding:"required"`
	VendorName        string          `json:"vendor_name" binding:"required"`
	Amount            decimal.Decimal `json:"amount"`
}

// ExecuteModificationRequest appends a modification to an active contract
type ExecuteModificationRequest struct {
	Description string          `json:"description" binding:"required"`
	AmountDelta decimal.Decimal `json:"amount_delta"`
}

// ContractListRequest filters the contract listing
type ContractListRequest struct {
	Status   string `form:"status" binding:"omitempty"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=200"`
}
