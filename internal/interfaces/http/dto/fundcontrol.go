package dto

import (
	"github.com/shopspring/decimal"
)

// FundNodeRequest is one node of an authority tree to install. Children
// nest recursively below the appropriation root.
type FundNodeRequest struct {
	Name           string            `json:"name" binding:"required"`
	Code           string            `json:"code" binding:"required"`
	Level          string            `json:"level" binding:"required,oneof=APPROPRIATION ALLOCATION ALLOTMENT SUB_ALLOTMENT"`
	TotalAuthority decimal.Decimal   `json:"total_authority"`
	Children       []FundNodeRequest `json:"children,omitempty" binding:"omitempty,dive"`
}

// AuthorityCheckRequest asks whether an amount fits under the remaining
// authority of the node matching the funding code.
type AuthorityCheckRequest struct {
	FundingCode string          `json:"funding_code"`
	Amount      decimal.Decimal `json:"amount"`
	Reference   string          `json:"reference"`
}
