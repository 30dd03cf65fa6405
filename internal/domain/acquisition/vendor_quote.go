package acquisition

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/openfms/backend/internal/domain/shared"
)

// VendorQuote is a vendor's priced response to a solicitation
type VendorQuote struct {
	VendorName  string          `json:"vendor_name"`
	Amount      decimal.Decimal `json:"amount"`
	SubmittedAt time.Time       `json:"submitted_at"`
	Notes       string          `json:"notes,omitempty"`
}

// NewVendorQuote creates a quote stamped with the current time
func NewVendorQuote(vendorName string, amount decimal.Decimal, notes string) VendorQuote {
	return VendorQuote{
		VendorName:  vendorName,
		Amount:      amount,
		SubmittedAt: time.Now(),
		Notes:       notes,
	}
}

// Validate checks the quote fields
func (q VendorQuote) Validate() error {
	if q.VendorName == "" {
		return shared.NewDomainError("INVALID_INPUT", "Vendor quote requires a vendor name")
	}
	if !q.Amount.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "Vendor quote amount must be positive")
	}
	return nil
}
