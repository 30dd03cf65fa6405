package fundcontrol

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AuthorityCheck is the slice of a proposed transaction the validator looks
// at: the funding code to locate a node and the amount to test against it.
type AuthorityCheck struct {
	FundingCode string
	Amount      decimal.Decimal
	Reference   string
}

// ValidationResult is the outcome of an authority check. A failed check is
// a normal result value, not an error; callers branch on Valid.
type ValidationResult struct {
	Valid     bool            `json:"valid"`
	Message   string          `json:"message"`
	NodeCode  string          `json:"node_code,omitempty"`
	NodeName  string          `json:"node_name,omitempty"`
	Available decimal.Decimal `json:"available"`
}

// Validator performs Anti-Deficiency-Act style ceiling checks against a
// funding authority tree. It never mutates the tree and records nothing.
//
// By default a transaction whose funding code matches no node fails the
// check. AllowUnmatched restores the legacy permissive behavior in which
// an unmatched code is treated as unconstrained spending; it exists only
// for hosts that knowingly run with a partial fund control tree.
type Validator struct {
	AllowUnmatched bool
}

// NewValidator creates a validator with strict unmatched-code handling
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks the proposed amount against the remaining authority of
// the first matching node in the tree.
func (v *Validator) Validate(check AuthorityCheck, root *Node) ValidationResult {
	if root == nil {
		return v.unmatched(check)
	}

	node := root.Find(check.FundingCode)
	if node == nil {
		return v.unmatched(check)
	}

	available := node.Available()
	if check.Amount.GreaterThan(available) {
		return ValidationResult{
			Valid:    false,
			NodeCode: node.Code,
			NodeName: node.Name,
			Message: fmt.Sprintf(
				"Anti-Deficiency Act violation: proposed amount %s against %s exceeds available authority of %s",
				check.Amount.StringFixed(2), node.Name, available.StringFixed(2)),
			Available: available,
		}
	}

	return ValidationResult{
		Valid:    true,
		NodeCode: node.Code,
		NodeName: node.Name,
		Message: fmt.Sprintf("Funds available: %s remaining at %s after this action",
			available.Sub(check.Amount).StringFixed(2), node.Name),
		Available: available,
	}
}

func (v *Validator) unmatched(check AuthorityCheck) ValidationResult {
	if v.AllowUnmatched {
		return ValidationResult{
			Valid: true,
			Message: fmt.Sprintf(
				"No fund control node matches funding code %q; treating as unconstrained (permissive mode)",
				check.FundingCode),
			Available: decimal.Zero,
		}
	}
	return ValidationResult{
		Valid: false,
		Message: fmt.Sprintf(
			"No fund control node matches funding code %q; funds cannot be certified",
			check.FundingCode),
		Available: decimal.Zero,
	}
}
