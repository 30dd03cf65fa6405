package fundcontrol

import (
	"fmt"
	"strings"

	"github.com/openfms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Level represents the tier of a node in the funding authority hierarchy
type Level string

const (
	LevelAppropriation Level = "APPROPRIATION"
	LevelAllocation    Level = "ALLOCATION"
	LevelAllotment     Level = "ALLOTMENT"
	LevelSubAllotment  Level = "SUB_ALLOTMENT"
)

// IsValid checks if the level is a valid hierarchy tier
func (l Level) IsValid() bool {
	switch l {
	case LevelAppropriation, LevelAllocation, LevelAllotment, LevelSubAllotment:
		return true
	}
	return false
}

// String returns the string representation of the level
func (l Level) String() string {
	return string(l)
}

// Node is one entry in the funding authority hierarchy. A node carries an
// authorized ceiling and the cumulative amount obligated against it. The
// parent exclusively owns its children; the tree has no back-references.
//
// Nodes are created at fiscal year start from an authoritative funding
// document and are mutated only by successful commitment/obligation
// postings. Fiscal year rollover is the caller's concern.
type Node struct {
	Name            string          `json:"name"`
	Code            string          `json:"code"`
	Level           Level           `json:"level"`
	TotalAuthority  decimal.Decimal `json:"total_authority"`
	AmountObligated decimal.Decimal `json:"amount_obligated"`
	Children        []*Node         `json:"children,omitempty"`
}

// NewNode creates a funding authority node
func NewNode(name, code string, level Level, totalAuthority decimal.Decimal) (*Node, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Node name cannot be empty")
	}
	if !level.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid hierarchy level %q", level))
	}
	if totalAuthority.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Total authority cannot be negative")
	}
	return &Node{
		Name:            name,
		Code:            code,
		Level:           level,
		TotalAuthority:  totalAuthority,
		AmountObligated: decimal.Zero,
		Children:        make([]*Node, 0),
	}, nil
}

// AddChild appends a child node. Ownership transfers to the parent.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// Available returns the remaining authority at this node
func (n *Node) Available() decimal.Decimal {
	return n.TotalAuthority.Sub(n.AmountObligated)
}

// Obligate records an amount against this node's authority. The ceiling
// invariant is enforced here: a post that would push AmountObligated past
// TotalAuthority is rejected and the node is left unchanged.
func (n *Node) Obligate(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Obligation amount must be positive")
	}
	if amount.GreaterThan(n.Available()) {
		return shared.NewDomainError("INSUFFICIENT_AUTHORITY",
			fmt.Sprintf("Obligation of %s against %s exceeds available authority of %s",
				amount.StringFixed(2), n.Name, n.Available().StringFixed(2)))
	}
	n.AmountObligated = n.AmountObligated.Add(amount)
	return nil
}

// Release reverses previously recorded obligations, e.g. on a downward
// contract modification or closeout deobligation.
func (n *Node) Release(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Release amount must be positive")
	}
	if amount.GreaterThan(n.AmountObligated) {
		return shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Cannot release %s, only %s obligated at %s",
				amount.StringFixed(2), n.AmountObligated.StringFixed(2), n.Name))
	}
	n.AmountObligated = n.AmountObligated.Sub(amount)
	return nil
}

// Find returns the deepest node whose code is contained in the supplied
// funding code, so a fully qualified code lands on the most specific tier
// rather than its ancestors. An empty funding code matches the first
// allocation-level node, the baseline for unreferenced spending.
func (n *Node) Find(fundingCode string) *Node {
	if fundingCode == "" {
		return n.findByLevel(LevelAllocation)
	}
	var match *Node
	if n.Code != "" && strings.Contains(fundingCode, n.Code) {
		match = n
	}
	for _, child := range n.Children {
		if found := child.Find(fundingCode); found != nil {
			match = found
			break
		}
	}
	return match
}

// findByLevel returns the first node at the given level, depth-first
func (n *Node) findByLevel(level Level) *Node {
	if n.Level == level {
		return n
	}
	for _, child := range n.Children {
		if found := child.findByLevel(level); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits every node depth-first, parent before children
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, child := range n.Children {
		child.Walk(visit)
	}
}

// TotalObligated sums AmountObligated across the whole subtree
func (n *Node) TotalObligated() decimal.Decimal {
	total := decimal.Zero
	n.Walk(func(node *Node) {
		total = total.Add(node.AmountObligated)
	})
	return total
}
