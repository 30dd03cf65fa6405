package fundcontrol

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Validate(t *testing.T) {
	newTree := func(t *testing.T, authority, obligated int64) *Node {
		t.Helper()
		root, err := NewNode("Appropriation", "96X3123", LevelAppropriation, decimal.NewFromInt(authority*10))
		require.NoError(t, err)
		alloc, err := NewNode("Allocation", "B2000", LevelAllocation, decimal.NewFromInt(authority))
		require.NoError(t, err)
		alloc.AmountObligated = decimal.NewFromInt(obligated)
		root.AddChild(alloc)
		return root
	}

	v := NewValidator()

	t.Run("passes when amount is within available authority", func(t *testing.T) {
		tree := newTree(t, 700000, 0)
		res := v.Validate(AuthorityCheck{FundingCode: "B2000", Amount: decimal.NewFromInt(600000)}, tree)
		assert.True(t, res.Valid)
		assert.Equal(t, "B2000", res.NodeCode)
	})

	t.Run("fails when amount exceeds available authority", func(t *testing.T) {
		tree := newTree(t, 500000, 0)
		res := v.Validate(AuthorityCheck{FundingCode: "B2000", Amount: decimal.NewFromInt(600000)}, tree)
		assert.False(t, res.Valid)
		assert.Contains(t, res.Message, "Anti-Deficiency Act violation")
		assert.Contains(t, res.Message, "Allocation")
		assert.Contains(t, res.Message, "600000.00")
		assert.Contains(t, res.Message, "500000.00")
	})

	t.Run("amount equal to remaining balance passes", func(t *testing.T) {
		tree := newTree(t, 700000, 100000)
		res := v.Validate(AuthorityCheck{FundingCode: "B2000", Amount: decimal.NewFromInt(600000)}, tree)
		assert.True(t, res.Valid)
	})

	t.Run("one cent over remaining balance fails", func(t *testing.T) {
		tree := newTree(t, 700000, 100000)
		res := v.Validate(AuthorityCheck{FundingCode: "B2000", Amount: decimal.RequireFromString("600000.01")}, tree)
		assert.False(t, res.Valid)
	})

	t.Run("obligated amounts reduce availability", func(t *testing.T) {
		tree := newTree(t, 500000, 450000)
		res := v.Validate(AuthorityCheck{FundingCode: "B2000", Amount: decimal.NewFromInt(60000)}, tree)
		assert.False(t, res.Valid)
		assert.True(t, res.Available.Equal(decimal.NewFromInt(50000)))
	})

	t.Run("empty funding code checks the allocation baseline", func(t *testing.T) {
		tree := newTree(t, 100, 0)
		res := v.Validate(AuthorityCheck{FundingCode: "", Amount: decimal.NewFromInt(250)}, tree)
		assert.False(t, res.Valid)
		assert.Equal(t, "B2000", res.NodeCode)
	})

	t.Run("does not mutate the tree", func(t *testing.T) {
		tree := newTree(t, 700000, 100000)
		_ = v.Validate(AuthorityCheck{FundingCode: "B2000", Amount: decimal.NewFromInt(600000)}, tree)
		assert.Equal(t, "100000", tree.Children[0].AmountObligated.String())
	})
}

func TestValidator_UnmatchedCode(t *testing.T) {
	tree, err := NewNode("Appropriation", "96X3123", LevelAppropriation, decimal.NewFromInt(1000))
	require.NoError(t, err)

	t.Run("strict by default", func(t *testing.T) {
		v := NewValidator()
		res := v.Validate(AuthorityCheck{FundingCode: "UNKNOWN", Amount: decimal.NewFromInt(1)}, tree)
		assert.False(t, res.Valid)
		assert.Contains(t, res.Message, "No fund control node")
	})

	t.Run("permissive behind AllowUnmatched", func(t *testing.T) {
		v := &Validator{AllowUnmatched: true}
		res := v.Validate(AuthorityCheck{FundingCode: "UNKNOWN", Amount: decimal.NewFromInt(1)}, tree)
		assert.True(t, res.Valid)
		assert.Contains(t, res.Message, "unconstrained")
	})

	t.Run("nil tree treated as unmatched", func(t *testing.T) {
		v := NewValidator()
		res := v.Validate(AuthorityCheck{FundingCode: "B2000", Amount: decimal.NewFromInt(1)}, nil)
		assert.False(t, res.Valid)
	})
}
