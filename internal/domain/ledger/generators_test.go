package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfms/backend/internal/domain/shared"
)

func TestGenerateCommitmentFromPurchaseRequest(t *testing.T) {
	commitment := PurchaseCommitment{
		RequestNumber: "PR-2026-0042",
		Description:   "network switches",
		Amount:        decimal.NewFromInt(85000),
		FundingCode:   "96X3123.B2100",
		CostCenter:    "CC-IT",
	}

	tx, err := GenerateCommitmentFromPurchaseRequest(commitment, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, TypeCommitment, tx.Type)
	assert.Equal(t, SourceAcquisition, tx.SourceModule)
	assert.Equal(t, "PR-2026-0042", tx.ReferenceID)
	require.Len(t, tx.Lines, 2)
	assert.Equal(t, AccountAllotments, tx.Lines[0].AccountCode)
	assert.Equal(t, AccountCommitments, tx.Lines[1].AccountCode)
	assert.True(t, tx.Balanced())

	t.Run("nonpositive amount rejected", func(t *testing.T) {
		bad := commitment
		bad.Amount = decimal.Zero
		_, err := GenerateCommitmentFromPurchaseRequest(bad, "jdoe")
		require.Error(t, err)
	})
}

func TestGenerateObligationFromProjectOrder(t *testing.T) {
	order := ProjectOrder{
		OrderNumber: "PO-7731",
		Description: "levee survey work",
		Amount:      decimal.NewFromInt(42000),
		FundingCode: "96X3123.B2100",
		CostCenter:  "CC-ENG",
	}

	t.Run("budget officer allowed", func(t *testing.T) {
		tx, err := GenerateObligationFromProjectOrder(order, shared.RoleBudgetOfficer, "jdoe")
		require.NoError(t, err)
		assert.Equal(t, TypeObligation, tx.Type)
		assert.Equal(t, SourceProjectOrders, tx.SourceModule)
		assert.Equal(t, AccountAllotments, tx.Lines[0].AccountCode)
		assert.Equal(t, AccountUndeliveredOrders, tx.Lines[1].AccountCode)
		assert.True(t, tx.Balanced())
	})

	t.Run("resource manager allowed", func(t *testing.T) {
		_, err := GenerateObligationFromProjectOrder(order, shared.RoleResourceManager, "jdoe")
		require.NoError(t, err)
	})

	t.Run("program manager rejected", func(t *testing.T) {
		tx, err := GenerateObligationFromProjectOrder(order, shared.RoleProgramManager, "jdoe")
		require.Error(t, err)
		assert.Nil(t, tx)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})
}

func TestGenerateObligationFromContract(t *testing.T) {
	t.Run("no prior commitment produces plain obligation", func(t *testing.T) {
		tx, err := GenerateObligationFromContract("W912-26-C-0007", "network switches",
			decimal.NewFromInt(83500), decimal.Zero, "96X3123.B2100", "CC-IT", "cowens")
		require.NoError(t, err)
		assert.Equal(t, TypeObligation, tx.Type)
		assert.Equal(t, SourceContracts, tx.SourceModule)
		require.Len(t, tx.Lines, 2)
		assert.Equal(t, AccountAllotments, tx.Lines[0].AccountCode)
		assert.Equal(t, AccountUndeliveredOrders, tx.Lines[1].AccountCode)
		assert.True(t, tx.Balanced())
		assert.True(t, tx.AuthorityImpact().Equal(decimal.NewFromInt(83500)))
	})

	t.Run("award at committed amount liquidates fully", func(t *testing.T) {
		tx, err := GenerateObligationFromContract("W912-26-C-0007", "network switches",
			decimal.NewFromInt(85000), decimal.NewFromInt(85000), "96X3123.B2100", "CC-IT", "cowens")
		require.NoError(t, err)
		require.Len(t, tx.Lines, 2)
		assert.Equal(t, AccountCommitments, tx.Lines[0].AccountCode)
		assert.True(t, tx.Lines[0].Debit.Equal(decimal.NewFromInt(85000)))
		assert.Equal(t, AccountUndeliveredOrders, tx.Lines[1].AccountCode)
		assert.True(t, tx.Balanced())
		assert.True(t, tx.AuthorityImpact().IsZero())
	})

	t.Run("award above committed amount draws the difference", func(t *testing.T) {
		tx, err := GenerateObligationFromContract("W912-26-C-0007", "network switches",
			decimal.NewFromInt(100000), decimal.NewFromInt(85000), "96X3123.B2100", "CC-IT", "cowens")
		require.NoError(t, err)
		require.Len(t, tx.Lines, 3)
		assert.Equal(t, AccountCommitments, tx.Lines[0].AccountCode)
		assert.Equal(t, AccountAllotments, tx.Lines[1].AccountCode)
		assert.True(t, tx.Lines[1].Debit.Equal(decimal.NewFromInt(15000)))
		assert.True(t, tx.Balanced())
		assert.True(t, tx.AuthorityImpact().Equal(decimal.NewFromInt(15000)))
	})

	t.Run("award below committed amount returns the difference", func(t *testing.T) {
		tx, err := GenerateObligationFromContract("W912-26-C-0007", "network switches",
			decimal.NewFromInt(70000), decimal.NewFromInt(85000), "96X3123.B2100", "CC-IT", "cowens")
		require.NoError(t, err)
		require.Len(t, tx.Lines, 3)
		assert.Equal(t, AccountAllotments, tx.Lines[1].AccountCode)
		assert.True(t, tx.Lines[1].Credit.Equal(decimal.NewFromInt(15000)))
		assert.True(t, tx.Balanced())
		assert.True(t, tx.AuthorityImpact().Equal(decimal.NewFromInt(-15000)))
	})

	t.Run("missing contract number rejected", func(t *testing.T) {
		_, err := GenerateObligationFromContract("", "x",
			decimal.NewFromInt(1000), decimal.Zero, "", "", "u")
		require.Error(t, err)
	})

	t.Run("negative committed amount rejected", func(t *testing.T) {
		_, err := GenerateObligationFromContract("K-1", "x",
			decimal.NewFromInt(1000), decimal.NewFromInt(-1), "", "", "u")
		require.Error(t, err)
	})
}

func TestGenerateAccrualAndDisbursement(t *testing.T) {
	expense := Expense{
		ExpenseNumber: "EXP-1109",
		Description:   "utilities",
		Amount:        decimal.NewFromFloat(3250.75),
		FundingCode:   "96X3123.B2100",
		CostCenter:    "CC-FAC",
	}

	accrual, err := GenerateAccrualFromExpense(expense, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, TypeAccrual, accrual.Type)
	assert.Equal(t, AccountOperatingExpenses, accrual.Lines[0].AccountCode)
	assert.Equal(t, AccountAccountsPayable, accrual.Lines[1].AccountCode)
	assert.True(t, accrual.Balanced())

	t.Run("unpaid expense cannot disburse", func(t *testing.T) {
		_, err := GenerateDisbursementFromExpense(expense, "jdoe")
		require.Error(t, err)
	})

	t.Run("paid expense disburses", func(t *testing.T) {
		paid := expense
		paid.Paid = true
		tx, err := GenerateDisbursementFromExpense(paid, "jdoe")
		require.NoError(t, err)
		assert.Equal(t, TypeDisbursement, tx.Type)
		assert.Equal(t, AccountAccountsPayable, tx.Lines[0].AccountCode)
		assert.Equal(t, AccountFundBalanceWithTreasury, tx.Lines[1].AccountCode)
		assert.True(t, tx.Balanced())
		assert.True(t, tx.TotalAmount.Equal(decimal.NewFromFloat(3250.75)))
	})
}

func TestGenerateQuarterlyDepreciation(t *testing.T) {
	asset := Asset{
		AssetNumber:     "AST-220",
		Description:     "dredge pump",
		AcquisitionCost: decimal.NewFromInt(400000),
		UsefulLifeYears: 40,
		FundingCode:     "96X3123.B2100",
		CostCenter:      "CC-OPS",
	}

	tx, err := GenerateQuarterlyDepreciation(asset, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, TypeAdjustingEntry, tx.Type)
	want := decimal.NewFromInt(2500)
	assert.True(t, tx.Lines[0].Debit.Equal(want), "debit %s", tx.Lines[0].Debit)
	assert.True(t, tx.Lines[1].Credit.Equal(want), "credit %s", tx.Lines[1].Credit)
	assert.Equal(t, AccountDepreciationExpense, tx.Lines[0].AccountCode)
	assert.Equal(t, AccountAccumulatedDepreciation, tx.Lines[1].AccountCode)
	assert.True(t, tx.Balanced())

	t.Run("zero useful life rejected", func(t *testing.T) {
		bad := asset
		bad.UsefulLifeYears = 0
		_, err := GenerateQuarterlyDepreciation(bad, "jdoe")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})

	t.Run("uneven life rounds to cents", func(t *testing.T) {
		uneven := asset
		uneven.AcquisitionCost = decimal.NewFromInt(100000)
		uneven.UsefulLifeYears = 3
		tx, err := GenerateQuarterlyDepreciation(uneven, "jdoe")
		require.NoError(t, err)
		assert.True(t, tx.Balanced())
		assert.Equal(t, int32(-2), tx.Lines[0].Debit.Exponent())
	})
}

func TestGenerateTravelObligation(t *testing.T) {
	order := TravelOrder{
		OrderNumber:   "TO-0456",
		Traveler:      "A. Rivera",
		Purpose:       "site inspection",
		EstimatedCost: decimal.NewFromFloat(1875.50),
		FundingCode:   "96X3123.B2110",
		CostCenter:    "CC-ENG",
	}

	tx, err := GenerateTravelObligation(order, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, TypeObligation, tx.Type)
	assert.Equal(t, SourceTravel, tx.SourceModule)
	assert.True(t, tx.Balanced())
	assert.Contains(t, tx.Lines[0].Description, "A. Rivera")
}

func TestGenerateRevenueFromOutgrant(t *testing.T) {
	grant := Outgrant{
		AgreementNumber: "OG-88",
		Grantee:         "Harborview Marina LLC",
		Description:     "marina lease Q3",
		Amount:          decimal.NewFromInt(12500),
		FundingCode:     "96X3123.B2100",
		CostCenter:      "CC-RE",
	}

	tx, err := GenerateRevenueFromOutgrant(grant, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, TypeRevenue, tx.Type)
	assert.Equal(t, AccountAccountsReceivable, tx.Lines[0].AccountCode)
	assert.Equal(t, AccountRevenueFromServices, tx.Lines[1].AccountCode)
	assert.True(t, tx.Balanced())
}

func TestGenerateExpenseFromRelocationBenefit(t *testing.T) {
	benefit := RelocationBenefit{
		CaseNumber:  "RELO-314",
		Claimant:    "B. Okafor",
		Description: "househunting trip",
		Amount:      decimal.NewFromFloat(4100.00),
		FundingCode: "96X3123.B2100",
		CostCenter:  "CC-HR",
	}

	tx, err := GenerateExpenseFromRelocationBenefit(benefit, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, TypeExpense, tx.Type)
	assert.Equal(t, SourceRelocation, tx.SourceModule)
	assert.True(t, tx.Balanced())
}

func TestGenerateCostTransfer(t *testing.T) {
	transfer := CostTransfer{
		TransferNumber: "CT-19",
		Description:    "reassign survey labor",
		Amount:         decimal.NewFromInt(9800),
		FundingCode:    "96X3123.B2100",
		FromCostCenter: "CC-ENG",
		ToCostCenter:   "CC-OPS",
	}

	tx, err := GenerateCostTransfer(transfer, "jdoe")
	require.NoError(t, err)
	require.Len(t, tx.Lines, 2)
	assert.Equal(t, AccountOperatingExpenses, tx.Lines[0].AccountCode)
	assert.Equal(t, AccountOperatingExpenses, tx.Lines[1].AccountCode)
	assert.Equal(t, "CC-OPS", tx.Lines[0].CostCenter)
	assert.Equal(t, "CC-ENG", tx.Lines[1].CostCenter)
	assert.True(t, tx.Balanced())

	t.Run("same cost center rejected", func(t *testing.T) {
		bad := transfer
		bad.ToCostCenter = bad.FromCostCenter
		_, err := GenerateCostTransfer(bad, "jdoe")
		require.Error(t, err)
	})
}

func TestGenerateContractModificationAdjustment(t *testing.T) {
	base := ModificationAdjustment{
		ContractNumber: "W912-26-C-0007",
		ModNumber:      "P00001",
		Description:    "descope optional CLIN",
		FundingCode:    "96X3123.B2100",
		CostCenter:     "CC-CT",
	}

	t.Run("positive delta increases obligation", func(t *testing.T) {
		mod := base
		mod.AmountDelta = decimal.NewFromInt(15000)
		tx, err := GenerateContractModificationAdjustment(mod, "jdoe")
		require.NoError(t, err)
		assert.Equal(t, TypeObligationAdjustment, tx.Type)
		assert.Equal(t, AccountAllotments, tx.Lines[0].AccountCode)
		assert.Equal(t, AccountUndeliveredOrders, tx.Lines[1].AccountCode)
		assert.True(t, tx.TotalAmount.Equal(decimal.NewFromInt(15000)))
		assert.True(t, tx.Balanced())
	})

	t.Run("negative delta reverses placement", func(t *testing.T) {
		mod := base
		mod.AmountDelta = decimal.NewFromInt(-15000)
		tx, err := GenerateContractModificationAdjustment(mod, "jdoe")
		require.NoError(t, err)
		assert.Equal(t, AccountUndeliveredOrders, tx.Lines[0].AccountCode)
		assert.Equal(t, AccountAllotments, tx.Lines[1].AccountCode)
		assert.True(t, tx.TotalAmount.Equal(decimal.NewFromInt(15000)))
		assert.True(t, tx.Balanced())
	})

	t.Run("negative delta returns authority", func(t *testing.T) {
		mod := base
		mod.AmountDelta = decimal.NewFromInt(-15000)
		tx, err := GenerateContractModificationAdjustment(mod, "jdoe")
		require.NoError(t, err)
		assert.True(t, tx.AuthorityImpact().Equal(decimal.NewFromInt(-15000)))
	})

	t.Run("positive delta consumes authority", func(t *testing.T) {
		mod := base
		mod.AmountDelta = decimal.NewFromInt(15000)
		tx, err := GenerateContractModificationAdjustment(mod, "jdoe")
		require.NoError(t, err)
		assert.True(t, tx.AuthorityImpact().Equal(decimal.NewFromInt(15000)))
	})

	t.Run("zero delta produces no transaction", func(t *testing.T) {
		mod := base
		mod.AmountDelta = decimal.Zero
		tx, err := GenerateContractModificationAdjustment(mod, "jdoe")
		require.NoError(t, err)
		assert.Nil(t, tx)
	})
}

func TestGenerateCapitalizationAndDisposal(t *testing.T) {
	asset := Asset{
		AssetNumber:     "AST-501",
		Description:     "survey vessel",
		AcquisitionCost: decimal.NewFromInt(250000),
		UsefulLifeYears: 25,
		FundingCode:     "96X3123.B2100",
		CostCenter:      "CC-OPS",
	}

	t.Run("capitalization reclassifies full cost", func(t *testing.T) {
		tx, err := GenerateCapitalizationFromAsset(asset, "jdoe")
		require.NoError(t, err)
		assert.Equal(t, TypeCapitalization, tx.Type)
		assert.Equal(t, AccountGeneralEquipment, tx.Lines[0].AccountCode)
		assert.Equal(t, AccountOperatingExpenses, tx.Lines[1].AccountCode)
		assert.True(t, tx.TotalAmount.Equal(decimal.NewFromInt(250000)))
	})

	t.Run("disposal writes off net book value", func(t *testing.T) {
		depreciated := asset
		depreciated.AccumulatedDepreciation = decimal.NewFromInt(180000)
		tx, err := GenerateDisposalFromAsset(depreciated, "jdoe")
		require.NoError(t, err)
		assert.Equal(t, TypeDisposal, tx.Type)
		assert.Equal(t, AccountLossOnDisposition, tx.Lines[0].AccountCode)
		assert.Equal(t, AccountGeneralEquipment, tx.Lines[1].AccountCode)
		assert.True(t, tx.TotalAmount.Equal(decimal.NewFromInt(70000)))
		assert.True(t, tx.Balanced())
	})

	t.Run("fully depreciated asset rejected", func(t *testing.T) {
		gone := asset
		gone.AccumulatedDepreciation = asset.AcquisitionCost
		_, err := GenerateDisposalFromAsset(gone, "jdoe")
		require.Error(t, err)
	})
}

func TestAllGeneratorsBalance(t *testing.T) {
	amount := decimal.NewFromFloat(3333.33)
	txs := make([]*Transaction, 0, 12)

	mk := func(tx *Transaction, err error) {
		t.Helper()
		require.NoError(t, err)
		require.NotNil(t, tx)
		txs = append(txs, tx)
	}

	mk(GenerateCommitmentFromPurchaseRequest(PurchaseCommitment{RequestNumber: "PR-1", Amount: amount}, "u"))
	mk(GenerateObligationFromProjectOrder(ProjectOrder{OrderNumber: "PO-1", Amount: amount}, shared.RoleBudgetOfficer, "u"))
	mk(GenerateObligationFromContract("K-1", "award", amount, decimal.Zero, "", "", "u"))
	mk(GenerateTravelObligation(TravelOrder{OrderNumber: "TO-1", Traveler: "x", EstimatedCost: amount}, "u"))
	mk(GenerateAccrualFromExpense(Expense{ExpenseNumber: "E-1", Amount: amount}, "u"))
	mk(GenerateDisbursementFromExpense(Expense{ExpenseNumber: "E-1", Amount: amount, Paid: true}, "u"))
	mk(GenerateQuarterlyDepreciation(Asset{AssetNumber: "A-1", AcquisitionCost: amount, UsefulLifeYears: 7}, "u"))
	mk(GenerateRevenueFromOutgrant(Outgrant{AgreementNumber: "OG-1", Grantee: "g", Amount: amount}, "u"))
	mk(GenerateExpenseFromRelocationBenefit(RelocationBenefit{CaseNumber: "R-1", Claimant: "c", Amount: amount}, "u"))
	mk(GenerateCostTransfer(CostTransfer{TransferNumber: "CT-1", Amount: amount, FromCostCenter: "a", ToCostCenter: "b"}, "u"))
	mk(GenerateContractModificationAdjustment(ModificationAdjustment{ContractNumber: "K-1", ModNumber: "P00001", AmountDelta: amount.Neg()}, "u"))
	mk(GenerateCapitalizationFromAsset(Asset{AssetNumber: "A-2", AcquisitionCost: amount, UsefulLifeYears: 5}, "u"))

	for _, tx := range txs {
		assert.True(t, tx.Balanced(), "transaction %s %s is unbalanced", tx.Type, tx.ReferenceID)
		assert.Equal(t, StatusPosted, tx.Status)
		assert.True(t, tx.TotalAmount.Equal(tx.TotalDebits()))
		for _, line := range tx.Lines {
			assert.NoError(t, line.Validate())
		}
	}
}
