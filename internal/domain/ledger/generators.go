package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/openfms/backend/internal/domain/shared"
)

// Source module tags stamped onto generated transactions
const (
	SourceAcquisition   = "ACQUISITION"
	SourceProjectOrders = "PROJECT_ORDERS"
	SourceExpenses      = "EXPENSES"
	SourceAssets        = "ASSETS"
	SourceTravel        = "TRAVEL"
	SourceCostTransfers = "COST_TRANSFERS"
	SourceOutgrants     = "OUTGRANTS"
	SourceRelocation    = "RELOCATION"
	SourceContracts     = "CONTRACTS"
)

// projectOrderObligators is the allow-list of roles permitted to obligate
// funds against a project order.
var projectOrderObligators = []shared.Role{
	shared.RoleBudgetOfficer,
	shared.RoleResourceManager,
}

// GenerateCommitmentFromPurchaseRequest records a commitment of funds for
// a certified purchase request: allotment balance moves to commitments.
func GenerateCommitmentFromPurchaseRequest(c PurchaseCommitment, createdBy string) (*Transaction, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	debit, credit, err := accountsFor(eventCommitment)
	if err != nil {
		return nil, err
	}
	desc := fmt.Sprintf("Commitment of funds for %s", c.RequestNumber)
	lines := []Line{
		NewDebitLine(debit, desc, c.Amount, c.FundingCode, c.CostCenter),
		NewCreditLine(credit, desc, c.Amount, c.FundingCode, c.CostCenter),
	}
	return NewTransaction(TypeCommitment, SourceAcquisition, c.RequestNumber, c.Description, createdBy, lines)
}

// GenerateObligationFromProjectOrder records an obligation against a
// project order. Only budget officers and resource managers may obligate
// project-order funds.
func GenerateObligationFromProjectOrder(o ProjectOrder, requestedBy shared.Role, createdBy string) (*Transaction, error) {
	if !shared.RoleAllowed(requestedBy, projectOrderObligators) {
		return nil, shared.NewDomainError("UNAUTHORIZED",
			fmt.Sprintf("Role %s is not authorized to obligate project order funds", requestedBy))
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return newObligation(SourceProjectOrders, o.OrderNumber, o.Description,
		fmt.Sprintf("Obligation for project order %s", o.OrderNumber),
		o.Amount, o.FundingCode, o.CostCenter, createdBy)
}

// GenerateObligationFromContract records the obligation created by a
// contract award. The entry liquidates the commitment recorded at funds
// certification: committed dollars move from commitments to undelivered
// orders, and only the portion of the award above the committed amount
// draws new allotment balance. A zero committed amount produces a plain
// obligation entry.
func GenerateObligationFromContract(contractNumber, description string, amount, committed decimal.Decimal, fundingCode, costCenter, createdBy string) (*Transaction, error) {
	if contractNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Contract obligation requires a contract number")
	}
	if err := requirePositive("Contract obligation amount", amount); err != nil {
		return nil, err
	}
	if committed.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Liquidated commitment cannot be negative")
	}

	liqDebit, liqCredit, err := accountsFor(eventCommitmentLiq)
	if err != nil {
		return nil, err
	}
	oblDebit, oblCredit, err := accountsFor(eventObligation)
	if err != nil {
		return nil, err
	}

	lineDesc := fmt.Sprintf("Obligation for contract %s", contractNumber)
	liqDesc := fmt.Sprintf("Liquidation of commitment for contract %s", contractNumber)

	var lines []Line
	if committed.IsPositive() {
		lines = append(lines, NewDebitLine(liqDebit, liqDesc, committed, fundingCode, costCenter))
	}
	switch {
	case amount.GreaterThan(committed):
		lines = append(lines, NewDebitLine(oblDebit, lineDesc, amount.Sub(committed), fundingCode, costCenter))
	case amount.LessThan(committed):
		lines = append(lines, NewCreditLine(liqCredit, liqDesc, committed.Sub(amount), fundingCode, costCenter))
	}
	lines = append(lines, NewCreditLine(oblCredit, lineDesc, amount, fundingCode, costCenter))
	return NewTransaction(TypeObligation, SourceContracts, contractNumber, description, createdBy, lines)
}

// GenerateTravelObligation records the obligation for an approved travel
// order at its estimated cost.
func GenerateTravelObligation(o TravelOrder, createdBy string) (*Transaction, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	description := fmt.Sprintf("Travel for %s: %s", o.Traveler, o.Purpose)
	return newObligation(SourceTravel, o.OrderNumber, description,
		fmt.Sprintf("Travel obligation for order %s", o.OrderNumber),
		o.EstimatedCost, o.FundingCode, o.CostCenter, createdBy)
}

func newObligation(source, reference, description, lineDesc string, amount decimal.Decimal, fundingCode, costCenter, createdBy string) (*Transaction, error) {
	debit, credit, err := accountsFor(eventObligation)
	if err != nil {
		return nil, err
	}
	lines := []Line{
		NewDebitLine(debit, lineDesc, amount, fundingCode, costCenter),
		NewCreditLine(credit, lineDesc, amount, fundingCode, costCenter),
	}
	return NewTransaction(TypeObligation, source, reference, description, createdBy, lines)
}

// GenerateAccrualFromExpense records an incurred, unpaid expense as an
// accrual against accounts payable.
func GenerateAccrualFromExpense(e Expense, createdBy string) (*Transaction, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	debit, credit, err := accountsFor(eventAccrual)
	if err != nil {
		return nil, err
	}
	desc := fmt.Sprintf("Accrued expense %s", e.ExpenseNumber)
	lines := []Line{
		NewDebitLine(debit, desc, e.Amount, e.FundingCode, e.CostCenter),
		NewCreditLine(credit, desc, e.Amount, e.FundingCode, e.CostCenter),
	}
	return NewTransaction(TypeAccrual, SourceExpenses, e.ExpenseNumber, e.Description, createdBy, lines)
}

// GenerateDisbursementFromExpense records payment of a previously accrued
// expense, relieving accounts payable out of fund balance.
func GenerateDisbursementFromExpense(e Expense, createdBy string) (*Transaction, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if !e.Paid {
		return nil, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Expense %s is not marked paid; disbursement not recorded", e.ExpenseNumber))
	}
	debit, credit, err := accountsFor(eventDisbursement)
	if err != nil {
		return nil, err
	}
	desc := fmt.Sprintf("Disbursement for expense %s", e.ExpenseNumber)
	lines := []Line{
		NewDebitLine(debit, desc, e.Amount, e.FundingCode, e.CostCenter),
		NewCreditLine(credit, desc, e.Amount, e.FundingCode, e.CostCenter),
	}
	return NewTransaction(TypeDisbursement, SourceExpenses, e.ExpenseNumber, e.Description, createdBy, lines)
}

// GenerateQuarterlyDepreciation records one quarter of straight-line
// depreciation: (acquisition cost / useful life) / 4.
func GenerateQuarterlyDepreciation(a Asset, createdBy string) (*Transaction, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if a.UsefulLifeYears <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Asset %s has no positive useful life; cannot depreciate", a.AssetNumber))
	}
	annual := a.AcquisitionCost.Div(decimal.NewFromInt(int64(a.UsefulLifeYears)))
	quarterly := annual.Div(decimal.NewFromInt(4)).Round(2)

	debit, credit, err := accountsFor(eventDepreciation)
	if err != nil {
		return nil, err
	}
	desc := fmt.Sprintf("Quarterly depreciation for asset %s", a.AssetNumber)
	lines := []Line{
		NewDebitLine(debit, desc, quarterly, a.FundingCode, a.CostCenter),
		NewCreditLine(credit, desc, quarterly, a.FundingCode, a.CostCenter),
	}
	return NewTransaction(TypeAdjustingEntry, SourceAssets, a.AssetNumber, desc, createdBy, lines)
}

// GenerateRevenueFromOutgrant recognizes revenue earned under an outgrant
// agreement as a receivable.
func GenerateRevenueFromOutgrant(o Outgrant, createdBy string) (*Transaction, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	debit, credit, err := accountsFor(eventRevenue)
	if err != nil {
		return nil, err
	}
	desc := fmt.Sprintf("Revenue earned under outgrant %s from %s", o.AgreementNumber, o.Grantee)
	lines := []Line{
		NewDebitLine(debit, desc, o.Amount, o.FundingCode, o.CostCenter),
		NewCreditLine(credit, desc, o.Amount, o.FundingCode, o.CostCenter),
	}
	return NewTransaction(TypeRevenue, SourceOutgrants, o.AgreementNumber, o.Description, createdBy, lines)
}

// GenerateExpenseFromRelocationBenefit records the incremental cost of an
// employee relocation entitlement.
func GenerateExpenseFromRelocationBenefit(b RelocationBenefit, createdBy string) (*Transaction, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	debit, credit, err := accountsFor(eventExpense)
	if err != nil {
		return nil, err
	}
	desc := fmt.Sprintf("Relocation benefit %s for %s", b.CaseNumber, b.Claimant)
	lines := []Line{
		NewDebitLine(debit, desc, b.Amount, b.FundingCode, b.CostCenter),
		NewCreditLine(credit, desc, b.Amount, b.FundingCode, b.CostCenter),
	}
	return NewTransaction(TypeExpense, SourceRelocation, b.CaseNumber, b.Description, createdBy, lines)
}

// GenerateCostTransfer moves cost between cost centers. Both lines hit the
// same operating-expense account; the debit carries the destination cost
// center and the credit the source.
func GenerateCostTransfer(t CostTransfer, createdBy string) (*Transaction, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	debit, credit, err := accountsFor(eventCostTransfer)
	if err != nil {
		return nil, err
	}
	lines := []Line{
		NewDebitLine(debit, fmt.Sprintf("Cost transfer %s in", t.TransferNumber), t.Amount, t.FundingCode, t.ToCostCenter),
		NewCreditLine(credit, fmt.Sprintf("Cost transfer %s out", t.TransferNumber), t.Amount, t.FundingCode, t.FromCostCenter),
	}
	return NewTransaction(TypeAdjustingEntry, SourceCostTransfers, t.TransferNumber, t.Description, createdBy, lines)
}

// GenerateContractModificationAdjustment records the obligation change
// caused by an executed contract modification. The sign of the delta picks
// the line placement; both lines carry its magnitude. A zero delta is an
// administrative modification and produces no transaction.
func GenerateContractModificationAdjustment(m ModificationAdjustment, createdBy string) (*Transaction, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if m.AmountDelta.IsZero() {
		return nil, nil
	}
	debit, credit, err := accountsFor(eventObligationAdj)
	if err != nil {
		return nil, err
	}
	amount := m.AmountDelta.Abs()
	desc := fmt.Sprintf("Obligation adjustment for %s mod %s", m.ContractNumber, m.ModNumber)

	var lines []Line
	if m.AmountDelta.IsPositive() {
		lines = []Line{
			NewDebitLine(debit, desc, amount, m.FundingCode, m.CostCenter),
			NewCreditLine(credit, desc, amount, m.FundingCode, m.CostCenter),
		}
	} else {
		// deobligation reverses the placement
		lines = []Line{
			NewDebitLine(credit, desc, amount, m.FundingCode, m.CostCenter),
			NewCreditLine(debit, desc, amount, m.FundingCode, m.CostCenter),
		}
	}
	reference := fmt.Sprintf("%s/%s", m.ContractNumber, m.ModNumber)
	return NewTransaction(TypeObligationAdjustment, SourceContracts, reference, m.Description, createdBy, lines)
}

// GenerateCapitalizationFromAsset reclassifies acquisition cost from
// operating expense to general equipment.
func GenerateCapitalizationFromAsset(a Asset, createdBy string) (*Transaction, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	debit, credit, err := accountsFor(eventCapitalization)
	if err != nil {
		return nil, err
	}
	desc := fmt.Sprintf("Capitalization of asset %s", a.AssetNumber)
	lines := []Line{
		NewDebitLine(debit, desc, a.AcquisitionCost, a.FundingCode, a.CostCenter),
		NewCreditLine(credit, desc, a.AcquisitionCost, a.FundingCode, a.CostCenter),
	}
	return NewTransaction(TypeCapitalization, SourceAssets, a.AssetNumber, desc, createdBy, lines)
}

// GenerateDisposalFromAsset writes off the remaining net book value of a
// disposed asset as a loss.
func GenerateDisposalFromAsset(a Asset, createdBy string) (*Transaction, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	nbv := a.NetBookValue()
	if !nbv.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Asset %s has no remaining net book value to write off", a.AssetNumber))
	}
	debit, credit, err := accountsFor(eventDisposal)
	if err != nil {
		return nil, err
	}
	desc := fmt.Sprintf("Disposal of asset %s", a.AssetNumber)
	lines := []Line{
		NewDebitLine(debit, desc, nbv, a.FundingCode, a.CostCenter),
		NewCreditLine(credit, desc, nbv, a.FundingCode, a.CostCenter),
	}
	return NewTransaction(TypeDisposal, SourceAssets, a.AssetNumber, desc, createdBy, lines)
}
