package ledger

import "github.com/openfms/backend/internal/domain/shared"

// BalanceSide indicates the normal balance side of an account
type BalanceSide string

const (
	DebitNormal  BalanceSide = "DEBIT"
	CreditNormal BalanceSide = "CREDIT"
)

// Account is one entry in the standard general-ledger chart of accounts
// (USSGL account codes).
type Account struct {
	Code   string      `json:"code"`
	Title  string      `json:"title"`
	Normal BalanceSide `json:"normal_balance"`
}

// Standard account codes used by the transaction generators
const (
	AccountFundBalanceWithTreasury = "101000" // Fund Balance With Treasury
	AccountAccountsReceivable      = "131000" // Accounts Receivable
	AccountAccumulatedDepreciation = "171900" // Accumulated Depreciation
	AccountGeneralEquipment        = "175000" // General Equipment
	AccountAccountsPayable         = "211000" // Accounts Payable
	AccountAllotments              = "461000" // Allotments - Realized Resources
	AccountCommitments             = "470000" // Commitments
	AccountUndeliveredOrders       = "480100" // Undelivered Orders - Obligations, Unpaid
	AccountOperatingExpenses       = "610000" // Operating Expenses / Program Costs
	AccountDepreciationExpense     = "671000" // Depreciation, Amortization, and Depletion
	AccountRevenueFromServices     = "520000" // Revenue From Goods and Services Provided
	AccountLossOnDisposition       = "721000" // Losses on Disposition of Assets
)

var standardAccounts = map[string]Account{
	AccountFundBalanceWithTreasury: {AccountFundBalanceWithTreasury, "Fund Balance With Treasury", DebitNormal},
	AccountAccountsReceivable:      {AccountAccountsReceivable, "Accounts Receivable", DebitNormal},
	AccountAccumulatedDepreciation: {AccountAccumulatedDepreciation, "Accumulated Depreciation", CreditNormal},
	AccountGeneralEquipment:        {AccountGeneralEquipment, "General Equipment", DebitNormal},
	AccountAccountsPayable:         {AccountAccountsPayable, "Accounts Payable", CreditNormal},
	AccountAllotments:              {AccountAllotments, "Allotments - Realized Resources", CreditNormal},
	AccountCommitments:             {AccountCommitments, "Commitments", CreditNormal},
	AccountUndeliveredOrders:       {AccountUndeliveredOrders, "Undelivered Orders - Obligations, Unpaid", CreditNormal},
	AccountOperatingExpenses:       {AccountOperatingExpenses, "Operating Expenses / Program Costs", DebitNormal},
	AccountDepreciationExpense:     {AccountDepreciationExpense, "Depreciation, Amortization, and Depletion", DebitNormal},
	AccountRevenueFromServices:     {AccountRevenueFromServices, "Revenue From Goods and Services Provided", CreditNormal},
	AccountLossOnDisposition:       {AccountLossOnDisposition, "Losses on Disposition of Assets", DebitNormal},
}

// LookupAccount returns the standard account for a code
func LookupAccount(code string) (Account, bool) {
	a, ok := standardAccounts[code]
	return a, ok
}

// StandardAccounts returns the full chart of accounts, keyed by code
func StandardAccounts() map[string]Account {
	out := make(map[string]Account, len(standardAccounts))
	for k, v := range standardAccounts {
		out[k] = v
	}
	return out
}

// eventKind identifies a business event, the key into the account pair
// table. One event maps to exactly one debit/credit account pairing.
type eventKind string

const (
	eventCommitment     eventKind = "COMMITMENT"
	eventObligation     eventKind = "OBLIGATION"
	eventCommitmentLiq  eventKind = "COMMITMENT_LIQUIDATION"
	eventObligationAdj  eventKind = "OBLIGATION_ADJUSTMENT"
	eventAccrual        eventKind = "ACCRUAL"
	eventDisbursement   eventKind = "DISBURSEMENT"
	eventDepreciation   eventKind = "DEPRECIATION"
	eventRevenue        eventKind = "REVENUE"
	eventExpense        eventKind = "EXPENSE"
	eventCostTransfer   eventKind = "COST_TRANSFER"
	eventCapitalization eventKind = "CAPITALIZATION"
	eventDisposal       eventKind = "DISPOSAL"
)

// accountPair is the debit/credit account pairing for a business event
type accountPair struct {
	debit  string
	credit string
}

var eventAccounts = map[eventKind]accountPair{
	eventCommitment:     {debit: AccountAllotments, credit: AccountCommitments},
	eventObligation:     {debit: AccountAllotments, credit: AccountUndeliveredOrders},
	eventCommitmentLiq:  {debit: AccountCommitments, credit: AccountAllotments},
	eventObligationAdj:  {debit: AccountAllotments, credit: AccountUndeliveredOrders},
	eventAccrual:        {debit: AccountOperatingExpenses, credit: AccountAccountsPayable},
	eventDisbursement:   {debit: AccountAccountsPayable, credit: AccountFundBalanceWithTreasury},
	eventDepreciation:   {debit: AccountDepreciationExpense, credit: AccountAccumulatedDepreciation},
	eventRevenue:        {debit: AccountAccountsReceivable, credit: AccountRevenueFromServices},
	eventExpense:        {debit: AccountOperatingExpenses, credit: AccountAccountsPayable},
	eventCostTransfer:   {debit: AccountOperatingExpenses, credit: AccountOperatingExpenses},
	eventCapitalization: {debit: AccountGeneralEquipment, credit: AccountOperatingExpenses},
	eventDisposal:       {debit: AccountLossOnDisposition, credit: AccountGeneralEquipment},
}

// accountsFor returns the standard accounts for a business event
func accountsFor(kind eventKind) (debit, credit Account, err error) {
	pair, ok := eventAccounts[kind]
	if !ok {
		return Account{}, Account{}, shared.NewDomainError("INVALID_INPUT", "Unknown business event "+string(kind))
	}
	return standardAccounts[pair.debit], standardAccounts[pair.credit], nil
}
