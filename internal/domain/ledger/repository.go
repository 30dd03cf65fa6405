package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListFilter narrows transaction queries
type ListFilter struct {
	Type         TransactionType
	SourceModule string
	ReferenceID  string
	Page         int
	PageSize     int
}

// AccountTotal is the aggregate debit and credit activity of one account
type AccountTotal struct {
	AccountCode string          `json:"account_code"`
	Title       string          `json:"title"`
	Debits      decimal.Decimal `json:"debits"`
	Credits     decimal.Decimal `json:"credits"`
}

// TransactionRepository persists posted transactions
type TransactionRepository interface {
	Save(ctx context.Context, tx *Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, filter ListFilter) ([]*Transaction, int64, error)
	TotalsByAccount(ctx context.Context) ([]AccountTotal, error)
}
