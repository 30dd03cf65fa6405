package acquisition

import (
	"context"

	"github.com/google/uuid"
)

// PurchaseRequestRepository persists purchase requests
type PurchaseRequestRepository interface {
	Save(ctx context.Context, pr *PurchaseRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseRequest, error)
	FindByNumber(ctx context.Context, requestNumber string) (*PurchaseRequest, error)
	List(ctx context.Context, status PurchaseRequestStatus, page, pageSize int) ([]*PurchaseRequest, int64, error)
}

// SolicitationRepository persists solicitations
type SolicitationRepository interface {
	Save(ctx context.Context, sol *Solicitation) error
	FindByID(ctx context.Context, id uuid.UUID) (*Solicitation, error)
	FindByNumber(ctx context.Context, solicitationNumber string) (*Solicitation, error)
	List(ctx context.Context, page, pageSize int) ([]*Solicitation, int64, error)
}

// ContractRepository persists contracts
type ContractRepository interface {
	Save(ctx context.Context, c *Contract) error
	FindByID(ctx context.Context, id uuid.UUID) (*Contract, error)
	FindByNumber(ctx context.Context, contractNumber string) (*Contract, error)
	List(ctx context.Context, status ContractStatus, page, pageSize int) ([]*Contract, int64, error)
}
